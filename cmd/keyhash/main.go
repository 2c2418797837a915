// keyhash 从标准输入读取客户端密钥，输出可写入 auth.clients[].key_hash 的 bcrypt 哈希。
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"corevitals-go/pkg/hash"
)

func main() {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(os.Stderr, "请通过标准输入提供客户端密钥")
		os.Exit(1)
	}
	key := strings.TrimRight(line, "\r\n")
	if key == "" {
		fmt.Fprintln(os.Stderr, "客户端密钥不能为空")
		os.Exit(1)
	}
	h, err := hash.HashPassword(key)
	if err != nil {
		fmt.Fprintln(os.Stderr, "生成哈希失败:", err)
		os.Exit(1)
	}
	fmt.Println(h)
}
