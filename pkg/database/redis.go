package database

import (
	"context"
	"time"

	"corevitals-go/pkg/log"

	"github.com/go-redis/redis/v8"
)

var RDB *redis.Client

// InitRedis 初始化 Redis 客户端连接
func InitRedis(addr, password string, db int) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 测试连接
	ctx := context.Background()
	if err := RDB.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", err)
	}

	log.Info("Redis client connected successfully")
}

// WindowCounter 基于 Redis 的固定窗口计数器。
type WindowCounter struct {
	rdb redis.Cmdable
}

// NewWindowCounter 创建计数器，rdb 通常是 RDB。
func NewWindowCounter(rdb redis.Cmdable) *WindowCounter {
	return &WindowCounter{rdb: rdb}
}

// Incr 将 key 的计数加一并返回新值。首次计数时为 key 设置窗口过期时间。
func (c *WindowCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// 只在窗口内第一次计数时设置过期，避免每次请求都把窗口往后推
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}
