package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidInput 是所有本地校验失败的根错误，这类请求不会发往上游。
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrEmptyConversation   = fmt.Errorf("%w: conversation is empty", ErrInvalidInput)
	ErrConversationTooLong = fmt.Errorf("%w: conversation exceeds the maximum number of turns", ErrInvalidInput)
	ErrInvalidRole         = fmt.Errorf("%w: turn role must be user, assistant or system", ErrInvalidInput)
	ErrEmptyText           = fmt.Errorf("%w: text is empty", ErrInvalidInput)
	ErrTextTooLong         = fmt.Errorf("%w: text exceeds the maximum length", ErrInvalidInput)
	ErrEmptyRecipient      = fmt.Errorf("%w: recipient name is empty", ErrInvalidInput)
)

// ErrMalformedResponse 表示上游返回了成功状态码，但响应体缺少约定字段或无法解析。
var ErrMalformedResponse = errors.New("malformed upstream response")

// TransportError 表示请求未能发出或没有收到响应（DNS、连接失败、超时等）。
type TransportError struct {
	Provider string
	Op       string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport failure: %v", e.Provider, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout 报告失败是否由超时引起。
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// UpstreamError 表示收到了上游响应，但状态码不是 2xx。
type UpstreamError struct {
	Provider   string
	Op         string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: upstream returned status %d", e.Provider, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: upstream returned status %d, body: %s", e.Provider, e.Op, e.StatusCode, e.Body)
}

// Temporary 报告该状态码是否值得重试（429 与 5xx）。
func (e *UpstreamError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// IsTransport 判断 err 链中是否包含 TransportError。
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode 返回 err 链中 UpstreamError 的状态码，不存在时返回 0。
func StatusCode(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}
