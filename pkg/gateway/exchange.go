package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"corevitals-go/pkg/log"

	"github.com/cenkalti/backoff/v4"
)

const (
	// 音频响应可能较大，其余响应远小于此上限。
	maxResponseBytes = 32 << 20
	maxErrorBodyLen  = 512
)

// exchange 描述一次出站调用。每次调用都新建，不在请求之间共享。
type exchange struct {
	provider   string
	op         string
	method     string
	url        string
	header     http.Header
	body       []byte
	idempotent bool
}

type reply struct {
	status      int
	contentType string
	body        []byte
}

// send 执行一次交换；幂等调用在 TransportError、429、5xx 时按配置退避重试。
// 最终返回的总是最后一次尝试的原始错误类型。
func (c *gatewayClient) send(ctx context.Context, ex exchange) (*reply, error) {
	maxAttempts := c.cfg.Retry.MaxAttempts
	if !ex.idempotent || maxAttempts < 1 {
		maxAttempts = 1
	}

	var (
		out     *reply
		lastErr error
		attempt int
	)
	operation := func() error {
		attempt++
		r, err := c.do(ctx, ex)
		if err != nil {
			lastErr = err
			if !retryable(ctx, err) {
				return backoff.Permanent(err)
			}
			return err
		}
		out = r
		return nil
	}
	notify := func(err error, wait time.Duration) {
		log.Warnw("上游调用失败，准备重试",
			"provider", ex.provider, "op", ex.op, "attempt", attempt, "wait", wait.String(), "error", err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		if lastErr != nil {
			err = lastErr
		}
		log.Errorw("上游调用失败", "provider", ex.provider, "op", ex.op, "attempts", attempt, "error", err)
		return nil, err
	}
	return out, nil
}

func (c *gatewayClient) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	if c.cfg.Retry.InitialInterval > 0 {
		b.InitialInterval = c.cfg.Retry.InitialInterval
	}
	if c.cfg.Retry.MaxInterval > 0 {
		b.MaxInterval = c.cfg.Retry.MaxInterval
	}
	if c.cfg.Retry.Multiplier > 0 {
		b.Multiplier = c.cfg.Retry.Multiplier
	}
	// 次数由 WithMaxRetries 限制
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// do 执行单次 HTTP 尝试，并完整读取响应体后关闭连接。
func (c *gatewayClient) do(ctx context.Context, ex exchange) (*reply, error) {
	var body io.Reader
	if ex.body != nil {
		body = bytes.NewReader(ex.body)
	}
	req, err := http.NewRequestWithContext(ctx, ex.method, ex.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", ex.op, err)
	}
	req.Header = ex.header.Clone()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: ex.provider, Op: ex.op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Provider: ex.provider, Op: ex.op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{
			Provider:   ex.provider,
			Op:         ex.op,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(data), maxErrorBodyLen),
		}
	}

	return &reply{status: resp.StatusCode, contentType: resp.Header.Get("Content-Type"), body: data}, nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var te *TransportError
	if errors.As(err, &te) {
		return !errors.Is(te.Err, context.Canceled)
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Temporary()
	}
	return false
}

func jsonHeader(keyName, key string) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set(keyName, key)
	return h
}

// truncate 最多保留 n 个字节，并且不会截断在多字节字符中间。
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
