package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"corevitals-go/internal/config"

	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.GatewayConfig {
	return config.GatewayConfig{
		Timeout: 2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Multiplier:      2,
		},
		Chat: config.ChatConfig{
			BaseURL:     baseURL,
			Deployment:  "gpt-4o",
			APIVersion:  "2023-06-01-preview",
			APIKey:      "chat-key",
			MaxTokens:   1000,
			Temperature: 0.7,
			MaxTurns:    10,
		},
		Speech: config.SpeechConfig{
			BaseURL:         baseURL,
			APIKey:          "speech-key",
			VoiceID:         "voice-1",
			ModelID:         "eleven_monolingual_v1",
			Stability:       0.5,
			SimilarityBoost: 0.5,
			MaxTextLength:   100,
		},
		Video: config.VideoConfig{
			BaseURL:       baseURL,
			APIKey:        "video-key",
			ReplicaID:     "r-123",
			BackgroundURL: "https://example.com/office.jpg",
		},
	}
}

// recorder 记录服务端收到的请求，并按顺序返回预设响应。
type recorder struct {
	mu       sync.Mutex
	calls    atomic.Int32
	requests []recordedRequest
	handler  func(w http.ResponseWriter, r *http.Request, body []byte, call int)
}

type recordedRequest struct {
	method string
	path   string
	query  string
	header http.Header
	body   []byte
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	call := int(rec.calls.Add(1))
	rec.mu.Lock()
	rec.requests = append(rec.requests, recordedRequest{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.RawQuery,
		header: r.Header.Clone(),
		body:   body,
	})
	rec.mu.Unlock()
	rec.handler(w, r, body, call)
}

func (rec *recorder) last(t *testing.T) recordedRequest {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.NotEmpty(t, rec.requests)
	return rec.requests[len(rec.requests)-1]
}

func newServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, body []byte, call int)) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{handler: handler}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return srv, rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func chatReply(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
		},
	}
}

// closedServerURL 返回一个已经关闭的服务地址，用于模拟连接失败。
func closedServerURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}
