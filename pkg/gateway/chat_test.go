package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"corevitals-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentChat struct {
	Messages    []map[string]any `json:"messages"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
}

func TestChatCompletionPrependsSystemTurn(t *testing.T) {
	srv, rec := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
		writeJSON(w, http.StatusOK, chatReply("ok"))
	})
	c := NewClient(testConfig(srv.URL), nil)

	now := time.Now()
	turns := []model.ChatTurn{
		{Role: model.RoleAssistant, Content: "Hello! How can I help?", Timestamp: &now},
		{Role: model.RoleUser, Content: "I have a headache", Timestamp: &now},
		{Role: model.RoleAssistant, Content: "Since when?"},
		{Role: model.RoleUser, Content: "Two days"},
	}
	reply, err := c.ChatCompletion(context.Background(), turns, "be helpful")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)

	req := rec.last(t)
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", req.path)
	assert.Equal(t, "api-version=2023-06-01-preview", req.query)
	assert.Equal(t, "chat-key", req.header.Get("api-key"))
	assert.Equal(t, "application/json", req.header.Get("Content-Type"))
	assert.NotContains(t, string(req.body), "timestamp")

	var sent sentChat
	require.NoError(t, json.Unmarshal(req.body, &sent))
	assert.Equal(t, 1000, sent.MaxTokens)
	assert.InDelta(t, 0.7, sent.Temperature, 1e-9)

	require.Len(t, sent.Messages, len(turns)+1)
	assert.Equal(t, map[string]any{"role": "system", "content": "be helpful"}, sent.Messages[0])
	for i, turn := range turns {
		assert.Equal(t, map[string]any{"role": string(turn.Role), "content": turn.Content}, sent.Messages[i+1])
	}
}

func TestChatCompletionReturnsFirstChoice(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
		writeJSON(w, http.StatusOK, map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": "Take two aspirin"}},
				map[string]any{"message": map[string]any{"content": "second choice"}},
			},
		})
	})
	c := NewClient(testConfig(srv.URL), nil)

	reply, err := c.ChatCompletion(context.Background(), []model.ChatTurn{{Role: model.RoleUser, Content: "hi"}}, "sys")
	require.NoError(t, err)
	assert.Equal(t, "Take two aspirin", reply)
}

func TestChatCompletionUpstreamError(t *testing.T) {
	srv, rec := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c := NewClient(testConfig(srv.URL), nil)

	reply, err := c.ChatCompletion(context.Background(), []model.ChatTurn{{Role: model.RoleUser, Content: "hi"}}, "sys")
	require.Error(t, err)
	assert.Empty(t, reply)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
	assert.Equal(t, ProviderChat, ue.Provider)
	assert.Equal(t, 500, StatusCode(err))
	assert.False(t, IsTransport(err))
	assert.EqualValues(t, 1, rec.calls.Load())
}

func TestChatCompletionTransportError(t *testing.T) {
	c := NewClient(testConfig(closedServerURL(t)), nil)

	_, err := c.ChatCompletion(context.Background(), []model.ChatTurn{{Role: model.RoleUser, Content: "hi"}}, "sys")
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ProviderChat, te.Provider)
	assert.True(t, IsTransport(err))

	var ue *UpstreamError
	assert.False(t, errors.As(err, &ue))
	assert.Zero(t, StatusCode(err))
}

func TestChatCompletionTimeoutIsTransportError(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request, _ []byte, _ int) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	c := NewClient(cfg, nil)

	_, err := c.ChatCompletion(context.Background(), []model.ChatTurn{{Role: model.RoleUser, Content: "hi"}}, "sys")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Timeout())
}

func TestChatCompletionRetriesTransientStatus(t *testing.T) {
	srv, rec := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, call int) {
		if call < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, chatReply("recovered"))
	})
	cfg := testConfig(srv.URL)
	cfg.Retry.MaxAttempts = 3
	c := NewClient(cfg, nil)

	reply, err := c.ChatCompletion(context.Background(), []model.ChatTurn{{Role: model.RoleUser, Content: "hi"}}, "sys")
	require.NoError(t, err)
	assert.Equal(t, "recovered", reply)
	assert.EqualValues(t, 3, rec.calls.Load())
}

func TestChatCompletionRetryExhaustionKeepsUpstreamError(t *testing.T) {
	srv, rec := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	cfg := testConfig(srv.URL)
	cfg.Retry.MaxAttempts = 3
	c := NewClient(cfg, nil)

	_, err := c.ChatCompletion(context.Background(), []model.ChatTurn{{Role: model.RoleUser, Content: "hi"}}, "sys")
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
	assert.EqualValues(t, 3, rec.calls.Load())
}

func TestChatCompletionDoesNotRetryClientErrors(t *testing.T) {
	srv, rec := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})
	cfg := testConfig(srv.URL)
	cfg.Retry.MaxAttempts = 3
	c := NewClient(cfg, nil)

	_, err := c.ChatCompletion(context.Background(), []model.ChatTurn{{Role: model.RoleUser, Content: "hi"}}, "sys")
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
	assert.EqualValues(t, 1, rec.calls.Load())
}

func TestChatCompletionRejectsInvalidConversations(t *testing.T) {
	srv, rec := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
		writeJSON(w, http.StatusOK, chatReply("unreachable"))
	})
	c := NewClient(testConfig(srv.URL), nil)

	tooLong := make([]model.ChatTurn, 11)
	for i := range tooLong {
		tooLong[i] = model.ChatTurn{Role: model.RoleUser, Content: fmt.Sprintf("m%d", i)}
	}

	tests := []struct {
		name  string
		turns []model.ChatTurn
		want  error
	}{
		{name: "empty", turns: nil, want: ErrEmptyConversation},
		{name: "too long", turns: tooLong, want: ErrConversationTooLong},
		{name: "empty role", turns: []model.ChatTurn{{Role: "", Content: "x"}}, want: ErrInvalidRole},
		{name: "unknown role", turns: []model.ChatTurn{{Role: "tool", Content: "x"}}, want: ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ChatCompletion(context.Background(), tt.turns, "sys")
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Zero(t, rec.calls.Load())
}

func TestChatCompletionForwardsCallerSystemTurnsInPlace(t *testing.T) {
	srv, rec := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
		writeJSON(w, http.StatusOK, chatReply("ok"))
	})
	c := NewClient(testConfig(srv.URL), nil)

	turns := []model.ChatTurn{
		{Role: model.RoleUser, Content: "a"},
		{Role: model.RoleSystem, Content: "note"},
		{Role: model.RoleUser, Content: "b"},
	}
	_, err := c.ChatCompletion(context.Background(), turns, "persona")
	require.NoError(t, err)
	assert.EqualValues(t, 1, rec.calls.Load())

	var sent sentChat
	require.NoError(t, json.Unmarshal(rec.last(t).body, &sent))
	assert.Equal(t, []map[string]any{
		{"role": "system", "content": "persona"},
		{"role": "user", "content": "a"},
		{"role": "system", "content": "note"},
		{"role": "user", "content": "b"},
	}, sent.Messages)
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a…", truncate("aé", 2))
	assert.Equal(t, "ab…", truncate("abc", 2))
	assert.True(t, utf8.ValidString(truncate(strings.Repeat("心", 200), maxErrorBodyLen)))
}

func TestChatCompletionMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"choices":[]}`},
		{name: "not json", body: `<html>oops</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(tt.body))
			})
			c := NewClient(testConfig(srv.URL), nil)
			_, err := c.ChatCompletion(context.Background(), []model.ChatTurn{{Role: model.RoleUser, Content: "hi"}}, "sys")
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestChatCompletionConcurrentCallsAreIndependent(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request, body []byte, _ int) {
		var sent sentChat
		if err := json.Unmarshal(body, &sent); err != nil || len(sent.Messages) != 2 {
			http.Error(w, "unexpected payload", http.StatusBadRequest)
			return
		}
		// 回显 system 与 user 内容，便于核对每个调用收到的是自己的负载
		writeJSON(w, http.StatusOK, chatReply(fmt.Sprintf("%v|%v", sent.Messages[0]["content"], sent.Messages[1]["content"])))
	})
	c := NewClient(testConfig(srv.URL), nil)

	const n = 20
	var wg sync.WaitGroup
	replies := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			turns := []model.ChatTurn{{Role: model.RoleUser, Content: fmt.Sprintf("question-%d", i)}}
			replies[i], errs[i] = c.ChatCompletion(context.Background(), turns, fmt.Sprintf("persona-%d", i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("persona-%d|question-%d", i, i), replies[i])
	}
}

func TestChatCompletionDoesNotMutateCallerTurns(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
		writeJSON(w, http.StatusOK, chatReply("ok"))
	})
	c := NewClient(testConfig(srv.URL), nil)

	now := time.Now()
	turns := make([]model.ChatTurn, 1, 4)
	turns[0] = model.ChatTurn{Role: model.RoleUser, Content: "hi", Timestamp: &now}
	_, err := c.ChatCompletion(context.Background(), turns, "sys")
	require.NoError(t, err)

	require.Len(t, turns, 1)
	assert.Equal(t, "hi", turns[0].Content)
	assert.Same(t, &now, turns[0].Timestamp)
}

func TestAnalyzeSymptomsBuildsPrompt(t *testing.T) {
	srv, rec := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
		writeJSON(w, http.StatusOK, chatReply("Nervous system likely affected"))
	})
	c := NewClient(testConfig(srv.URL), nil)

	sc := model.SymptomContext{MoodScore: 4, EnergyLevel: 3, SleepHours: 5.5, StressLevel: 8, Notes: "night shift", UserCategory: "busy_professional"}
	reply, err := c.AnalyzeSymptoms(context.Background(), []string{"Headache", "Fatigue"}, sc)
	require.NoError(t, err)
	assert.Equal(t, "Nervous system likely affected", reply)

	var sent sentChat
	require.NoError(t, json.Unmarshal(rec.last(t).body, &sent))
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, "system", sent.Messages[0]["role"])
	assert.Equal(t, SymptomSystemPrompt, sent.Messages[0]["content"])
	assert.Equal(t, "user", sent.Messages[1]["role"])

	user := sent.Messages[1]["content"].(string)
	assert.Contains(t, user, "Headache")
	assert.Contains(t, user, "Fatigue")
	assert.Contains(t, user, `"moodScore":4`)
	assert.Contains(t, user, `"userCategory":"busy_professional"`)
}

func TestAnalyzeSymptomsPropagatesUpstreamError(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte, _ int) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	})
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.AnalyzeSymptoms(context.Background(), []string{"Nausea"}, model.SymptomContext{})
	assert.Equal(t, http.StatusTooManyRequests, StatusCode(err))
}

func TestBuildSymptomPrompt(t *testing.T) {
	tests := []struct {
		name     string
		symptoms []string
		wantLine string
	}{
		{name: "joined in order", symptoms: []string{"Headache", "Fatigue"}, wantLine: "Symptoms: Headache, Fatigue"},
		{name: "deduplicated and trimmed", symptoms: []string{" Nausea ", "nausea", "", "Dizziness"}, wantLine: "Symptoms: Nausea, Dizziness"},
		{name: "none", symptoms: nil, wantLine: "Symptoms: none reported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := buildSymptomPrompt(tt.symptoms, model.SymptomContext{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantLine, strings.SplitN(prompt, "\n", 2)[0])
			assert.Contains(t, prompt, "User Context: {")
		})
	}
}
