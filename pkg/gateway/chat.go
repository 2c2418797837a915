package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"corevitals-go/internal/model"
)

type chatMessage struct {
	Role    model.Role `json:"role"`
	Content string     `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion 调用部署级 chat completions 接口。
func (c *gatewayClient) ChatCompletion(ctx context.Context, turns []model.ChatTurn, systemPrompt string) (string, error) {
	messages, err := c.composeMessages(turns, systemPrompt)
	if err != nil {
		return "", err
	}

	reqBytes, err := json.Marshal(chatRequest{
		Messages:    messages,
		MaxTokens:   c.cfg.Chat.MaxTokens,
		Temperature: c.cfg.Chat.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	r, err := c.send(ctx, exchange{
		provider:   ProviderChat,
		op:         "chat completion",
		method:     http.MethodPost,
		url:        c.chatURL(),
		header:     jsonHeader("api-key", c.cfg.Chat.APIKey),
		body:       reqBytes,
		idempotent: true,
	})
	if err != nil {
		return "", err
	}

	var chatResp chatResponse
	if err := json.Unmarshal(r.body, &chatResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode chat response: %v", ErrMalformedResponse, err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: chat response has no choices", ErrMalformedResponse)
	}
	return chatResp.Choices[0].Message.Content, nil
}

// composeMessages 返回新分配的消息切片：一条 system 指令加上调用方的对话（去掉时间戳）。
func (c *gatewayClient) composeMessages(turns []model.ChatTurn, systemPrompt string) ([]chatMessage, error) {
	if len(turns) == 0 {
		return nil, ErrEmptyConversation
	}
	if limit := c.cfg.Chat.MaxTurns; limit > 0 && len(turns) > limit {
		return nil, fmt.Errorf("%w (%d > %d)", ErrConversationTooLong, len(turns), limit)
	}

	msgs := make([]chatMessage, 0, len(turns)+1)
	msgs = append(msgs, chatMessage{Role: model.RoleSystem, Content: systemPrompt})
	for i, t := range turns {
		// 调用方的 system 消息原位转发，首位的 system 指令始终由网关添加
		if !t.Role.Valid() {
			return nil, fmt.Errorf("%w (turn %d has role %q)", ErrInvalidRole, i, t.Role)
		}
		msgs = append(msgs, chatMessage{Role: t.Role, Content: t.Content})
	}
	return msgs, nil
}

func (c *gatewayClient) chatURL() string {
	q := url.Values{}
	q.Set("api-version", c.cfg.Chat.APIVersion)
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?%s",
		strings.TrimRight(c.cfg.Chat.BaseURL, "/"), url.PathEscape(c.cfg.Chat.Deployment), q.Encode())
}
