// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"
	"strings"

	"corevitals-go/internal/model"
	"corevitals-go/pkg/gateway"
	"corevitals-go/pkg/log"
)

// DefaultPersonaPrompt 是聊天助手的默认人设，可通过 assistant.persona_prompt 覆盖。
const DefaultPersonaPrompt = `You are CoreVitals AI, an expert medical diagnostic assistant specializing in comprehensive health analysis across all 11 major body systems: Integumentary, Skeletal, Muscular, Nervous, Endocrine, Cardiovascular, Lymphatic, Respiratory, Digestive, Urinary, and Reproductive.

Your expertise includes:
- Symptom analysis and correlation across multiple body systems
- Personalized health recommendations for busy professionals
- Lifestyle modifications based on work schedules (day/night/rotating shifts)
- Preventive care guidance
- When to seek immediate medical attention

Always provide:
1. Clear, actionable advice
2. System-specific analysis when relevant
3. Risk assessment and urgency levels
4. Practical recommendations for busy lifestyles
5. Professional medical consultation recommendations when appropriate

Be thorough but concise, empathetic but professional, and always prioritize user safety.`

// AssistantService 定义了健康助手对话的接口。
type AssistantService interface {
	Reply(ctx context.Context, history []model.ChatTurn) (string, error)
}

type assistantService struct {
	client        gateway.Client
	personaPrompt string
}

// NewAssistantService 创建一个新的 AssistantService。personaPrompt 为空时使用默认人设。
func NewAssistantService(client gateway.Client, personaPrompt string) AssistantService {
	if strings.TrimSpace(personaPrompt) == "" {
		personaPrompt = DefaultPersonaPrompt
	}
	return &assistantService{client: client, personaPrompt: personaPrompt}
}

// Reply 把完整对话历史连同人设发送给模型，返回助手的下一条回复。
// 对话不在服务端保存，每次请求都由调用方携带完整历史。
func (s *assistantService) Reply(ctx context.Context, history []model.ChatTurn) (string, error) {
	reply, err := s.client.ChatCompletion(ctx, history, s.personaPrompt)
	if err != nil {
		return "", fmt.Errorf("assistant reply failed: %w", err)
	}
	log.Debugw("助手回复完成", "turns", len(history), "replyLength", len(reply))
	return reply, nil
}
