package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"corevitals-go/internal/model"
)

// SymptomSystemPrompt 是症状分析使用的固定 system 指令，覆盖 11 个身体系统。
const SymptomSystemPrompt = `You are CoreVitals AI, an expert medical diagnostic assistant. Analyze the provided symptoms and user context to evaluate which of the 11 major body systems may be affected: Integumentary, Skeletal, Muscular, Nervous, Endocrine, Cardiovascular, Lymphatic, Respiratory, Digestive, Urinary, Reproductive.

Provide a detailed analysis including:
1. Most likely affected systems
2. Severity assessment (1-10 scale)
3. Recommended immediate actions
4. Lifestyle modifications
5. When to seek professional medical care

Be thorough but accessible for busy professionals. Focus on actionable insights.`

const noSymptomsText = "none reported"

// AnalyzeSymptoms 把症状与上下文拼成一条 user 消息后走 ChatCompletion。
// 受影响系统与严重程度完全由模型以自由文本给出，这里不做结构化解析。
func (c *gatewayClient) AnalyzeSymptoms(ctx context.Context, symptoms []string, sc model.SymptomContext) (string, error) {
	prompt, err := buildSymptomPrompt(symptoms, sc)
	if err != nil {
		return "", err
	}
	return c.ChatCompletion(ctx, []model.ChatTurn{{Role: model.RoleUser, Content: prompt}}, SymptomSystemPrompt)
}

func buildSymptomPrompt(symptoms []string, sc model.SymptomContext) (string, error) {
	ctxJSON, err := json.Marshal(sc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal symptom context: %w", err)
	}

	labels := normalizeSymptoms(symptoms)
	list := noSymptomsText
	if len(labels) > 0 {
		list = strings.Join(labels, ", ")
	}

	var b strings.Builder
	b.WriteString("Symptoms: ")
	b.WriteString(list)
	b.WriteString("\nUser Context: ")
	b.Write(ctxJSON)
	b.WriteString("\n\nPlease analyze these symptoms across all 11 body systems and provide comprehensive health guidance.")
	return b.String(), nil
}

// normalizeSymptoms 去掉空白项并去重（忽略大小写），保留首次出现的顺序。
func normalizeSymptoms(symptoms []string) []string {
	seen := make(map[string]struct{}, len(symptoms))
	out := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
