package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

const defaultAudioContentType = "audio/mpeg"

// Audio 是语音合成的结果。URL 可以直接绑定到播放器。
type Audio struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

// AudioStore 把合成得到的原始音频转换成可引用的地址。
type AudioStore interface {
	Save(ctx context.Context, audio []byte, contentType string) (string, error)
}

// DataURIStore 把音频内联为 data URI，不依赖任何外部存储。
type DataURIStore struct{}

func (DataURIStore) Save(_ context.Context, audio []byte, contentType string) (string, error) {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(audio), nil
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// SynthesizeSpeech 调用 text-to-speech 接口。空文本与超长文本在本地拒绝。
func (c *gatewayClient) SynthesizeSpeech(ctx context.Context, text string) (*Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if limit := c.cfg.Speech.MaxTextLength; limit > 0 {
		if n := utf8.RuneCountInString(text); n > limit {
			return nil, fmt.Errorf("%w (%d > %d characters)", ErrTextTooLong, n, limit)
		}
	}

	reqBytes, err := json.Marshal(speechRequest{
		Text:    text,
		ModelID: c.cfg.Speech.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       c.cfg.Speech.Stability,
			SimilarityBoost: c.cfg.Speech.SimilarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal speech request: %w", err)
	}

	header := jsonHeader("xi-api-key", c.cfg.Speech.APIKey)
	header.Set("Accept", defaultAudioContentType)

	r, err := c.send(ctx, exchange{
		provider:   ProviderSpeech,
		op:         "text to speech",
		method:     http.MethodPost,
		url:        strings.TrimRight(c.cfg.Speech.BaseURL, "/") + "/v1/text-to-speech/" + url.PathEscape(c.cfg.Speech.VoiceID),
		header:     header,
		body:       reqBytes,
		idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	if len(r.body) == 0 {
		return nil, fmt.Errorf("%w: speech response has no audio", ErrMalformedResponse)
	}

	contentType := r.contentType
	if contentType == "" || !strings.HasPrefix(contentType, "audio/") {
		contentType = defaultAudioContentType
	}
	handle, err := c.audio.Save(ctx, r.body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store synthesized audio: %w", err)
	}
	return &Audio{URL: handle, ContentType: contentType, Size: len(r.body)}, nil
}
