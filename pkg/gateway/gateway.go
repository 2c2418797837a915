// Package gateway 是应用与外部 AI 服务之间的唯一出口：chat completion、
// 语音合成与视频生成。它负责构造端点、附加凭证、解析响应，
// 并把失败统一归类为 TransportError 或 UpstreamError。
//
// 每次调用都是独立的一次请求/响应交换，客户端本身不保存会话状态，
// 可以被多个 goroutine 并发使用。
package gateway

import (
	"context"
	"net/http"

	"corevitals-go/internal/config"
	"corevitals-go/internal/model"
)

const (
	ProviderChat   = "chat-completion"
	ProviderSpeech = "speech-synthesis"
	ProviderVideo  = "video-generation"
)

// Client 定义了网关对外暴露的操作。
type Client interface {
	// ChatCompletion 在 turns 前插入一条 system 指令后提交，返回第一个 choice 的文本。
	ChatCompletion(ctx context.Context, turns []model.ChatTurn, systemPrompt string) (string, error)
	// AnalyzeSymptoms 是使用固定诊断提示词的 ChatCompletion。
	AnalyzeSymptoms(ctx context.Context, symptoms []string, sc model.SymptomContext) (string, error)
	// SynthesizeSpeech 把文本转换为音频，并返回可直接播放的地址。
	SynthesizeSpeech(ctx context.Context, text string) (*Audio, error)
	// GeneratePersonalizedVideo 生成个性化视频并返回视频地址。不会重试。
	GeneratePersonalizedVideo(ctx context.Context, message, recipient string) (string, error)
	// ListReplicas 列出视频服务可用的数字人形象。
	ListReplicas(ctx context.Context) ([]Replica, error)
}

type gatewayClient struct {
	cfg    config.GatewayConfig
	client *http.Client
	audio  AudioStore
}

// Option 用于定制 NewClient 创建的客户端。
type Option func(*gatewayClient)

// WithHTTPClient 替换底层 http.Client（测试或自定义 Transport 时使用）。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *gatewayClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewClient 根据配置创建网关客户端。store 为 nil 时音频以 data URI 形式返回。
func NewClient(cfg config.GatewayConfig, store AudioStore, opts ...Option) Client {
	if store == nil {
		store = DataURIStore{}
	}
	c := &gatewayClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		audio:  store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
