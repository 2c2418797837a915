// Package config 负责加载和管理应用程序的配置。
package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// EnvPrefix 是环境变量覆盖配置时使用的前缀，例如 COREVITALS_GATEWAY_CHAT_API_KEY。
const EnvPrefix = "COREVITALS"

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Assistant AssistantConfig `mapstructure:"assistant"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// RedisConfig 存储 Redis 的配置。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig 存储 JWT 相关的配置。
type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
	RefreshTokenExpireDays int    `mapstructure:"refresh_token_expire_days"`
}

// AuthConfig 列出允许换取 token 的 API 客户端。
type AuthConfig struct {
	Clients []ClientCredential `mapstructure:"clients"`
}

// ClientCredential 只保存 bcrypt 后的客户端密钥，不保存明文。
type ClientCredential struct {
	ID      string `mapstructure:"id"`
	KeyHash string `mapstructure:"key_hash"`
}

// RateLimitConfig 控制每个客户端在固定窗口内可调用上游 AI 服务的次数。
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。
type MinIOConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	BucketName      string        `mapstructure:"bucket_name"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

// GatewayConfig 聚合三个外部 AI 服务的端点、凭证与调用策略。
type GatewayConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Video   VideoConfig   `mapstructure:"video"`
}

// RetryConfig 描述幂等调用的有界指数退避重试。MaxAttempts 包含首次调用。
type RetryConfig struct {
	MaxAttempts     int           `mapstructure:"max_attempts"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier"`
}

// ChatConfig 对应 Azure OpenAI 风格的 chat completion 部署。
type ChatConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	Deployment  string  `mapstructure:"deployment"`
	APIVersion  string  `mapstructure:"api_version"`
	APIKey      string  `mapstructure:"api_key"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTurns    int     `mapstructure:"max_turns"`
}

// SpeechConfig 对应 ElevenLabs 的文本转语音接口。
type SpeechConfig struct {
	BaseURL         string  `mapstructure:"base_url"`
	APIKey          string  `mapstructure:"api_key"`
	VoiceID         string  `mapstructure:"voice_id"`
	ModelID         string  `mapstructure:"model_id"`
	Stability       float64 `mapstructure:"stability"`
	SimilarityBoost float64 `mapstructure:"similarity_boost"`
	MaxTextLength   int     `mapstructure:"max_text_length"`
}

// VideoConfig 对应 Tavus 的视频生成接口。
type VideoConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	ReplicaID     string `mapstructure:"replica_id"`
	BackgroundURL string `mapstructure:"background_url"`
}

// AssistantConfig 配置聊天助手的人设与打卡分析时的用户类别。
type AssistantConfig struct {
	PersonaPrompt string `mapstructure:"persona_prompt"`
	UserCategory  string `mapstructure:"user_category"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	Conf = *cfg
}

// Load 读取 YAML 文件（可为空路径），再用 COREVITALS_ 前缀的环境变量覆盖。
// 凭证类配置应只通过环境变量提供。
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_path", "")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_token_expire_hours", 2)
	v.SetDefault("jwt.refresh_token_expire_days", 7)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 30)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("minio.enabled", false)
	v.SetDefault("minio.endpoint", "127.0.0.1:9000")
	v.SetDefault("minio.access_key_id", "")
	v.SetDefault("minio.secret_access_key", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket_name", "corevitals-audio")
	v.SetDefault("minio.url_expiry", time.Hour)

	v.SetDefault("gateway.timeout", 30*time.Second)
	v.SetDefault("gateway.retry.max_attempts", 3)
	v.SetDefault("gateway.retry.initial_interval", 500*time.Millisecond)
	v.SetDefault("gateway.retry.max_interval", 5*time.Second)
	v.SetDefault("gateway.retry.multiplier", 2.0)

	v.SetDefault("gateway.chat.base_url", "")
	v.SetDefault("gateway.chat.deployment", "gpt-4o")
	v.SetDefault("gateway.chat.api_version", "2023-06-01-preview")
	v.SetDefault("gateway.chat.api_key", "")
	v.SetDefault("gateway.chat.max_tokens", 1000)
	v.SetDefault("gateway.chat.temperature", 0.7)
	v.SetDefault("gateway.chat.max_turns", 50)

	v.SetDefault("gateway.speech.base_url", "https://api.elevenlabs.io")
	v.SetDefault("gateway.speech.api_key", "")
	v.SetDefault("gateway.speech.voice_id", "21m00Tcm4TlvDq8ikWAM")
	v.SetDefault("gateway.speech.model_id", "eleven_monolingual_v1")
	v.SetDefault("gateway.speech.stability", 0.5)
	v.SetDefault("gateway.speech.similarity_boost", 0.5)
	v.SetDefault("gateway.speech.max_text_length", 5000)

	v.SetDefault("gateway.video.base_url", "https://tavusapi.com")
	v.SetDefault("gateway.video.api_key", "")
	v.SetDefault("gateway.video.replica_id", "")
	v.SetDefault("gateway.video.background_url", DefaultVideoBackgroundURL)

	v.SetDefault("assistant.persona_prompt", "")
	v.SetDefault("assistant.user_category", "busy_professional")
}

// DefaultVideoBackgroundURL 是个性化视频默认使用的诊室背景图。
const DefaultVideoBackgroundURL = "https://example.com/medical-office-background.jpg"

// Validate 检查启动所必需的配置，缺失凭证时拒绝启动。
func (c *Config) Validate() error {
	var errs []error
	required := map[string]string{
		"jwt.secret":               c.JWT.Secret,
		"gateway.chat.base_url":    c.Gateway.Chat.BaseURL,
		"gateway.chat.api_key":     c.Gateway.Chat.APIKey,
		"gateway.speech.api_key":   c.Gateway.Speech.APIKey,
		"gateway.video.api_key":    c.Gateway.Video.APIKey,
		"gateway.video.replica_id": c.Gateway.Video.ReplicaID,
	}
	for _, key := range slices.Sorted(maps.Keys(required)) {
		if strings.TrimSpace(required[key]) == "" {
			errs = append(errs, fmt.Errorf("缺少必需配置 %s (环境变量 %s)", key, EnvName(key)))
		}
	}
	if c.Gateway.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("gateway.retry.max_attempts 必须 >= 1, 当前为 %d", c.Gateway.Retry.MaxAttempts))
	}
	if c.Gateway.Chat.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("gateway.chat.max_turns 必须 >= 1, 当前为 %d", c.Gateway.Chat.MaxTurns))
	}
	if c.Gateway.Speech.MaxTextLength < 1 {
		errs = append(errs, fmt.Errorf("gateway.speech.max_text_length 必须 >= 1, 当前为 %d", c.Gateway.Speech.MaxTextLength))
	}
	if c.RateLimit.Enabled && c.RateLimit.Requests < 1 {
		errs = append(errs, fmt.Errorf("rate_limit.requests 必须 >= 1, 当前为 %d", c.RateLimit.Requests))
	}
	if c.MinIO.Enabled && (c.MinIO.AccessKeyID == "" || c.MinIO.SecretAccessKey == "") {
		errs = append(errs, errors.New("minio.enabled 为 true 时必须提供 access_key_id 与 secret_access_key"))
	}
	return errors.Join(errs...)
}

// EnvName 返回配置键对应的环境变量名。
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
