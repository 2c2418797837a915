package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("COREVITALS_JWT_SECRET", "jwt-secret")
	t.Setenv("COREVITALS_GATEWAY_CHAT_BASE_URL", "https://example.openai.azure.com")
	t.Setenv("COREVITALS_GATEWAY_CHAT_API_KEY", "chat-key")
	t.Setenv("COREVITALS_GATEWAY_SPEECH_API_KEY", "speech-key")
	t.Setenv("COREVITALS_GATEWAY_VIDEO_API_KEY", "video-key")
	t.Setenv("COREVITALS_GATEWAY_VIDEO_REPLICA_ID", "r-1")
}

func TestLoadDefaultsWithEnvCredentials(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "chat-key", cfg.Gateway.Chat.APIKey)
	assert.Equal(t, "r-1", cfg.Gateway.Video.ReplicaID)
	assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 3, cfg.Gateway.Retry.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Gateway.Retry.InitialInterval)
	assert.Equal(t, "gpt-4o", cfg.Gateway.Chat.Deployment)
	assert.Equal(t, "2023-06-01-preview", cfg.Gateway.Chat.APIVersion)
	assert.Equal(t, 1000, cfg.Gateway.Chat.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Gateway.Chat.Temperature, 1e-9)
	assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", cfg.Gateway.Speech.VoiceID)
	assert.Equal(t, "eleven_monolingual_v1", cfg.Gateway.Speech.ModelID)
	assert.Equal(t, 5000, cfg.Gateway.Speech.MaxTextLength)
	assert.Equal(t, "https://tavusapi.com", cfg.Gateway.Video.BaseURL)
	assert.Equal(t, DefaultVideoBackgroundURL, cfg.Gateway.Video.BackgroundURL)
	assert.Equal(t, "busy_professional", cfg.Assistant.UserCategory)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COREVITALS_GATEWAY_CHAT_MAX_TURNS", "12")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
gateway:
  timeout: 5s
  chat:
    max_turns: 20
    temperature: 0.2
auth:
  clients:
    - id: mobile
      key_hash: "$2a$10$abcdefghijklmnopqrstuv"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 12, cfg.Gateway.Chat.MaxTurns)
	assert.InDelta(t, 0.2, cfg.Gateway.Chat.Temperature, 1e-9)
	require.Len(t, cfg.Auth.Clients, 1)
	assert.Equal(t, "mobile", cfg.Auth.Clients[0].ID)
}

func TestLoadFailsWithoutCredentials(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COREVITALS_GATEWAY_CHAT_API_KEY")
	assert.Contains(t, err.Error(), "COREVITALS_JWT_SECRET")
}

func TestLoadMissingFile(t *testing.T) {
	setRequiredEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRanges(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COREVITALS_GATEWAY_RETRY_MAX_ATTEMPTS", "0")
	t.Setenv("COREVITALS_MINIO_ENABLED", "true")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway.retry.max_attempts")
	assert.Contains(t, err.Error(), "minio.enabled")
}

func TestValidateRateLimitRequests(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COREVITALS_RATE_LIMIT_REQUESTS", "0")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit.requests")

	// 关闭限流时不检查次数
	t.Setenv("COREVITALS_RATE_LIMIT_ENABLED", "false")
	_, err = Load("")
	assert.NoError(t, err)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "COREVITALS_GATEWAY_SPEECH_API_KEY", EnvName("gateway.speech.api_key"))
}
