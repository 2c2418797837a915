package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type videoRequest struct {
	ReplicaID     string `json:"replica_id"`
	Script        string `json:"script"`
	BackgroundURL string `json:"background_url,omitempty"`
}

type videoResponse struct {
	VideoID   string `json:"video_id"`
	VideoURL  string `json:"video_url"`
	HostedURL string `json:"hosted_url"`
	Status    string `json:"status"`
}

// Replica 是视频服务中的一个数字人形象。
type Replica struct {
	ReplicaID   string `json:"replicaId"`
	ReplicaName string `json:"replicaName"`
	Status      string `json:"status"`
}

type replicaListResponse struct {
	Data []struct {
		ReplicaID   string `json:"replica_id"`
		ReplicaName string `json:"replica_name"`
		Status      string `json:"status"`
	} `json:"data"`
}

// VideoScript 把收件人姓名与消息拼接成视频脚本。
func VideoScript(recipient, message string) string {
	return fmt.Sprintf("Hello %s, %s", strings.TrimSpace(recipient), strings.TrimSpace(message))
}

// GeneratePersonalizedVideo 提交视频生成请求。上游副作用未知，只尝试一次。
func (c *gatewayClient) GeneratePersonalizedVideo(ctx context.Context, message, recipient string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyText
	}
	if strings.TrimSpace(recipient) == "" {
		return "", ErrEmptyRecipient
	}

	reqBytes, err := json.Marshal(videoRequest{
		ReplicaID:     c.cfg.Video.ReplicaID,
		Script:        VideoScript(recipient, message),
		BackgroundURL: c.cfg.Video.BackgroundURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal video request: %w", err)
	}

	r, err := c.send(ctx, exchange{
		provider:   ProviderVideo,
		op:         "generate video",
		method:     http.MethodPost,
		url:        c.videoURL("/v2/videos"),
		header:     jsonHeader("x-api-key", c.cfg.Video.APIKey),
		body:       reqBytes,
		idempotent: false,
	})
	if err != nil {
		return "", err
	}

	var videoResp videoResponse
	if err := json.Unmarshal(r.body, &videoResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode video response: %v", ErrMalformedResponse, err)
	}
	videoURL := videoResp.VideoURL
	if videoURL == "" {
		videoURL = videoResp.HostedURL
	}
	if videoURL == "" {
		return "", fmt.Errorf("%w: video response has no url", ErrMalformedResponse)
	}
	return videoURL, nil
}

// ListReplicas 查询可用的数字人形象。只读请求，可以重试。
func (c *gatewayClient) ListReplicas(ctx context.Context) ([]Replica, error) {
	header := http.Header{}
	header.Set("x-api-key", c.cfg.Video.APIKey)

	r, err := c.send(ctx, exchange{
		provider:   ProviderVideo,
		op:         "list replicas",
		method:     http.MethodGet,
		url:        c.videoURL("/v2/replicas"),
		header:     header,
		idempotent: true,
	})
	if err != nil {
		return nil, err
	}

	var listResp replicaListResponse
	if err := json.Unmarshal(r.body, &listResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode replica list: %v", ErrMalformedResponse, err)
	}
	replicas := make([]Replica, 0, len(listResp.Data))
	for _, d := range listResp.Data {
		replicas = append(replicas, Replica{ReplicaID: d.ReplicaID, ReplicaName: d.ReplicaName, Status: d.Status})
	}
	return replicas, nil
}

func (c *gatewayClient) videoURL(path string) string {
	return strings.TrimRight(c.cfg.Video.BaseURL, "/") + path
}
