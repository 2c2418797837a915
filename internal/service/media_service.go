package service

import (
	"context"
	"fmt"

	"corevitals-go/pkg/gateway"
	"corevitals-go/pkg/log"
)

// MediaService 负责语音播报与个性化视频。
type MediaService interface {
	Speak(ctx context.Context, text string) (*gateway.Audio, error)
	PersonalizedVideo(ctx context.Context, message, recipientName string) (string, error)
	Replicas(ctx context.Context) ([]gateway.Replica, error)
}

type mediaService struct {
	client gateway.Client
}

// NewMediaService 创建一个新的 MediaService。
func NewMediaService(client gateway.Client) MediaService {
	return &mediaService{client: client}
}

func (s *mediaService) Speak(ctx context.Context, text string) (*gateway.Audio, error) {
	audio, err := s.client.SynthesizeSpeech(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	return audio, nil
}

func (s *mediaService) PersonalizedVideo(ctx context.Context, message, recipientName string) (string, error) {
	videoURL, err := s.client.GeneratePersonalizedVideo(ctx, message, recipientName)
	if err != nil {
		return "", fmt.Errorf("video generation failed: %w", err)
	}
	log.Infow("个性化视频已提交", "recipient", recipientName)
	return videoURL, nil
}

func (s *mediaService) Replicas(ctx context.Context) ([]gateway.Replica, error) {
	replicas, err := s.client.ListReplicas(ctx)
	if err != nil {
		return nil, fmt.Errorf("list replicas failed: %w", err)
	}
	return replicas, nil
}
