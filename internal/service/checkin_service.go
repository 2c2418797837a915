package service

import (
	"context"
	"fmt"
	"time"

	"corevitals-go/internal/model"
	"corevitals-go/pkg/gateway"
)

// CheckInService 对每日打卡做跨系统症状分析。
type CheckInService interface {
	Analyze(ctx context.Context, checkIn model.CheckIn) (string, error)
}

type checkInService struct {
	client       gateway.Client
	userCategory string
	now          func() time.Time
}

// NewCheckInService 创建一个新的 CheckInService。
func NewCheckInService(client gateway.Client, userCategory string) CheckInService {
	return &checkInService{client: client, userCategory: userCategory, now: time.Now}
}

func (s *checkInService) Analyze(ctx context.Context, checkIn model.CheckIn) (string, error) {
	symptomCtx := checkIn.Context(s.userCategory, s.now().UTC())
	analysis, err := s.client.AnalyzeSymptoms(ctx, checkIn.Symptoms, symptomCtx)
	if err != nil {
		return "", fmt.Errorf("symptom analysis failed: %w", err)
	}
	return analysis, nil
}
