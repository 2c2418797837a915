package service

import (
	"errors"
	"time"

	"corevitals-go/internal/model"
)

// ErrSystemNotFound 表示请求的身体系统不存在。
var ErrSystemNotFound = errors.New("health system not found")

// ErrInvalidStatus 表示状态过滤参数不是已知状态。
var ErrInvalidStatus = errors.New("invalid health system status")

// SystemService 提供 11 个身体系统的只读目录。
type SystemService interface {
	List(status model.SystemStatus) ([]model.HealthSystem, error)
	Get(id string) (*model.HealthSystem, error)
}

type systemService struct {
	now func() time.Time
}

// NewSystemService 创建一个新的 SystemService。
func NewSystemService() SystemService {
	return &systemService{now: time.Now}
}

// List 返回全部系统，status 非空时只返回该状态的系统。
func (s *systemService) List(status model.SystemStatus) ([]model.HealthSystem, error) {
	systems := model.HealthSystems(s.now())
	if status == "" {
		return systems, nil
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	filtered := make([]model.HealthSystem, 0, len(systems))
	for _, sys := range systems {
		if sys.Status == status {
			filtered = append(filtered, sys)
		}
	}
	return filtered, nil
}

func (s *systemService) Get(id string) (*model.HealthSystem, error) {
	for _, sys := range model.HealthSystems(s.now()) {
		if sys.ID == id {
			return &sys, nil
		}
	}
	return nil, ErrSystemNotFound
}
