package model

import (
	"slices"
	"time"
)

// SystemStatus 是某个身体系统的整体评估等级。
type SystemStatus string

const (
	StatusExcellent SystemStatus = "excellent"
	StatusGood      SystemStatus = "good"
	StatusFair      SystemStatus = "fair"
	StatusPoor      SystemStatus = "poor"
	StatusCritical  SystemStatus = "critical"
)

// Valid 判断状态值是否合法。
func (s SystemStatus) Valid() bool {
	switch s {
	case StatusExcellent, StatusGood, StatusFair, StatusPoor, StatusCritical:
		return true
	}
	return false
}

// HealthSystem 描述仪表盘上展示的一个身体系统。
type HealthSystem struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Status      SystemStatus   `json:"status"`
	LastChecked LocalTime      `json:"lastChecked"`
	Alerts      []HealthAlert  `json:"alerts"`
	Metrics     []HealthMetric `json:"metrics"`
	Videos      []HealthVideo  `json:"videos"`
}

// HealthAlert 是附在某个系统上的提示。
type HealthAlert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // info / warning / error
	Message   string    `json:"message"`
	Timestamp LocalTime `json:"timestamp"`
	System    string    `json:"system"`
}

// HealthVideo 是与某个系统相关的科普视频。
type HealthVideo struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Duration    string `json:"duration"` // m:ss
	Description string `json:"description"`
}

// HealthMetric 是一个带理想区间的指标。
type HealthMetric struct {
	Name    string       `json:"name"`
	Value   float64      `json:"value"`
	Unit    string       `json:"unit"`
	Trend   string       `json:"trend"` // up / down / stable
	Optimal OptimalRange `json:"optimal"`
}

// OptimalRange 是指标的理想区间（闭区间）。
type OptimalRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// InRange 判断指标当前值是否落在理想区间内。
func (m HealthMetric) InRange() bool {
	return m.Value >= m.Optimal.Min && m.Value <= m.Optimal.Max
}

// HealthSystems 返回 11 个身体系统的静态目录（演示数据）。
// 每次调用都返回新的切片，调用方可以随意修改。
func HealthSystems(now time.Time) []HealthSystem {
	checked := LocalTime(now)
	metric := func(name string, value float64, unit, trend string, lo, hi float64) HealthMetric {
		return HealthMetric{Name: name, Value: value, Unit: unit, Trend: trend, Optimal: OptimalRange{Min: lo, Max: hi}}
	}
	systems := []HealthSystem{
		{
			ID: "integumentary", Name: "Integumentary System",
			Description: "Skin, hair, and nails - your body's protective barrier",
			Status:      StatusGood, LastChecked: checked, Alerts: []HealthAlert{},
			Metrics: []HealthMetric{
				metric("Skin Hydration", 75, "%", "stable", 70, 90),
				metric("UV Exposure", 3, "hours", "down", 0, 2),
			},
		},
		{
			ID: "skeletal", Name: "Skeletal System",
			Description: "Bones and joints - structural foundation of your body",
			Status:      StatusGood, LastChecked: checked, Alerts: []HealthAlert{},
			Metrics: []HealthMetric{
				metric("Bone Density", 85, "%", "stable", 80, 100),
				metric("Joint Mobility", 90, "%", "up", 85, 100),
			},
		},
		{
			ID: "muscular", Name: "Muscular System",
			Description: "Muscles and tendons - movement and strength",
			Status:      StatusExcellent, LastChecked: checked, Alerts: []HealthAlert{},
			Metrics: []HealthMetric{
				metric("Muscle Mass", 78, "%", "up", 70, 90),
				metric("Flexibility", 82, "%", "stable", 75, 95),
			},
		},
		{
			ID: "nervous", Name: "Nervous System",
			Description: "Brain, spinal cord, and nerves - control center",
			Status:      StatusGood, LastChecked: checked,
			Alerts: []HealthAlert{
				{ID: "1", Type: "info", Message: "Consider reducing screen time before bed", Timestamp: checked, System: "nervous"},
			},
			Metrics: []HealthMetric{
				metric("Cognitive Function", 88, "%", "stable", 85, 100),
				metric("Stress Level", 45, "%", "down", 0, 30),
			},
		},
		{
			ID: "endocrine", Name: "Endocrine System",
			Description: "Hormones and glands - chemical messengers",
			Status:      StatusFair, LastChecked: checked,
			Alerts: []HealthAlert{
				{ID: "2", Type: "warning", Message: "Sleep pattern may affect hormone balance", Timestamp: checked, System: "endocrine"},
			},
			Metrics: []HealthMetric{
				metric("Hormone Balance", 70, "%", "stable", 75, 95),
				metric("Metabolic Rate", 82, "%", "up", 80, 100),
			},
		},
		{
			ID: "cardiovascular", Name: "Cardiovascular System",
			Description: "Heart and blood vessels - circulation and oxygen delivery",
			Status:      StatusGood, LastChecked: checked, Alerts: []HealthAlert{},
			Metrics: []HealthMetric{
				metric("Heart Rate", 72, "bpm", "stable", 60, 80),
				metric("Blood Pressure", 118, "mmHg", "stable", 110, 120),
			},
		},
		{
			ID: "lymphatic", Name: "Lymphatic System",
			Description: "Immune defense and fluid balance",
			Status:      StatusGood, LastChecked: checked, Alerts: []HealthAlert{},
			Metrics: []HealthMetric{
				metric("Immune Function", 85, "%", "stable", 80, 95),
				metric("Lymph Flow", 90, "%", "up", 85, 100),
			},
		},
		{
			ID: "respiratory", Name: "Respiratory System",
			Description: "Lungs and airways - oxygen exchange",
			Status:      StatusExcellent, LastChecked: checked, Alerts: []HealthAlert{},
			Metrics: []HealthMetric{
				metric("Lung Capacity", 92, "%", "stable", 85, 100),
				metric("Oxygen Saturation", 98, "%", "stable", 95, 100),
			},
		},
		{
			ID: "digestive", Name: "Digestive System",
			Description: "Stomach, intestines - nutrient processing",
			Status:      StatusFair, LastChecked: checked,
			Alerts: []HealthAlert{
				{ID: "3", Type: "info", Message: "Consider probiotics for gut health", Timestamp: checked, System: "digestive"},
			},
			Metrics: []HealthMetric{
				metric("Digestive Health", 75, "%", "up", 80, 95),
				metric("Nutrient Absorption", 82, "%", "stable", 85, 100),
			},
		},
		{
			ID: "urinary", Name: "Urinary System",
			Description: "Kidneys and bladder - waste filtration",
			Status:      StatusGood, LastChecked: checked, Alerts: []HealthAlert{},
			Metrics: []HealthMetric{
				metric("Kidney Function", 88, "%", "stable", 85, 100),
				metric("Hydration Level", 80, "%", "up", 75, 90),
			},
		},
		{
			ID: "reproductive", Name: "Reproductive System",
			Description: "Reproductive organs and hormones",
			Status:      StatusGood, LastChecked: checked, Alerts: []HealthAlert{},
			Metrics: []HealthMetric{
				metric("Hormonal Balance", 85, "%", "stable", 80, 95),
				metric("Reproductive Health", 90, "%", "stable", 85, 100),
			},
		},
	}
	for i := range systems {
		systems[i].Icon = systemIcons[systems[i].ID]
		systems[i].Videos = slices.Clone(systemVideos[systems[i].ID])
	}
	return systems
}
