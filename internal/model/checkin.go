package model

import "time"

// SymptomContext 是症状分析时随提示词一起发送的结构化上下文。
// 字段固定，序列化结果即为提示词中的 "User Context"。
type SymptomContext struct {
	MoodScore    int       `json:"moodScore"`
	EnergyLevel  int       `json:"energyLevel"`
	SleepHours   float64   `json:"sleepHours"`
	StressLevel  int       `json:"stressLevel"`
	Notes        string    `json:"notes,omitempty"`
	UserCategory string    `json:"userCategory,omitempty"`
	RecordedAt   time.Time `json:"timestamp"`
}

// CheckIn 是每日健康打卡表单。只作为输入，不做持久化。
type CheckIn struct {
	Symptoms    []string `json:"symptoms"`
	MoodScore   int      `json:"moodScore" binding:"min=1,max=10"`
	EnergyLevel int      `json:"energyLevel" binding:"min=1,max=10"`
	SleepHours  float64  `json:"sleepHours" binding:"min=0,max=24"`
	StressLevel int      `json:"stressLevel" binding:"min=1,max=10"`
	Notes       string   `json:"notes" binding:"max=2000"`
}

// Context 将打卡表单转换为分析上下文。
func (c CheckIn) Context(userCategory string, at time.Time) SymptomContext {
	return SymptomContext{
		MoodScore:    c.MoodScore,
		EnergyLevel:  c.EnergyLevel,
		SleepHours:   c.SleepHours,
		StressLevel:  c.StressLevel,
		Notes:        c.Notes,
		UserCategory: userCategory,
		RecordedAt:   at,
	}
}
