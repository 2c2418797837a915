// Package model 包含了应用的数据模型定义。
package model

import "time"

// Role 标识一条对话消息的发送方。
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid 判断角色是否属于 user / assistant / system。
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// ChatTurn 代表对话中的单条消息。切片顺序即时间顺序。
// Timestamp 仅供展示层使用，发往上游前会被去掉。
type ChatTurn struct {
	Role      Role       `json:"role" binding:"required"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}
