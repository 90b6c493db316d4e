package models

import "time"

// Budget 预算模型
type Budget struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Category       string    `json:"category"`
	Limit          float64   `json:"limit"` // 必须大于 0
	CreatedAt      time.Time `json:"created_at"`
	Rollover       *bool     `json:"rollover,omitempty"`        // 结余滚存到下期，仅存储
	AlertThreshold *int      `json:"alert_threshold,omitempty"` // 告警阈值百分比 1-100，仅存储
}
