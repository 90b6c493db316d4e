package models

import "time"

const (
	// PeriodWeekly 周报
	PeriodWeekly = "weekly"
	// PeriodMonthly 月报
	PeriodMonthly = "monthly"
)

// AnalyticsLog 分析邮件发送日志，只追加不修改
type AnalyticsLog struct {
	ID     string    `json:"id"`
	UserID string    `json:"user_id"`
	Period string    `json:"period"` // weekly / monthly
	SentAt time.Time `json:"sent_at"`
}
