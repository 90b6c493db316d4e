package store

import (
	"time"

	"fintrack/models"

	"github.com/google/uuid"
)

// LogAnalyticsEmail 记录一次分析邮件发送，插入日志头部。
// 日志只追加，不校验用户订阅档位（由调用方把关）。
func (s *Store) LogAnalyticsEmail(userID, period string) models.AnalyticsLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.AnalyticsLog{
		ID:     uuid.NewString(),
		UserID: userID,
		Period: period,
		SentAt: time.Now(),
	}
	s.state.AnalyticsLogs = append([]models.AnalyticsLog{entry}, s.state.AnalyticsLogs...)
	s.save()
	return entry
}

// AnalyticsLogs 获取某用户的分析邮件日志（新者在前）
func (s *Store) AnalyticsLogs(userID string) []models.AnalyticsLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []models.AnalyticsLog
	for _, l := range s.state.AnalyticsLogs {
		if l.UserID == userID {
			list = append(list, l)
		}
	}
	return list
}
