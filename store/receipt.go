package store

import (
	"time"

	"fintrack/models"

	"github.com/google/uuid"
)

// AddReceipt 新增票据，追加到列表尾部
func (s *Store) AddReceipt(fileName, dataURL string) models.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := models.Receipt{
		ID:         uuid.NewString(),
		FileName:   fileName,
		DataURL:    dataURL,
		UploadedAt: time.Now(),
	}
	s.state.Receipts = append(s.state.Receipts, r)
	s.save()
	return r
}

// RemoveReceipt 删除票据，不存在时静默忽略。
// 不清理仍指向它的交易 receipt_id（弱引用，允许悬空），
// 接口层在读取不到票据时按不存在处理。
func (s *Store) RemoveReceipt(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeReceiptLocked(id) {
		s.save()
	}
}

// removeReceiptLocked 从列表中剔除票据。须持有 s.mu。
func (s *Store) removeReceiptLocked(id string) bool {
	for i := range s.state.Receipts {
		if s.state.Receipts[i].ID == id {
			s.state.Receipts = append(s.state.Receipts[:i], s.state.Receipts[i+1:]...)
			return true
		}
	}
	return false
}

// Receipt 按 ID 查询票据
func (s *Store) Receipt(id string) (models.Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.state.Receipts {
		if r.ID == id {
			return r, true
		}
	}
	return models.Receipt{}, false
}
