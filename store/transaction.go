package store

import (
	"time"

	"fintrack/models"

	"github.com/google/uuid"
)

// TransactionInput 创建交易的字段。Source 为空时默认 manual。
// 存储层不校验金额正负与类别归属，由调用方（表单/接口层）负责。
type TransactionInput struct {
	UserID    string
	Type      string
	Category  string
	Amount    float64
	Date      string
	Notes     string
	ReceiptID string
	Source    string
}

// TransactionPatch 交易的部分更新，nil 字段表示保持不变。
// id 与 user_id 不可修改。
type TransactionPatch struct {
	Type      *string
	Category  *string
	Amount    *float64
	Date      *string
	Notes     *string
	ReceiptID *string
	Source    *string
}

// AddTransaction 新增交易，插入到列表头部（按录入时间新者在前）
func (s *Store) AddTransaction(in TransactionInput) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Source == "" {
		in.Source = models.SourceManual
	}
	tx := models.Transaction{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Type:      in.Type,
		Category:  in.Category,
		Amount:    in.Amount,
		Date:      in.Date,
		Notes:     in.Notes,
		ReceiptID: in.ReceiptID,
		Source:    in.Source,
		CreatedAt: time.Now(),
	}

	s.state.Transactions = append([]models.Transaction{tx}, s.state.Transactions...)
	s.save()
	return tx
}

// UpdateTransaction 合并给定字段到已有交易，记录不存在时静默忽略
func (s *Store) UpdateTransaction(id string, patch TransactionPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Transactions {
		if s.state.Transactions[i].ID != id {
			continue
		}
		tx := &s.state.Transactions[i]
		if patch.Type != nil {
			tx.Type = *patch.Type
		}
		if patch.Category != nil {
			tx.Category = *patch.Category
		}
		if patch.Amount != nil {
			tx.Amount = *patch.Amount
		}
		if patch.Date != nil {
			tx.Date = *patch.Date
		}
		if patch.Notes != nil {
			tx.Notes = *patch.Notes
		}
		if patch.ReceiptID != nil {
			tx.ReceiptID = *patch.ReceiptID
		}
		if patch.Source != nil {
			tx.Source = *patch.Source
		}
		s.save()
		return
	}
}

// RemoveTransaction 删除交易，关联票据（如有）一并删除。
// 记录不存在时静默忽略。
func (s *Store) RemoveTransaction(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Transactions {
		if s.state.Transactions[i].ID != id {
			continue
		}
		if rid := s.state.Transactions[i].ReceiptID; rid != "" {
			s.removeReceiptLocked(rid)
		}
		s.state.Transactions = append(s.state.Transactions[:i], s.state.Transactions[i+1:]...)
		s.save()
		return
	}
}

// Transaction 按 ID 查询交易
func (s *Store) Transaction(id string) (models.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.state.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return models.Transaction{}, false
}

// Transactions 获取某用户的全部交易，保持存储顺序（新者在前）
func (s *Store) Transactions(userID string) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []models.Transaction
	for _, tx := range s.state.Transactions {
		if tx.UserID == userID {
			list = append(list, tx)
		}
	}
	return list
}

// ImportTransactions 调用生成器产出一批模拟导入交易并整批插入头部
func (s *Store) ImportTransactions(userID string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userID)
	if u == nil {
		return nil, ErrUserNotFound
	}

	batch := s.gen.Generate(cloneUser(*u))
	s.state.Transactions = append(append([]models.Transaction(nil), batch...), s.state.Transactions...)
	s.save()
	return batch, nil
}
