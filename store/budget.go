package store

import (
	"time"

	"fintrack/models"

	"github.com/google/uuid"
)

// BudgetInput 预算的创建/更新字段。
// ID 为空表示创建；给定 ID 时必须命中已有记录，否则拒绝。
// Rollover / AlertThreshold 为 nil 表示"保持不变"，不是"清空"。
type BudgetInput struct {
	ID             string
	UserID         string
	Category       string
	Limit          float64
	Rollover       *bool
	AlertThreshold *int
}

// UpsertBudget 创建或更新预算。上限必须大于 0，校验先于任何修改。
func (s *Store) UpsertBudget(in BudgetInput) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Limit <= 0 {
		return models.Budget{}, ErrInvalidBudgetLimit
	}

	if in.ID != "" {
		for i := range s.state.Budgets {
			if s.state.Budgets[i].ID != in.ID {
				continue
			}
			b := &s.state.Budgets[i]
			b.UserID = in.UserID
			b.Category = in.Category
			b.Limit = in.Limit
			if in.Rollover != nil {
				b.Rollover = in.Rollover
			}
			if in.AlertThreshold != nil {
				b.AlertThreshold = in.AlertThreshold
			}
			s.save()
			return cloneBudget(*b), nil
		}
		return models.Budget{}, ErrBudgetNotFound
	}

	b := models.Budget{
		ID:             uuid.NewString(),
		UserID:         in.UserID,
		Category:       in.Category,
		Limit:          in.Limit,
		CreatedAt:      time.Now(),
		Rollover:       in.Rollover,
		AlertThreshold: in.AlertThreshold,
	}
	s.state.Budgets = append(s.state.Budgets, b)
	s.save()
	return cloneBudget(b), nil
}

// RemoveBudget 删除预算，不存在时静默忽略
func (s *Store) RemoveBudget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Budgets {
		if s.state.Budgets[i].ID == id {
			s.state.Budgets = append(s.state.Budgets[:i], s.state.Budgets[i+1:]...)
			s.save()
			return
		}
	}
}

// Budgets 获取某用户的全部预算
func (s *Store) Budgets(userID string) []models.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []models.Budget
	for _, b := range s.state.Budgets {
		if b.UserID == userID {
			list = append(list, cloneBudget(b))
		}
	}
	return list
}
