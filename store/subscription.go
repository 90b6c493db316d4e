package store

import (
	"strings"
	"time"

	"fintrack/models"
)

// UpgradeToPremium 升级为高级版：订阅置为 premium/active，
// 续费时间为一个自然月后（按标准日期库的加月规则处理月末），
// 并把完整默认类别并入用户类别（保留自定义类别，不产生重复）。
// 用户不存在时静默忽略。重复调用不会叠加类别。
func (s *Store) UpgradeToPremium(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userID)
	if u == nil {
		return
	}

	renews := time.Now().AddDate(0, 1, 0)
	u.Subscription = models.Subscription{
		Tier:     models.TierPremium,
		Status:   models.SubscriptionActive,
		RenewsAt: &renews,
	}

	for _, c := range models.DefaultCategories() {
		if !u.HasCategory(c) {
			u.Categories = append(u.Categories, c)
		}
	}
	s.save()
}

// DowngradeToFree 降级为免费版：订阅重置为 free/active（清除续费时间），
// 类别重置为默认列表前 6 项，并级联删除该用户类别已不可用的预算与交易
// （设计上的不可逆数据丢失）。被删交易的关联票据一并清理。
// 用户不存在时静默忽略，重复调用结果不变。
func (s *Store) DowngradeToFree(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userID)
	if u == nil {
		return
	}

	u.Subscription = models.Subscription{
		Tier:   models.TierFree,
		Status: models.SubscriptionActive,
	}
	u.Categories = models.FreeCategories()

	allowed := make(map[string]bool, models.FreeCategoryCount)
	for _, c := range u.Categories {
		allowed[c] = true
	}

	budgets := s.state.Budgets[:0]
	for _, b := range s.state.Budgets {
		if b.UserID == userID && !allowed[b.Category] {
			continue
		}
		budgets = append(budgets, b)
	}
	s.state.Budgets = budgets

	txs := s.state.Transactions[:0]
	for _, tx := range s.state.Transactions {
		if tx.UserID == userID && !allowed[tx.Category] {
			if tx.ReceiptID != "" {
				s.removeReceiptLocked(tx.ReceiptID)
			}
			continue
		}
		txs = append(txs, tx)
	}
	s.state.Transactions = txs

	s.save()
}

// AddCustomCategory 添加自定义类别。名称去除空白后不能为空；
// 用户不存在或类别已存在时静默忽略。
// 不在此处做订阅档位限制，由调用方（接口/界面层）负责。
func (s *Store) AddCustomCategory(userID, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}

	u := s.findUser(userID)
	if u == nil || u.HasCategory(category) {
		return nil
	}

	u.Categories = append(u.Categories, category)
	s.save()
	return nil
}
