package models

import "time"

const (
	// TierFree 免费版：仅可使用默认类别中的前 6 项
	TierFree = "free"
	// TierPremium 高级版：解锁全部默认类别与自定义类别等功能
	TierPremium = "premium"
)

const (
	// SubscriptionActive 订阅正常
	SubscriptionActive = "active"
	// SubscriptionPastDue 订阅逾期未付
	SubscriptionPastDue = "past_due"
)

// Subscription 订阅信息
type Subscription struct {
	Tier     string     `json:"tier"`                // free / premium
	Status   string     `json:"status"`              // active / past_due
	RenewsAt *time.Time `json:"renews_at,omitempty"` // 下次续费时间，免费版为空
}

// Settings 用户偏好设置
type Settings struct {
	Currency      string `json:"currency"`      // 货币代码，如 USD
	Notifications bool   `json:"notifications"` // 是否接收通知
	DarkMode      bool   `json:"dark_mode"`     // 深色模式
	Haptics       bool   `json:"haptics"`       // 触感反馈
}

// DefaultSettings 新用户的默认设置
func DefaultSettings() Settings {
	return Settings{
		Currency:      "USD",
		Notifications: true,
		DarkMode:      false,
		Haptics:       true,
	}
}

// User 用户模型
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"` // 已归一化：去除首尾空白并转小写
	Name         string       `json:"name"`
	PasswordHash string       `json:"password_hash"` // 不透明哈希字符串，仅做等值比较
	CreatedAt    time.Time    `json:"created_at"`
	Subscription Subscription `json:"subscription"`
	Settings     Settings     `json:"settings"`
	Categories   []string     `json:"categories"` // 有序、用户私有的类别名列表
}

// HasCategory 判断用户是否已有该类别
func (u *User) HasCategory(name string) bool {
	for _, c := range u.Categories {
		if c == name {
			return true
		}
	}
	return false
}
