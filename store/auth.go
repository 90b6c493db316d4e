package store

import (
	"strings"
	"time"

	"fintrack/models"

	"github.com/google/uuid"
)

// defaultName 注册时昵称为空的占位昵称
const defaultName = "新用户"

// normalizeEmail 邮箱归一化：去除首尾空白并转小写
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp 注册新用户并将其设为当前登录用户。
// 邮箱按归一化结果查重，冲突返回 ErrEmailTaken。
func (s *Store) SignUp(email, name, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUserByEmail(email) != nil {
		return models.User{}, ErrEmailTaken
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		Subscription: models.Subscription{
			Tier:   models.TierFree,
			Status: models.SubscriptionActive,
		},
		Settings:   models.DefaultSettings(),
		Categories: models.FreeCategories(),
	}

	s.state.Users = append(s.state.Users, user)
	s.state.CurrentUserID = &user.ID
	s.save()
	return cloneUser(user), nil
}

// SignIn 登录：按归一化邮箱匹配用户并做哈希等值比较。
// 失败返回 ErrInvalidCredentials 且不改变当前登录用户。
func (s *Store) SignIn(email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserByEmail(email)
	if u == nil || u.PasswordHash != passwordHash {
		return models.User{}, ErrInvalidCredentials
	}

	s.state.CurrentUserID = &u.ID
	s.save()
	return cloneUser(*u), nil
}

// SignOut 退出登录，无错误分支
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CurrentUserID = nil
	s.save()
}

// CurrentUser 获取当前登录用户（副本），未登录返回 nil
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentUserID == nil {
		return nil
	}
	u := s.findUser(*s.state.CurrentUserID)
	if u == nil {
		return nil
	}
	c := cloneUser(*u)
	return &c
}

// ResetPassword 按邮箱原地替换密码哈希。
// 没有会话失效概念：当前登录状态不受影响。
func (s *Store) ResetPassword(email, newPasswordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserByEmail(email)
	if u == nil {
		return ErrUserNotFound
	}

	u.PasswordHash = newPasswordHash
	s.save()
	return nil
}

// SettingsPatch 设置的部分更新，nil 字段表示保持不变
type SettingsPatch struct {
	Currency      *string
	Notifications *bool
	DarkMode      *bool
	Haptics       *bool
}

// UpdateSettings 浅合并用户设置，用户不存在时静默忽略
func (s *Store) UpdateSettings(userID string, patch SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userID)
	if u == nil {
		return
	}

	if patch.Currency != nil {
		u.Settings.Currency = *patch.Currency
	}
	if patch.Notifications != nil {
		u.Settings.Notifications = *patch.Notifications
	}
	if patch.DarkMode != nil {
		u.Settings.DarkMode = *patch.DarkMode
	}
	if patch.Haptics != nil {
		u.Settings.Haptics = *patch.Haptics
	}
	s.save()
}
