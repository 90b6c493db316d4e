package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUp_EmailTaken(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.SignUp("dup@test.com", "甲", "hash-a")
	require.NoError(t, err)

	// 归一化后相同的邮箱视为冲突
	_, err = s.SignUp("  DUP@Test.com ", "乙", "hash-b")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// 冲突的注册不产生任何变更
	snap := s.Snapshot()
	assert.Len(t, snap.Users, 1)
	assert.Equal(t, "甲", snap.Users[0].Name)
}

func TestSignInRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.SignUp("login@test.com", "登录", "hash-1")
	require.NoError(t, err)
	s.SignOut()
	require.Nil(t, s.CurrentUser())

	user, err := s.SignIn("Login@Test.com", "hash-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	cur := s.CurrentUser()
	require.NotNil(t, cur)
	assert.Equal(t, created.ID, cur.ID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	s, _ := newTestStore(t)

	alice, err := s.SignUp("alice@test.com", "Alice", "hash-alice")
	require.NoError(t, err)
	_, err = s.SignUp("bob@test.com", "Bob", "hash-bob")
	require.NoError(t, err)

	// Bob 注册后是当前用户，Alice 登录失败不应顶掉他
	_, err = s.SignIn("alice@test.com", "wrong-hash")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	cur := s.CurrentUser()
	require.NotNil(t, cur)
	assert.NotEqual(t, alice.ID, cur.ID)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.SignIn("nobody@test.com", "hash")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResetPassword(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.SignUp("reset@test.com", "重置", "old-hash")
	require.NoError(t, err)

	require.NoError(t, s.ResetPassword("Reset@Test.com", "new-hash"))

	// 旧哈希失效，新哈希可登录
	_, err = s.SignIn("reset@test.com", "old-hash")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.SignIn("reset@test.com", "new-hash")
	assert.NoError(t, err)
}

func TestResetPassword_UnknownEmail(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.ResetPassword("nobody@test.com", "hash")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetPassword_KeepsSession(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.SignUp("stay@test.com", "在线", "old-hash")
	require.NoError(t, err)

	require.NoError(t, s.ResetPassword("stay@test.com", "new-hash"))

	cur := s.CurrentUser()
	require.NotNil(t, cur)
	assert.Equal(t, user.ID, cur.ID)
}

func TestUpdateSettings_PartialMerge(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.SignUp("settings@test.com", "设置", "hash")
	require.NoError(t, err)

	currency := "CNY"
	dark := true
	s.UpdateSettings(user.ID, SettingsPatch{Currency: &currency, DarkMode: &dark})

	got, ok := s.User(user.ID)
	require.True(t, ok)
	assert.Equal(t, "CNY", got.Settings.Currency)
	assert.True(t, got.Settings.DarkMode)
	// 未给定的字段保持默认值
	assert.True(t, got.Settings.Notifications)
	assert.True(t, got.Settings.Haptics)
}

func TestUpdateSettings_UnknownUser(t *testing.T) {
	s, _ := newTestStore(t)

	currency := "EUR"
	// 静默忽略，不 panic 不报错
	s.UpdateSettings("missing", SettingsPatch{Currency: &currency})
	assert.Empty(t, s.Snapshot().Users)
}
