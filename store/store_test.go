package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator 固定返回预设批次的交易生成器
type stubGenerator struct {
	batch []models.Transaction
}

func (g *stubGenerator) Generate(user models.User) []models.Transaction {
	out := make([]models.Transaction, len(g.batch))
	for i, tx := range g.batch {
		tx.UserID = user.ID
		out[i] = tx
	}
	return out
}

// newTestStore 在临时目录里打开一个空存储
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	s, err := Open(path, &stubGenerator{})
	require.NoError(t, err)
	return s, path
}

func TestOpen_MissingFile(t *testing.T) {
	s, _ := newTestStore(t)

	snap := s.Snapshot()
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Transactions)
	assert.Nil(t, snap.CurrentUserID)
	assert.Nil(t, s.CurrentUser())
}

func TestOpen_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path, &stubGenerator{})
	assert.Nil(t, s)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "快照解析失败")
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, path := newTestStore(t)

	user, err := s.SignUp("round@trip.com", "往返", "hash-1")
	require.NoError(t, err)
	s.AddTransaction(TransactionInput{
		UserID: user.ID, Type: models.TypeExpense,
		Category: models.CategoryFood, Amount: 42.5, Date: "2026-08-01",
	})
	_, err = s.UpsertBudget(BudgetInput{UserID: user.ID, Category: models.CategoryFood, Limit: 500})
	require.NoError(t, err)
	s.AddReceipt("invoice.png", "data:image/png;base64,AAAA")
	s.LogAnalyticsEmail(user.ID, models.PeriodMonthly)

	// 重新打开快照文件，状态应逐字段恢复
	reopened, err := Open(path, &stubGenerator{})
	require.NoError(t, err)

	// time.Time 经 JSON 往返后时钟表示不同，不能整结构比较
	before := s.Snapshot()
	after := reopened.Snapshot()
	require.NotNil(t, after.CurrentUserID)
	assert.Equal(t, user.ID, *after.CurrentUserID)

	require.Len(t, after.Users, 1)
	assert.Equal(t, before.Users[0].ID, after.Users[0].ID)
	assert.Equal(t, before.Users[0].Email, after.Users[0].Email)
	assert.Equal(t, before.Users[0].PasswordHash, after.Users[0].PasswordHash)
	assert.Equal(t, before.Users[0].Subscription.Tier, after.Users[0].Subscription.Tier)
	assert.Equal(t, before.Users[0].Settings, after.Users[0].Settings)
	assert.Equal(t, before.Users[0].Categories, after.Users[0].Categories)
	assert.True(t, before.Users[0].CreatedAt.Equal(after.Users[0].CreatedAt))

	require.Len(t, after.Budgets, 1)
	assert.Equal(t, before.Budgets[0].ID, after.Budgets[0].ID)
	assert.Equal(t, before.Budgets[0].Category, after.Budgets[0].Category)
	assert.Equal(t, before.Budgets[0].Limit, after.Budgets[0].Limit)

	require.Len(t, after.Receipts, 1)
	assert.Equal(t, before.Receipts[0].ID, after.Receipts[0].ID)
	assert.Equal(t, before.Receipts[0].DataURL, after.Receipts[0].DataURL)

	require.Len(t, after.AnalyticsLogs, 1)
	assert.Equal(t, before.AnalyticsLogs[0].ID, after.AnalyticsLogs[0].ID)
	assert.Equal(t, before.AnalyticsLogs[0].Period, after.AnalyticsLogs[0].Period)

	require.Len(t, after.Transactions, 1)
	assert.Equal(t, before.Transactions[0].ID, after.Transactions[0].ID)
	assert.Equal(t, before.Transactions[0].Amount, after.Transactions[0].Amount)
	assert.True(t, before.Transactions[0].CreatedAt.Equal(after.Transactions[0].CreatedAt))
}

func TestSnapshotFileLayout(t *testing.T) {
	s, path := newTestStore(t)

	_, err := s.SignUp("layout@test.com", "布局", "hash-1")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"users", "receipts", "transactions", "budgets", "analytics_logs", "current_user_id"} {
		assert.Contains(t, raw, key)
	}

	// 密码哈希随快照持久化
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw["users"], &users))
	require.Len(t, users, 1)
	assert.Equal(t, "hash-1", users[0]["password_hash"])
}

func TestSnapshot_DeepCopy(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.SignUp("copy@test.com", "拷贝", "hash")
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Users, 1)
	snap.Users[0].Categories[0] = "篡改"

	fresh, ok := s.User(user.ID)
	require.True(t, ok)
	assert.Equal(t, models.CategoryFood, fresh.Categories[0])
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	// 快照路径指向一个目录，写出必然失败，但内存操作照常生效
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "no", "such"), &stubGenerator{})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "no", "such"), 0o755))

	user, err := s.SignUp("memory@only.com", "内存", "hash")
	require.NoError(t, err)

	got, ok := s.User(user.ID)
	assert.True(t, ok)
	assert.Equal(t, "memory@only.com", got.Email)
}

func TestUser_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, ok := s.User("missing")
	assert.False(t, ok)
}

func TestEveryMutationPersists(t *testing.T) {
	s, path := newTestStore(t)

	user, err := s.SignUp("persist@test.com", "持久", "hash")
	require.NoError(t, err)

	countOnDisk := func() int {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var st State
		require.NoError(t, json.Unmarshal(data, &st))
		return len(st.Transactions)
	}

	tx := s.AddTransaction(TransactionInput{
		UserID: user.ID, Type: models.TypeExpense,
		Category: models.CategoryFood, Amount: 10, Date: "2026-08-01",
	})
	assert.Equal(t, 1, countOnDisk())

	s.RemoveTransaction(tx.ID)
	assert.Equal(t, 0, countOnDisk())
}

func TestSignUpSeedsDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	before := time.Now()
	user, err := s.SignUp("  Seed@Test.COM ", "", "hash")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "seed@test.com", user.Email)
	assert.Equal(t, "新用户", user.Name)
	assert.Equal(t, models.TierFree, user.Subscription.Tier)
	assert.Equal(t, models.SubscriptionActive, user.Subscription.Status)
	assert.Nil(t, user.Subscription.RenewsAt)
	assert.Equal(t, models.DefaultSettings(), user.Settings)
	assert.Equal(t, models.FreeCategories(), user.Categories)
	assert.False(t, user.CreatedAt.Before(before))

	// 注册即登录
	cur := s.CurrentUser()
	require.NotNil(t, cur)
	assert.Equal(t, user.ID, cur.ID)
}
