package store

import (
	"testing"

	"fintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTransaction_PrependAndDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.SignUp("tx@test.com", "交易", "hash")
	require.NoError(t, err)

	first := s.AddTransaction(TransactionInput{
		UserID: user.ID, Type: models.TypeExpense,
		Category: models.CategoryFood, Amount: 12.5, Date: "2026-08-01",
	})
	second := s.AddTransaction(TransactionInput{
		UserID: user.ID, Type: models.TypeIncome,
		Category: models.CategoryOther, Amount: 2000, Date: "2026-08-02",
	})

	assert.NotEmpty(t, first.ID)
	assert.Equal(t, models.SourceManual, first.Source)
	assert.False(t, first.CreatedAt.IsZero())

	// 新者在前
	list := s.Transactions(user.ID)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestUpdateTransaction_PartialMerge(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.SignUp("patch@test.com", "更新", "hash")
	require.NoError(t, err)
	tx := s.AddTransaction(TransactionInput{
		UserID: user.ID, Type: models.TypeExpense,
		Category: models.CategoryFood, Amount: 30, Date: "2026-08-01", Notes: "午饭",
	})

	amount := 45.0
	category := models.CategoryTransport
	s.UpdateTransaction(tx.ID, TransactionPatch{Amount: &amount, Category: &category})

	got, ok := s.Transaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, 45.0, got.Amount)
	assert.Equal(t, models.CategoryTransport, got.Category)
	// 未给定的字段保持原值
	assert.Equal(t, "午饭", got.Notes)
	assert.Equal(t, "2026-08-01", got.Date)
	assert.Equal(t, user.ID, got.UserID)
}

func TestUpdateTransaction_UnknownID(t *testing.T) {
	s, _ := newTestStore(t)

	amount := 99.0
	// 静默忽略
	s.UpdateTransaction("missing", TransactionPatch{Amount: &amount})
	assert.Empty(t, s.Snapshot().Transactions)
}

func TestRemoveTransaction_CascadesReceipt(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.SignUp("cascade@test.com", "级联", "hash")
	require.NoError(t, err)

	receipt := s.AddReceipt("lunch.png", "data:image/png;base64,AAAA")
	tx := s.AddTransaction(TransactionInput{
		UserID: user.ID, Type: models.TypeExpense,
		Category: models.CategoryFood, Amount: 30, Date: "2026-08-01",
		ReceiptID: receipt.ID,
	})

	s.RemoveTransaction(tx.ID)

	_, ok := s.Transaction(tx.ID)
	assert.False(t, ok)
	_, ok = s.Receipt(receipt.ID)
	assert.False(t, ok)
}

func TestRemoveTransaction_NoReceipt(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.SignUp("plain@test.com", "无票", "hash")
	require.NoError(t, err)

	other := s.AddReceipt("other.png", "data:image/png;base64,BBBB")
	tx := s.AddTransaction(TransactionInput{
		UserID: user.ID, Type: models.TypeExpense,
		Category: models.CategoryFood, Amount: 10, Date: "2026-08-01",
	})

	s.RemoveTransaction(tx.ID)

	// 无关票据不受影响
	_, ok := s.Receipt(other.ID)
	assert.True(t, ok)
}

func TestTransactions_FilterByUser(t *testing.T) {
	s, _ := newTestStore(t)

	alice, err := s.SignUp("alice-tx@test.com", "Alice", "hash")
	require.NoError(t, err)
	bob, err := s.SignUp("bob-tx@test.com", "Bob", "hash")
	require.NoError(t, err)

	s.AddTransaction(TransactionInput{UserID: alice.ID, Type: models.TypeExpense, Category: models.CategoryFood, Amount: 1, Date: "2026-08-01"})
	s.AddTransaction(TransactionInput{UserID: bob.ID, Type: models.TypeExpense, Category: models.CategoryFood, Amount: 2, Date: "2026-08-01"})

	list := s.Transactions(alice.ID)
	require.Len(t, list, 1)
	assert.Equal(t, alice.ID, list[0].UserID)
}

func TestImportTransactions(t *testing.T) {
	path := t.TempDir() + "/snapshot.json"
	gen := &stubGenerator{batch: []models.Transaction{
		{ID: "imp-1", Type: models.TypeExpense, Category: models.CategoryFood, Amount: 25, Date: "2026-08-20", Source: models.SourceImported},
		{ID: "imp-2", Type: models.TypeExpense, Category: models.CategoryTransport, Amount: 8, Date: "2026-08-21", Source: models.SourceImported},
	}}
	s, err := Open(path, gen)
	require.NoError(t, err)

	user, err := s.SignUp("import@test.com", "导入", "hash")
	require.NoError(t, err)
	manual := s.AddTransaction(TransactionInput{
		UserID: user.ID, Type: models.TypeExpense,
		Category: models.CategoryFood, Amount: 5, Date: "2026-08-01",
	})

	batch, err := s.ImportTransactions(user.ID)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, user.ID, batch[0].UserID)

	// 整批插入头部，手工记录在后
	list := s.Transactions(user.ID)
	require.Len(t, list, 3)
	assert.Equal(t, "imp-1", list[0].ID)
	assert.Equal(t, "imp-2", list[1].ID)
	assert.Equal(t, manual.ID, list[2].ID)
}

func TestImportTransactions_UnknownUser(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.ImportTransactions("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
