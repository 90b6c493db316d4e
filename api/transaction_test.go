package api

import (
	"fmt"
	"testing"

	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransactionRouter(st *store.Store, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewTransactionHandler(st)
	auth := router.Group("", injectUser(userID))
	auth.POST("/transactions", h.Create)
	auth.GET("/transactions", h.List)
	auth.POST("/transactions/import", h.Import)
	auth.GET("/transactions/:id", h.Get)
	auth.PUT("/transactions/:id", h.Update)
	auth.DELETE("/transactions/:id", h.Delete)
	return router
}

func TestTransactionHandler_Create(t *testing.T) {
	st := newTestStore(t)
	user := signUpUser(t, st, "tx@example.com")
	router := newTransactionRouter(st, user.ID)

	body := `{"type":"expense","category":"餐饮","amount":58.5,"date":"2026-08-15","notes":"晚饭"}`
	w := doJSON(router, "POST", "/transactions", body)

	assert.Equal(t, 200, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "manual", data["source"])
	assert.Equal(t, user.ID, data["user_id"])

	list := st.Transactions(user.ID)
	require.Len(t, list, 1)
	assert.Equal(t, 58.5, list[0].Amount)
}

func TestTransactionHandler_Create_Validation(t *testing.T) {
	st := newTestStore(t)
	user := signUpUser(t, st, "txv@example.com")
	router := newTransactionRouter(st, user.ID)

	// 金额必须大于 0
	w := doJSON(router, "POST", "/transactions", `{"type":"expense","category":"餐饮","amount":-1,"date":"2026-08-15"}`)
	assert.Equal(t, 400, w.Code)

	// 类型只能是 income/expense
	w = doJSON(router, "POST", "/transactions", `{"type":"transfer","category":"餐饮","amount":10,"date":"2026-08-15"}`)
	assert.Equal(t, 400, w.Code)

	// 日期必须是 ISO 格式
	w = doJSON(router, "POST", "/transactions", `{"type":"expense","category":"餐饮","amount":10,"date":"08/15/2026"}`)
	assert.Equal(t, 400, w.Code)

	assert.Empty(t, st.Transactions(user.ID))
}

func TestTransactionHandler_List_FilterAndPaginate(t *testing.T) {
	st := newTestStore(t)
	user := signUpUser(t, st, "txlist@example.com")
	router := newTransactionRouter(st, user.ID)

	for i := 1; i <= 5; i++ {
		st.AddTransaction(store.TransactionInput{
			UserID: user.ID, Type: models.TypeExpense,
			Category: models.CategoryFood, Amount: float64(i),
			Date: fmt.Sprintf("2026-08-0%d", i),
		})
	}
	st.AddTransaction(store.TransactionInput{
		UserID: user.ID, Type: models.TypeIncome,
		Category: models.CategoryOther, Amount: 1000, Date: "2026-08-10",
	})

	// 类型筛选
	w := doJSON(router, "GET", "/transactions?type=income", "")
	assert.Equal(t, 200, w.Code)
	page := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), page["total"])

	// 日期范围筛选
	w = doJSON(router, "GET", "/transactions?start_date=2026-08-02&end_date=2026-08-04", "")
	page = parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), page["total"])

	// 分页：第 2 页每页 4 条，6 条记录应剩 2 条
	w = doJSON(router, "GET", "/transactions?page=2&page_size=4", "")
	page = parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(6), page["total"])
	assert.Len(t, page["list"], 2)

	// 超出范围的页返回空列表而非报错
	w = doJSON(router, "GET", "/transactions?page=99", "")
	page = parseResponse(t, w)["data"].(map[string]interface{})
	assert.Len(t, page["list"], 0)
}

func TestTransactionHandler_OwnershipIsolation(t *testing.T) {
	st := newTestStore(t)
	alice := signUpUser(t, st, "alice-api@example.com")
	bob := signUpUser(t, st, "bob-api@example.com")

	bobTx := st.AddTransaction(store.TransactionInput{
		UserID: bob.ID, Type: models.TypeExpense,
		Category: models.CategoryFood, Amount: 10, Date: "2026-08-01",
	})

	// Alice 访问 Bob 的交易一律按不存在处理
	router := newTransactionRouter(st, alice.ID)
	w := doJSON(router, "GET", "/transactions/"+bobTx.ID, "")
	assert.Equal(t, 404, w.Code)

	w = doJSON(router, "PUT", "/transactions/"+bobTx.ID, `{"amount":999}`)
	assert.Equal(t, 404, w.Code)

	w = doJSON(router, "DELETE", "/transactions/"+bobTx.ID, "")
	assert.Equal(t, 404, w.Code)

	got, ok := st.Transaction(bobTx.ID)
	require.True(t, ok)
	assert.Equal(t, 10.0, got.Amount)
}

func TestTransactionHandler_Update(t *testing.T) {
	st := newTestStore(t)
	user := signUpUser(t, st, "txup@example.com")
	router := newTransactionRouter(st, user.ID)

	tx := st.AddTransaction(store.TransactionInput{
		UserID: user.ID, Type: models.TypeExpense,
		Category: models.CategoryFood, Amount: 30, Date: "2026-08-01", Notes: "午饭",
	})

	w := doJSON(router, "PUT", "/transactions/"+tx.ID, `{"amount":45,"category":"交通"}`)
	assert.Equal(t, 200, w.Code)

	got, _ := st.Transaction(tx.ID)
	assert.Equal(t, 45.0, got.Amount)
	assert.Equal(t, models.CategoryTransport, got.Category)
	assert.Equal(t, "午饭", got.Notes)
}

func TestTransactionHandler_Delete_CascadesReceipt(t *testing.T) {
	st := newTestStore(t)
	user := signUpUser(t, st, "txdel@example.com")
	router := newTransactionRouter(st, user.ID)

	r := st.AddReceipt("lunch.png", "data:image/png;base64,AAAA")
	tx := st.AddTransaction(store.TransactionInput{
		UserID: user.ID, Type: models.TypeExpense,
		Category: models.CategoryFood, Amount: 30, Date: "2026-08-01",
		ReceiptID: r.ID,
	})

	w := doJSON(router, "DELETE", "/transactions/"+tx.ID, "")
	assert.Equal(t, 200, w.Code)

	_, ok := st.Transaction(tx.ID)
	assert.False(t, ok)
	_, ok = st.Receipt(r.ID)
	assert.False(t, ok)
}

// fixedGenerator 返回固定批次的导入生成器
type fixedGenerator struct{}

func (fixedGenerator) Generate(user models.User) []models.Transaction {
	return []models.Transaction{
		{ID: "imp-1", UserID: user.ID, Type: models.TypeExpense, Category: models.CategoryFood, Amount: 25, Date: "2026-08-20", Source: models.SourceImported},
	}
}

func TestTransactionHandler_Import(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st, err := store.Open(t.TempDir()+"/snapshot.json", fixedGenerator{})
	require.NoError(t, err)
	user := signUpUser(t, st, "import-api@example.com")
	router := newTransactionRouter(st, user.ID)

	w := doJSON(router, "POST", "/transactions/import", "")
	assert.Equal(t, 200, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "导入成功", resp["message"])
	assert.Len(t, resp["data"], 1)

	list := st.Transactions(user.ID)
	require.Len(t, list, 1)
	assert.Equal(t, models.SourceImported, list[0].Source)
}
