package api

import (
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 交易记录处理器
type TransactionHandler struct {
	store *store.Store
}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler(st *store.Store) *TransactionHandler {
	return &TransactionHandler{store: st}
}

// CreateTransactionRequest 创建交易请求。
// 金额与日期格式的校验在这一层完成，存储层照单全收。
type CreateTransactionRequest struct {
	Type      string  `json:"type" binding:"required,oneof=income expense" example:"expense"`
	Category  string  `json:"category" binding:"required" example:"餐饮"`
	Amount    float64 `json:"amount" binding:"required,gt=0" example:"99.99"`
	Date      string  `json:"date" binding:"required,datetime=2006-01-02" example:"2024-01-15"`
	Notes     string  `json:"notes" example:"午餐"`
	ReceiptID string  `json:"receipt_id" example:""`
}

// Create 创建交易记录
// @Summary 创建交易记录
// @Description 为当前用户创建一条交易，新记录排在列表最前
// @Tags 交易记录
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	tx := h.store.AddTransaction(store.TransactionInput{
		UserID:    userID,
		Type:      req.Type,
		Category:  req.Category,
		Amount:    req.Amount,
		Date:      req.Date,
		Notes:     req.Notes,
		ReceiptID: req.ReceiptID,
	})

	SuccessWithMessage(c, "创建成功", tx)
}

// TransactionListRequest 交易列表请求
type TransactionListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	Type      string `form:"type" binding:"omitempty,oneof=income expense" example:"expense"`
	Category  string `form:"category" example:"餐饮"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02" example:"2024-01-01"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02" example:"2024-12-31"`
}

// List 获取交易记录列表
// @Summary 获取交易记录列表
// @Description 获取当前用户的交易列表（录入新者在前），支持分页与类型/类别/日期范围筛选
// @Tags 交易记录
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param type query string false "类型筛选 income/expense"
// @Param category query string false "类别筛选"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	var filtered []models.Transaction
	for _, tx := range h.store.Transactions(userID) {
		if req.Type != "" && tx.Type != req.Type {
			continue
		}
		if req.Category != "" && tx.Category != req.Category {
			continue
		}
		// 日期为 ISO 格式字符串，可直接按字典序比较
		if req.StartDate != "" && tx.Date < req.StartDate {
			continue
		}
		if req.EndDate != "" && tx.Date > req.EndDate {
			continue
		}
		filtered = append(filtered, tx)
	}

	total := len(filtered)
	start := (req.Page - 1) * req.PageSize
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     filtered[start:end],
	})
}

// Get 获取单条交易记录
// @Summary 获取单条交易记录
// @Description 根据ID获取当前用户的交易详情
// @Tags 交易记录
// @Produce json
// @Param id path string true "交易ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	tx, ok := h.store.Transaction(c.Param("id"))
	if !ok || tx.UserID != userID {
		NotFound(c, "记录不存在")
		return
	}

	Success(c, tx)
}

// UpdateTransactionRequest 更新交易请求，缺省字段保持不变。
// 归属用户不可修改。
type UpdateTransactionRequest struct {
	Type      *string  `json:"type" binding:"omitempty,oneof=income expense" example:"expense"`
	Category  *string  `json:"category" example:"餐饮"`
	Amount    *float64 `json:"amount" binding:"omitempty,gt=0" example:"99.99"`
	Date      *string  `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2024-01-15"`
	Notes     *string  `json:"notes" example:"午餐"`
	ReceiptID *string  `json:"receipt_id" example:""`
}

// Update 更新交易记录
// @Summary 更新交易记录
// @Description 合并给定字段到指定交易，缺省字段保持原值
// @Tags 交易记录
// @Accept json
// @Produce json
// @Param id path string true "交易ID"
// @Param request body UpdateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未登录"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	tx, ok := h.store.Transaction(id)
	if !ok || tx.UserID != userID {
		NotFound(c, "记录不存在")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	h.store.UpdateTransaction(id, store.TransactionPatch{
		Type:      req.Type,
		Category:  req.Category,
		Amount:    req.Amount,
		Date:      req.Date,
		Notes:     req.Notes,
		ReceiptID: req.ReceiptID,
	})

	updated, _ := h.store.Transaction(id)
	SuccessWithMessage(c, "更新成功", updated)
}

// Delete 删除交易记录
// @Summary 删除交易记录
// @Description 删除指定交易，关联票据（如有）一并删除
// @Tags 交易记录
// @Produce json
// @Param id path string true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未登录"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	tx, ok := h.store.Transaction(id)
	if !ok || tx.UserID != userID {
		NotFound(c, "记录不存在")
		return
	}

	h.store.RemoveTransaction(id)
	SuccessWithMessage(c, "删除成功", nil)
}

// Import 模拟银行导入
// @Summary 模拟银行导入
// @Description 为当前用户生成一批模拟银行账单交易（source=imported）并整批入库
// @Tags 交易记录
// @Produce json
// @Success 200 {object} Response{data=[]models.Transaction} "导入成功"
// @Failure 401 {object} Response "未登录"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/transactions/import [post]
func (h *TransactionHandler) Import(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	batch, err := h.store.ImportTransactions(userID)
	if err != nil {
		NotFound(c, err.Error())
		return
	}

	SuccessWithMessage(c, "导入成功", batch)
}
