package api

import (
	"errors"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// BudgetHandler 预算处理器
type BudgetHandler struct {
	store *store.Store
}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler(st *store.Store) *BudgetHandler {
	return &BudgetHandler{store: st}
}

// UpsertBudgetRequest 创建/更新预算请求。
// 不传 id 为创建，传 id 为更新；rollover 与 alert_threshold
// 缺省表示保持原值。滚存与告警阈值为高级版功能。
type UpsertBudgetRequest struct {
	ID             string  `json:"id" example:""`
	Category       string  `json:"category" binding:"required" example:"餐饮"`
	Limit          float64 `json:"limit" binding:"required" example:"500"`
	Rollover       *bool   `json:"rollover" example:"false"`
	AlertThreshold *int    `json:"alert_threshold" binding:"omitempty,min=1,max=100" example:"80"`
}

// Upsert 创建或更新预算
// @Summary 创建或更新预算
// @Description 上限必须大于 0。更新时缺省的滚存/告警阈值保持原值。滚存与告警阈值需要高级版订阅。
// @Tags 预算
// @Accept json
// @Produce json
// @Param request body UpsertBudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "保存成功"
// @Failure 400 {object} Response "请求参数错误或上限非法"
// @Failure 401 {object} Response "未登录"
// @Failure 403 {object} Response "需要高级版订阅"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Upsert(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 高级版功能门禁在接口层，存储层不设限
	if req.Rollover != nil || req.AlertThreshold != nil {
		user, ok := h.store.User(userID)
		if !ok || user.Subscription.Tier != models.TierPremium {
			Forbidden(c, "结余滚存与预算告警需要高级版订阅")
			return
		}
	}

	if req.ID != "" {
		// 更新他人预算按不存在处理
		owned := false
		for _, b := range h.store.Budgets(userID) {
			if b.ID == req.ID {
				owned = true
				break
			}
		}
		if !owned {
			NotFound(c, store.ErrBudgetNotFound.Error())
			return
		}
	}

	budget, err := h.store.UpsertBudget(store.BudgetInput{
		ID:             req.ID,
		UserID:         userID,
		Category:       req.Category,
		Limit:          req.Limit,
		Rollover:       req.Rollover,
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		if errors.Is(err, store.ErrBudgetNotFound) {
			NotFound(c, err.Error())
			return
		}
		BadRequest(c, err.Error())
		return
	}

	SuccessWithMessage(c, "保存成功", budget)
}

// List 获取预算列表
// @Summary 获取预算列表
// @Description 获取当前用户的全部预算
// @Tags 预算
// @Produce json
// @Success 200 {object} Response{data=[]models.Budget} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	Success(c, h.store.Budgets(userID))
}

// Delete 删除预算
// @Summary 删除预算
// @Description 删除指定预算，不存在时视为成功
// @Tags 预算
// @Produce json
// @Param id path string true "预算ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	// 只允许删除自己的预算
	for _, b := range h.store.Budgets(userID) {
		if b.ID == id {
			h.store.RemoveBudget(id)
			break
		}
	}
	SuccessWithMessage(c, "删除成功", nil)
}
