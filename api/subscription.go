package api

import (
	"fintrack/middleware"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler 订阅处理器。
// 没有真实支付流程，升级/降级直接改写订阅状态。
type SubscriptionHandler struct {
	store *store.Store
}

// NewSubscriptionHandler 创建订阅处理器
func NewSubscriptionHandler(st *store.Store) *SubscriptionHandler {
	return &SubscriptionHandler{store: st}
}

// Get 获取订阅信息
// @Summary 获取订阅信息
// @Description 获取当前用户的订阅档位与状态
// @Tags 订阅
// @Produce json
// @Success 200 {object} Response{data=models.Subscription} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/subscription [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	user, ok := h.store.User(userID)
	if !ok {
		NotFound(c, "用户不存在")
		return
	}
	Success(c, user.Subscription)
}

// Upgrade 升级高级版
// @Summary 升级高级版
// @Description 订阅置为 premium/active，续费时间为一个自然月后，并解锁全部默认类别
// @Tags 订阅
// @Produce json
// @Success 200 {object} Response{data=UserInfo} "升级成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/subscription/upgrade [post]
func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	h.store.UpgradeToPremium(userID)

	user, ok := h.store.User(userID)
	if !ok {
		NotFound(c, "用户不存在")
		return
	}
	SuccessWithMessage(c, "已升级为高级版", newUserInfo(user))
}

// Downgrade 降级免费版
// @Summary 降级免费版
// @Description 类别重置为默认前 6 项，超出免费类别范围的预算与交易会被删除，该操作不可逆
// @Tags 订阅
// @Produce json
// @Success 200 {object} Response{data=UserInfo} "降级成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/subscription/downgrade [post]
func (h *SubscriptionHandler) Downgrade(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	h.store.DowngradeToFree(userID)

	user, ok := h.store.User(userID)
	if !ok {
		NotFound(c, "用户不存在")
		return
	}
	SuccessWithMessage(c, "已降级为免费版", newUserInfo(user))
}
