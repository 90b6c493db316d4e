package api

import (
	"errors"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 类别处理器
type CategoryHandler struct {
	store *store.Store
}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler(st *store.Store) *CategoryHandler {
	return &CategoryHandler{store: st}
}

// List 获取类别列表
// @Summary 获取类别列表
// @Description 获取当前用户的有序类别列表
// @Tags 类别
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	user, ok := h.store.User(userID)
	if !ok {
		NotFound(c, "用户不存在")
		return
	}
	Success(c, user.Categories)
}

// AddCategoryRequest 添加自定义类别请求
type AddCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50" example:"宠物"`
}

// Add 添加自定义类别
// @Summary 添加自定义类别
// @Description 向当前用户的类别列表追加一个自定义类别。自定义类别是高级版功能，门禁在此层；已存在时静默忽略。
// @Tags 类别
// @Accept json
// @Produce json
// @Param request body AddCategoryRequest true "类别名称"
// @Success 200 {object} Response{data=[]string} "添加成功，返回最新类别列表"
// @Failure 400 {object} Response "类别名称不能为空"
// @Failure 401 {object} Response "未登录"
// @Failure 403 {object} Response "需要高级版订阅"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Add(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	user, ok := h.store.User(userID)
	if !ok {
		NotFound(c, "用户不存在")
		return
	}
	if user.Subscription.Tier != models.TierPremium {
		Forbidden(c, "自定义类别需要高级版订阅")
		return
	}

	if err := h.store.AddCustomCategory(userID, req.Name); err != nil {
		if errors.Is(err, store.ErrEmptyCategory) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "添加类别失败"))
		return
	}

	user, _ = h.store.User(userID)
	SuccessWithMessage(c, "添加成功", user.Categories)
}
