package api

import (
	"errors"
	"time"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	store *store.Store
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(st *store.Store) *AuthHandler {
	return &AuthHandler{store: st}
}

// UserInfo 对外返回的用户信息，不含密码哈希
type UserInfo struct {
	ID           string              `json:"id"`
	Email        string              `json:"email" example:"test@example.com"`
	Name         string              `json:"name" example:"测试用户"`
	CreatedAt    time.Time           `json:"created_at"`
	Subscription models.Subscription `json:"subscription"`
	Settings     models.Settings     `json:"settings"`
	Categories   []string            `json:"categories"`
}

func newUserInfo(u models.User) UserInfo {
	return UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		CreatedAt:    u.CreatedAt,
		Subscription: u.Subscription,
		Settings:     u.Settings,
		Categories:   u.Categories,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Name     string `json:"name" binding:"max=50" example:"测试用户"`
	Password string `json:"password" binding:"required,min=6,max=50" example:"password123"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户账号并自动登录。邮箱去除空白并转小写后全局唯一。
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} Response{data=UserInfo} "注册成功"
// @Failure 400 {object} Response "请求参数错误或邮箱已被注册"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	user, err := h.store.SignUp(req.Email, req.Name, service.HashPassword(req.Password))
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "创建用户失败"))
		return
	}

	SuccessWithMessage(c, "注册成功", newUserInfo(user))
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// Login 用户登录
// @Summary 用户登录
// @Description 按邮箱登录，密码做哈希等值比较。成功后该用户成为当前登录用户。
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=UserInfo} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "邮箱或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	user, err := h.store.SignIn(req.Email, service.HashPassword(req.Password))
	if err != nil {
		Unauthorized(c, err.Error())
		return
	}

	SuccessWithMessage(c, "登录成功", newUserInfo(user))
}

// Logout 退出登录
// @Summary 退出登录
// @Description 清除当前登录用户，总是成功
// @Tags 认证
// @Produce json
// @Success 200 {object} Response "退出成功"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.SignOut()
	SuccessWithMessage(c, "已退出登录", nil)
}

// GetProfile 获取当前用户信息
// @Summary 获取当前用户信息
// @Description 获取当前登录用户的详细信息
// @Tags 认证
// @Produce json
// @Success 200 {object} Response{data=UserInfo} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	user, ok := h.store.User(userID)
	if !ok {
		NotFound(c, "用户不存在")
		return
	}

	Success(c, newUserInfo(user))
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email" example:"test@example.com"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50" example:"newpassword123"`
}

// ResetPassword 重置密码
// @Summary 重置密码
// @Description 按邮箱原地替换密码哈希，没有会话失效概念
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "重置密码请求"
// @Success 200 {object} Response "重置成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.store.ResetPassword(req.Email, service.HashPassword(req.NewPassword)); err != nil {
		NotFound(c, err.Error())
		return
	}

	SuccessWithMessage(c, "密码重置成功，请使用新密码登录", nil)
}

// UpdateSettingsRequest 更新设置请求，缺省字段保持不变
type UpdateSettingsRequest struct {
	Currency      *string `json:"currency" binding:"omitempty,len=3" example:"USD"`
	Notifications *bool   `json:"notifications" example:"true"`
	DarkMode      *bool   `json:"dark_mode" example:"false"`
	Haptics       *bool   `json:"haptics" example:"true"`
}

// UpdateSettings 更新用户设置
// @Summary 更新用户设置
// @Description 浅合并当前用户的偏好设置，缺省字段保持原值
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "设置项"
// @Success 200 {object} Response{data=UserInfo} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/settings [put]
func (h *AuthHandler) UpdateSettings(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	h.store.UpdateSettings(userID, store.SettingsPatch{
		Currency:      req.Currency,
		Notifications: req.Notifications,
		DarkMode:      req.DarkMode,
		Haptics:       req.Haptics,
	})

	user, _ := h.store.User(userID)
	SuccessWithMessage(c, "设置已更新", newUserInfo(user))
}
