package store

import "errors"

// 存储层错误，均为面向用户的可读消息。
// API 层通过 errors.Is 映射为对应的 HTTP 状态码。
var (
	// ErrEmailTaken 注册时邮箱已被占用
	ErrEmailTaken = errors.New("该邮箱已被注册")
	// ErrInvalidCredentials 登录时邮箱不存在或密码哈希不匹配
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	// ErrUserNotFound 目标用户不存在
	ErrUserNotFound = errors.New("用户不存在")
	// ErrBudgetNotFound 按 ID 更新预算时未找到记录
	ErrBudgetNotFound = errors.New("预算不存在")
	// ErrInvalidBudgetLimit 预算上限必须为正数
	ErrInvalidBudgetLimit = errors.New("预算上限必须大于 0")
	// ErrEmptyCategory 类别名称去除空白后为空
	ErrEmptyCategory = errors.New("类别名称不能为空")
)
