package api

import (
	"log"
	"time"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// AnalyticsNotifier 分析邮件的通知侧信道
type AnalyticsNotifier interface {
	SendAnalyticsEmail(toEmail, name, period string, sum service.Summary) error
}

// AnalyticsHandler 分析邮件处理器
type AnalyticsHandler struct {
	store    *store.Store
	notifier AnalyticsNotifier
}

// NewAnalyticsHandler 创建分析邮件处理器
func NewAnalyticsHandler(st *store.Store, notifier AnalyticsNotifier) *AnalyticsHandler {
	return &AnalyticsHandler{store: st, notifier: notifier}
}

// SendAnalyticsEmailRequest 发送分析邮件请求
type SendAnalyticsEmailRequest struct {
	Period string `json:"period" binding:"required,oneof=weekly monthly" example:"monthly"`
}

// SendEmail 发送分析邮件
// @Summary 发送分析邮件
// @Description 记录一条分析邮件日志并触发邮件发送。分析邮件是高级版功能，门禁在此层；邮件发送失败不影响已写入的日志。
// @Tags 统计
// @Accept json
// @Produce json
// @Param request body SendAnalyticsEmailRequest true "报告周期"
// @Success 200 {object} Response{data=models.AnalyticsLog} "已记录并触发发送"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未登录"
// @Failure 403 {object} Response "需要高级版订阅"
// @Router /api/v1/analytics/email [post]
func (h *AnalyticsHandler) SendEmail(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req SendAnalyticsEmailRequest
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
		Forbidden(c, "分析邮件需要高级版订阅")
		return
	}

	// 日志先落地，邮件发送失败不回滚
	entry := h.store.LogAnalyticsEmail(userID, req.Period)

	sum := h.periodSummary(userID, req.Period)
	if err := h.notifier.SendAnalyticsEmail(user.Email, user.Name, req.Period, sum); err != nil {
		log.Printf("警告: 分析邮件发送失败: %v", err)
	}

	SuccessWithMessage(c, "分析邮件已发送", entry)
}

// periodSummary 汇总周期窗口内的收支数据
func (h *AnalyticsHandler) periodSummary(userID, period string) service.Summary {
	days := 30
	if period == models.PeriodWeekly {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	var sum service.Summary
	for _, tx := range h.store.Transactions(userID) {
		if tx.Date < since {
			continue
		}
		sum.Count++
		if tx.Type == models.TypeIncome {
			sum.TotalIncome += tx.Amount
		} else {
			sum.TotalExpense += tx.Amount
		}
	}
	return sum
}

// ListLogs 获取分析邮件日志
// @Summary 获取分析邮件日志
// @Description 获取当前用户的分析邮件发送记录（新者在前）
// @Tags 统计
// @Produce json
// @Success 200 {object} Response{data=[]models.AnalyticsLog} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/analytics/logs [get]
func (h *AnalyticsHandler) ListLogs(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	Success(c, h.store.AnalyticsLogs(userID))
}
