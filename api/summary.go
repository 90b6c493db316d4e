package api

import (
	"sort"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// SummaryHandler 仪表盘统计处理器
type SummaryHandler struct {
	store *store.Store
}

// NewSummaryHandler 创建统计处理器
func NewSummaryHandler(st *store.Store) *SummaryHandler {
	return &SummaryHandler{store: st}
}

// dateRangeRequest 可选的日期范围筛选
type dateRangeRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02" example:"2024-01-01"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02" example:"2024-12-31"`
}

func (r dateRangeRequest) contains(date string) bool {
	if r.StartDate != "" && date < r.StartDate {
		return false
	}
	if r.EndDate != "" && date > r.EndDate {
		return false
	}
	return true
}

// IncomeExpenseSummaryResponse 收支汇总返回
type IncomeExpenseSummaryResponse struct {
	TotalIncome  float64 `json:"total_income" example:"5000.00"`  // 收入总和
	TotalExpense float64 `json:"total_expense" example:"123.45"`  // 支出总和
	Balance      float64 `json:"balance" example:"4876.55"`       // 结余
	TotalCount   int     `json:"total_count" example:"42"`        // 交易笔数
}

// GetSummary 获取收支汇总
// @Summary 获取收支汇总
// @Description 按日期范围统计当前用户的收入、支出与结余。不传 start_date/end_date 则统计全部时间。
// @Tags 统计
// @Produce json
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=IncomeExpenseSummaryResponse} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/statistics/summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req dateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var resp IncomeExpenseSummaryResponse
	for _, tx := range h.store.Transactions(userID) {
		if !req.contains(tx.Date) {
			continue
		}
		resp.TotalCount++
		if tx.Type == models.TypeIncome {
			resp.TotalIncome += tx.Amount
		} else {
			resp.TotalExpense += tx.Amount
		}
	}
	resp.Balance = resp.TotalIncome - resp.TotalExpense

	Success(c, resp)
}

// CategoryStat 单个类别的支出统计
type CategoryStat struct {
	Category   string  `json:"category" example:"餐饮"`
	Total      float64 `json:"total" example:"1024.50"`
	Count      int     `json:"count" example:"18"`
	Percentage float64 `json:"percentage" example:"36.5"` // 占支出总额的百分比
}

// GetCategoryStats 获取分类支出统计
// @Summary 获取分类支出统计
// @Description 按类别统计当前用户的支出总额、笔数与占比，按总额降序，适合绘制饼图与柱状图
// @Tags 统计
// @Produce json
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=[]CategoryStat} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/statistics/categories [get]
func (h *SummaryHandler) GetCategoryStats(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req dateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	totals := make(map[string]*CategoryStat)
	var totalAmount float64
	for _, tx := range h.store.Transactions(userID) {
		if tx.Type != models.TypeExpense || !req.contains(tx.Date) {
			continue
		}
		st, ok := totals[tx.Category]
		if !ok {
			st = &CategoryStat{Category: tx.Category}
			totals[tx.Category] = st
		}
		st.Total += tx.Amount
		st.Count++
		totalAmount += tx.Amount
	}

	stats := make([]CategoryStat, 0, len(totals))
	for _, st := range totals {
		if totalAmount > 0 {
			st.Percentage = st.Total / totalAmount * 100
		}
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Total > stats[j].Total })

	Success(c, stats)
}

// BudgetUsage 单个预算的使用情况
type BudgetUsage struct {
	Budget  models.Budget `json:"budget"`
	Spent   float64       `json:"spent" example:"420.00"`   // 区间内该类别支出
	Percent float64       `json:"percent" example:"84.0"`   // 已用额度百分比
	Alert   bool          `json:"alert" example:"true"`     // 达到告警阈值
}

// GetBudgetUsage 获取预算使用情况
// @Summary 获取预算使用情况
// @Description 统计每个预算类别在日期范围内的支出与已用百分比；设置了告警阈值且达到时 alert 为 true
// @Tags 统计
// @Produce json
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=[]BudgetUsage} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/budgets/usage [get]
func (h *SummaryHandler) GetBudgetUsage(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req dateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	spentByCategory := make(map[string]float64)
	for _, tx := range h.store.Transactions(userID) {
		if tx.Type == models.TypeExpense && req.contains(tx.Date) {
			spentByCategory[tx.Category] += tx.Amount
		}
	}

	budgets := h.store.Budgets(userID)
	usage := make([]BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		u := BudgetUsage{
			Budget: b,
			Spent:  spentByCategory[b.Category],
		}
		u.Percent = u.Spent / b.Limit * 100
		if b.AlertThreshold != nil && u.Percent >= float64(*b.AlertThreshold) {
			u.Alert = true
		}
		usage = append(usage, u)
	}

	Success(c, usage)
}
