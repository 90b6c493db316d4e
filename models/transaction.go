package models

import "time"

const (
	// TypeIncome 收入
	TypeIncome = "income"
	// TypeExpense 支出
	TypeExpense = "expense"
)

const (
	// SourceManual 手动录入
	SourceManual = "manual"
	// SourceImported 模拟银行导入
	SourceImported = "imported"
)

// Transaction 交易记录模型
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`     // income / expense
	Category  string    `json:"category"` // 自由文本，通常取自用户类别列表
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"` // 记账日期（YYYY-MM-DD），由调用方给定，区别于 created_at
	Notes     string    `json:"notes,omitempty"`
	ReceiptID string    `json:"receipt_id,omitempty"` // 关联票据，弱引用
	Source    string    `json:"source"`               // manual / imported
	CreatedAt time.Time `json:"created_at"`
}

// 默认类别，顺序固定。前 FreeCategoryCount 项为免费版起始类别，
// 升级高级版后并入完整列表。
const (
	CategoryFood          = "餐饮"
	CategoryTransport     = "交通"
	CategoryShopping      = "购物"
	CategoryEntertainment = "娱乐"
	CategoryMedical       = "医疗"
	CategoryEducation     = "教育"
	CategoryHousing       = "住房"
	CategoryTravel        = "旅行"
	CategoryPets          = "宠物"
	CategoryOther         = "其他"
)

// FreeCategoryCount 免费版可用的默认类别数量
const FreeCategoryCount = 6

// DefaultCategories 获取完整的默认类别列表
func DefaultCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryMedical,
		CategoryEducation,
		CategoryHousing,
		CategoryTravel,
		CategoryPets,
		CategoryOther,
	}
}

// FreeCategories 获取免费版起始类别（默认列表前 6 项）
func FreeCategories() []string {
	return DefaultCategories()[:FreeCategoryCount]
}
