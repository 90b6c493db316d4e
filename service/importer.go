package service

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"fintrack/config"
	"fintrack/models"

	"github.com/google/uuid"
)

// Importer 模拟银行账单同步的交易生成器。
// 产出的记录全部标记 source=imported，类别只取用户已有类别，
// 日期落在配置的回溯窗口内。
type Importer struct {
	cfg *config.ImportConfig
}

// NewImporter 创建导入生成器
func NewImporter(cfg *config.ImportConfig) *Importer {
	return &Importer{cfg: cfg}
}

// 常见类别对应的商户名，生成备注用
var merchantsByCategory = map[string][]string{
	models.CategoryFood:          {"美团外卖", "肯德基", "星巴克", "老乡鸡", "海底捞"},
	models.CategoryTransport:     {"滴滴出行", "地铁", "公交", "中国石化"},
	models.CategoryShopping:      {"淘宝", "京东", "拼多多", "优衣库"},
	models.CategoryEntertainment: {"万达影城", "Steam", "网易云音乐", "KTV"},
	models.CategoryMedical:       {"社区医院", "大参林药房", "体检中心"},
	models.CategoryEducation:     {"新华书店", "网课平台", "文具店"},
	models.CategoryHousing:       {"房租", "物业费", "水电燃气"},
	models.CategoryTravel:        {"携程", "12306", "如家酒店"},
	models.CategoryPets:          {"宠物医院", "宠物用品店"},
	models.CategoryOther:         {"便利店", "其他商户"},
}

var genericMerchants = []string{"便利店", "线上商户", "刷卡消费"}

// Generate 为指定用户生成一批模拟导入交易
func (im *Importer) Generate(user models.User) []models.Transaction {
	if len(user.Categories) == 0 {
		return nil
	}

	count := im.cfg.MinCount
	if im.cfg.MaxCount > im.cfg.MinCount {
		count += rand.Intn(im.cfg.MaxCount - im.cfg.MinCount + 1)
	}

	now := time.Now()
	batch := make([]models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		category := user.Categories[rand.Intn(len(user.Categories))]

		// 少量收入记录，其余为支出
		txType := models.TypeExpense
		amount := randomAmount(3, 300)
		if rand.Intn(10) == 0 {
			txType = models.TypeIncome
			amount = randomAmount(100, 5000)
		}

		daysAgo := rand.Intn(im.cfg.HistoryDays)
		date := now.AddDate(0, 0, -daysAgo).Format("2006-01-02")

		batch = append(batch, models.Transaction{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Type:      txType,
			Category:  category,
			Amount:    amount,
			Date:      date,
			Notes:     fmt.Sprintf("银行导入 · %s", pickMerchant(category)),
			Source:    models.SourceImported,
			CreatedAt: now,
		})
	}
	return batch
}

// randomAmount 生成 [min, max) 区间内保留两位小数的金额
func randomAmount(min, max float64) float64 {
	v := min + rand.Float64()*(max-min)
	return math.Round(v*100) / 100
}

func pickMerchant(category string) string {
	if names, ok := merchantsByCategory[category]; ok {
		return names[rand.Intn(len(names))]
	}
	return genericMerchants[rand.Intn(len(genericMerchants))]
}
