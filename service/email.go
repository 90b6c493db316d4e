package service

import (
	"fmt"
	"log"

	"fintrack/config"

	"gopkg.in/gomail.v2"
)

// Summary 分析邮件中的汇总数据
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Count        int
}

// Notifier 通知侧信道：发送分析汇总邮件。
// 属于"发后不管"的外围能力，发送失败不影响已写入的分析日志。
type Notifier struct {
	cfg *config.EmailConfig
}

// NewNotifier 创建通知服务
func NewNotifier(cfg *config.EmailConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// SendAnalyticsEmail 发送周报/月报分析邮件。
// 邮件服务未启用时降级为仅记录日志并视为成功。
func (n *Notifier) SendAnalyticsEmail(toEmail, name, period string, sum Summary) error {
	if !n.cfg.Enabled {
		log.Printf("邮件服务未启用，分析邮件仅记录: to=%s period=%s 收入=%.2f 支出=%.2f 笔数=%d",
			toEmail, period, sum.TotalIncome, sum.TotalExpense, sum.Count)
		return nil
	}

	periodText := "月度"
	if period == "weekly" {
		periodText = "每周"
	}
	subject := fmt.Sprintf("【个人理财系统】%s消费分析", periodText)
	body := n.generateAnalyticsEmailBody(name, periodText, sum)

	return n.sendEmail(toEmail, subject, body)
}

// generateAnalyticsEmailBody 生成分析邮件内容
func (n *Notifier) generateAnalyticsEmailBody(name, periodText string, sum Summary) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .stats { display: flex; gap: 12px; margin: 30px 0; }
        .stat { flex: 1; background: linear-gradient(135deg, #eff6ff, #dbeafe); border-radius: 12px; padding: 20px; text-align: center; }
        .stat .label { color: #6c757d; font-size: 13px; margin-bottom: 8px; }
        .stat .value { font-size: 22px; font-weight: bold; color: #1d4ed8; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 个人理财系统</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>这是您的%s消费分析报告：</p>
            <div class="stats">
                <div class="stat">
                    <div class="label">收入</div>
                    <div class="value">%.2f</div>
                </div>
                <div class="stat">
                    <div class="label">支出</div>
                    <div class="value">%.2f</div>
                </div>
                <div class="stat">
                    <div class="label">交易笔数</div>
                    <div class="value">%d</div>
                </div>
            </div>
            <p>登录系统查看完整的图表与预算使用情况。</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 个人理财系统 - 您的个人财务管理助手</p>
        </div>
    </div>
</body>
</html>
`, name, periodText, sum.TotalIncome, sum.TotalExpense, sum.Count)
}

// sendEmail 发送邮件
func (n *Notifier) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.Username, n.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
