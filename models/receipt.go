package models

import "time"

// Receipt 票据模型
// 由交易的 receipt_id 间接持有，票据自身不记录归属交易。
type Receipt struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	DataURL    string    `json:"data_url"` // base64 data-URL 图片内容
	UploadedAt time.Time `json:"uploaded_at"`
}
