package api

import (
	"strings"

	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// ReceiptHandler 票据处理器
type ReceiptHandler struct {
	store *store.Store
}

// NewReceiptHandler 创建票据处理器
func NewReceiptHandler(st *store.Store) *ReceiptHandler {
	return &ReceiptHandler{store: st}
}

// UploadReceiptRequest 上传票据请求
type UploadReceiptRequest struct {
	FileName string `json:"file_name" binding:"required,max=255" example:"receipt.jpg"`
	DataURL  string `json:"data_url" binding:"required" example:"data:image/jpeg;base64,..."`
}

// Upload 上传票据
// @Summary 上传票据
// @Description 保存一张 base64 data-URL 形式的票据图片，返回票据 ID 供交易关联
// @Tags 票据
// @Accept json
// @Produce json
// @Param request body UploadReceiptRequest true "票据内容"
// @Success 200 {object} Response{data=models.Receipt} "上传成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/receipts [post]
func (h *ReceiptHandler) Upload(c *gin.Context) {
	var req UploadReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if !strings.HasPrefix(req.DataURL, "data:image/") {
		BadRequest(c, "票据内容必须为 data:image/ 开头的 data-URL")
		return
	}

	r := h.store.AddReceipt(req.FileName, req.DataURL)
	SuccessWithMessage(c, "上传成功", r)
}

// Get 获取票据
// @Summary 获取票据
// @Description 根据ID获取票据内容。已被删除的票据即使仍被交易引用也按不存在处理。
// @Tags 票据
// @Produce json
// @Param id path string true "票据ID"
// @Success 200 {object} Response{data=models.Receipt} "获取成功"
// @Failure 401 {object} Response "未登录"
// @Failure 404 {object} Response "票据不存在"
// @Router /api/v1/receipts/{id} [get]
func (h *ReceiptHandler) Get(c *gin.Context) {
	r, ok := h.store.Receipt(c.Param("id"))
	if !ok {
		NotFound(c, "票据不存在")
		return
	}
	Success(c, r)
}

// Delete 删除票据
// @Summary 删除票据
// @Description 删除指定票据。仍指向它的交易不做清理，引用悬空由读取方兜底。
// @Tags 票据
// @Produce json
// @Param id path string true "票据ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *gin.Context) {
	h.store.RemoveReceipt(c.Param("id"))
	SuccessWithMessage(c, "删除成功", nil)
}
