package middleware

import (
	"net/http"

	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// 上下文中存放当前用户 ID 的键
const userIDKey = "userID"

// SessionRequired 会话中间件：要求存储中存在当前登录用户。
// 会话就是存储里的一个可空用户 ID 字段，没有令牌机制，
// 中间件只负责把它放进请求上下文。
func SessionRequired(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := st.CurrentUser()
		if u == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "请先登录",
			})
			c.Abort()
			return
		}
		c.Set(userIDKey, u.ID)
		c.Next()
	}
}

// GetCurrentUserID 获取当前请求的用户 ID，未设置时返回空串
func GetCurrentUserID(c *gin.Context) string {
	v, ok := c.Get(userIDKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// SetCurrentUserID 测试辅助：直接注入用户 ID
func SetCurrentUserID(c *gin.Context, id string) {
	c.Set(userIDKey, id)
}
