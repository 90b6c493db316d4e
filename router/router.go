package router

import (
	"time"

	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/middleware"
	"fintrack/store"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, st *store.Store, notifier api.AnalyticsNotifier) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(st)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(10, time.Minute), authHandler.Login)
			auth.POST("/password/reset", authHandler.ResetPassword)
		}

		// 需要登录会话的路由
		authorized := v1.Group("")
		authorized.Use(middleware.SessionRequired(st))
		{
			// 用户相关
			authorized.POST("/auth/logout", authHandler.Logout)
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/settings", authHandler.UpdateSettings)

			// 交易记录相关
			transactionHandler := api.NewTransactionHandler(st)
			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", transactionHandler.Create)
				transactions.GET("", transactionHandler.List)
				transactions.POST("/import", transactionHandler.Import)
				transactions.GET("/:id", transactionHandler.Get)
				transactions.PUT("/:id", transactionHandler.Update)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			// 票据相关
			receiptHandler := api.NewReceiptHandler(st)
			receipts := authorized.Group("/receipts")
			{
				receipts.POST("", receiptHandler.Upload)
				receipts.GET("/:id", receiptHandler.Get)
				receipts.DELETE("/:id", receiptHandler.Delete)
			}

			// 预算相关
			budgetHandler := api.NewBudgetHandler(st)
			summaryHandler := api.NewSummaryHandler(st)
			budgets := authorized.Group("/budgets")
			{
				budgets.POST("", budgetHandler.Upsert)
				budgets.GET("", budgetHandler.List)
				budgets.GET("/usage", summaryHandler.GetBudgetUsage)
				budgets.DELETE("/:id", budgetHandler.Delete)
			}

			// 类别相关
			categoryHandler := api.NewCategoryHandler(st)
			authorized.GET("/categories", categoryHandler.List)
			authorized.POST("/categories", categoryHandler.Add)

			// 订阅相关
			subscriptionHandler := api.NewSubscriptionHandler(st)
			authorized.GET("/subscription", subscriptionHandler.Get)
			authorized.POST("/subscription/upgrade", subscriptionHandler.Upgrade)
			authorized.POST("/subscription/downgrade", subscriptionHandler.Downgrade)

			// 分析邮件相关
			analyticsHandler := api.NewAnalyticsHandler(st, notifier)
			authorized.POST("/analytics/email", analyticsHandler.SendEmail)
			authorized.GET("/analytics/logs", analyticsHandler.ListLogs)

			// 统计相关
			statistics := authorized.Group("/statistics")
			{
				statistics.GET("/summary", summaryHandler.GetSummary)
				statistics.GET("/categories", summaryHandler.GetCategoryStats)
			}

			// 导出相关
			exportHandler := api.NewExportHandler(st)
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
