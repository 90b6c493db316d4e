package main

import (
	"flag"
	"log"
	"strings"

	"fintrack/config"
	"fintrack/router"
	"fintrack/service"
	"fintrack/store"
)

// @title 个人理财系统 API
// @version 1.0
// @description 个人理财系统后端 API，支持注册登录、交易记录、预算管理、订阅档位、消费统计与分析邮件
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("个人理财系统 v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		// 自动添加冒号前缀
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 打印配置信息
	config.PrintConfig()

	// 打开快照存储，不存在则从空状态启动
	st, err := store.Open(cfg.Storage.Path, service.NewImporter(&cfg.Import))
	if err != nil {
		log.Fatalf("加载数据快照失败: %v", err)
	}

	// 设置路由
	notifier := service.NewNotifier(&cfg.Email)
	r := router.SetupRouter(cfg, st, notifier)

	// 启动服务器
	log.Printf("==========================================")
	log.Printf("  💰 个人理财系统已启动")
	log.Printf("==========================================")
	log.Printf("  数据快照: %s", cfg.Storage.Path)
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
