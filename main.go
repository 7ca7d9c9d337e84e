package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/config"
	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/db"
	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
	"github.com/jerrry-dev/ailuminate-v2/internal/router"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
)

func main() {
	createAdmin := flag.Bool("create-admin", false, "根据环境变量创建管理员账号并退出")
	configDir := flag.String("config", "config", "配置文件目录")
	flag.Parse()

	config.InitConfig(*configDir)

	gdb, err := db.NewDB(config.Get().Database)
	if err != nil {
		log.Fatalf("❌ 数据库初始化失败: %v", err)
	}

	mongoDB, err := db.NewMongo(context.Background(), config.Get().Mongo)
	if err != nil {
		log.Fatalf("❌ 文档库初始化失败: %v", err)
	}

	docStore := repository.NewArticleDocRepository(db.ArticleCollection(mongoDB))
	repos := repository.NewRepositories(gdb, docStore)

	redisSvc := service.NewRedisService(config.Get().Redis)
	appService := service.NewAppService(repos, redisSvc)
	appService.Settings.InitializeSettings()

	// 管理员没有对外注册入口，只能通过该开关离线创建
	if *createAdmin {
		bootstrapAdmin(appService)
		return
	}

	gin.SetMode(config.Get().Server.Mode)

	r := gin.Default()
	authMW := middleware.NewAuthMiddleware(repos.User, redisSvc)
	rt := router.NewRouter(appService, authMW)
	rt.Init(r)

	printWelcomeMessage()

	srv := &http.Server{
		Addr:    ":" + config.Get().Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 服务启动成功，运行在 :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ 服务启动失败: %s\n", err)
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ 服务强制关闭:", err)
	}

	if err := mongoDB.Client().Disconnect(ctx); err != nil {
		log.Printf("⚠️ 文档库断开失败: %v", err)
	}
	_ = redisSvc.Close()

	log.Println("✅ 服务已退出")
}

// bootstrapAdmin 从环境变量读取凭证创建管理员
func bootstrapAdmin(appService *service.AppService) {
	username := os.Getenv("AILUMINATE_ADMIN_USERNAME")
	email := os.Getenv("AILUMINATE_ADMIN_EMAIL")
	password := os.Getenv("AILUMINATE_ADMIN_PASSWORD")
	name := os.Getenv("AILUMINATE_ADMIN_NAME")

	if username == "" || email == "" || password == "" {
		log.Fatal("❌ 创建管理员需要设置 AILUMINATE_ADMIN_USERNAME、AILUMINATE_ADMIN_EMAIL 和 AILUMINATE_ADMIN_PASSWORD")
	}

	admin, err := appService.Admin.BootstrapAdmin(username, email, password, name)
	if err != nil {
		log.Fatalf("❌ 管理员创建失败: %v", err)
	}
	log.Printf("✅ 管理员创建成功: %s (%s)", admin.Username, admin.Email)
}

func printWelcomeMessage() {
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  版本 : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🔥  服务端口 : %s\n", config.Get().Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}
