package main

import (
	"fmt"
	"log"

	"github.com/nestpost/social_go_server/config"
	"github.com/nestpost/social_go_server/internal/api"
	"github.com/nestpost/social_go_server/internal/api/handler"
	"github.com/nestpost/social_go_server/internal/database"
	"github.com/nestpost/social_go_server/internal/pkg/queue"
	"github.com/nestpost/social_go_server/internal/repository"
	"github.com/nestpost/social_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化通知队列
	notificationQueue := queue.NewQueue(rdb, cfg.Queue.NotificationQueue)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// 初始化 Service
	notifier := service.NewNotifier(notificationQueue)
	commentService := service.NewCommentService(postRepo, userRepo, notifier)
	postService := service.NewPostService(postRepo, userRepo, commentService, notifier)
	notificationService := service.NewNotificationService(notificationRepo)

	// 初始化 Handler
	postHandler := handler.NewPostHandler(postService, commentService)
	commentHandler := handler.NewCommentHandler(commentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// 初始化 Router
	router := api.NewRouter(
		postHandler,
		commentHandler,
		notificationHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
