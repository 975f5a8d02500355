package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nestpost/social_go_server/config"
	"github.com/nestpost/social_go_server/internal/api/handler"
	"github.com/nestpost/social_go_server/internal/api/middleware"
)

type Router struct {
	postHandler         *handler.PostHandler
	commentHandler      *handler.CommentHandler
	notificationHandler *handler.NotificationHandler
	cfg                 *config.Config
}

func NewRouter(
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	notificationHandler *handler.NotificationHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		postHandler:         postHandler,
		commentHandler:      commentHandler,
		notificationHandler: notificationHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 帖子与评论 - 公开读取（可选认证，用于标记当前用户的点赞状态）
		postsPublic := api.Group("/posts")
		postsPublic.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			postsPublic.GET("/:id", r.postHandler.Get)
			postsPublic.GET("/:id/comments", r.commentHandler.List)
		}

		// 帖子与评论 - 需要认证的变更操作
		postsAuth := api.Group("/posts")
		postsAuth.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			postsAuth.POST("", r.postHandler.Create)
			postsAuth.POST("/:id/like", r.postHandler.Like)

			postsAuth.POST("/:id/comments", r.commentHandler.Create)
			postsAuth.PUT("/:id/comments/:cid", r.commentHandler.Edit)
			postsAuth.DELETE("/:id/comments/:cid", r.commentHandler.Delete)
			postsAuth.POST("/:id/comments/:cid/like", r.commentHandler.Like)
		}

		// 通知（需要认证）
		notifications := api.Group("/notifications")
		notifications.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			notifications.GET("", r.notificationHandler.List)
			notifications.GET("/unread", r.notificationHandler.UnreadCount)
			notifications.PUT("/:id/read", r.notificationHandler.MarkRead)
			notifications.PUT("/read-all", r.notificationHandler.MarkAllRead)
		}
	}

	return engine
}
