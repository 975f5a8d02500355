package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nestpost/social_go_server/internal/api/middleware"
	"github.com/nestpost/social_go_server/internal/model/dto"
	"github.com/nestpost/social_go_server/internal/pkg/response"
	"github.com/nestpost/social_go_server/internal/service"
)

type PostHandler struct {
	postService    *service.PostService
	commentService *service.CommentService
}

func NewPostHandler(postService *service.PostService, commentService *service.CommentService) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
	}
}

// Create 发布帖子
// POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	post, err := h.postService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPostContent) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "发布成功", post)
}

// Get 获取帖子详情及评论树
// GET /api/v1/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	viewer := ""
	if userID, ok := middleware.GetUserID(c); ok {
		viewer = h.commentService.ViewerIdentity(userID)
	}

	post, err := h.postService.Get(postID, viewer)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, post)
}

// Like 切换帖子点赞
// POST /api/v1/posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	result, err := h.postService.ToggleLike(userID, postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}
