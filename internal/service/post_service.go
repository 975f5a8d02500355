package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nestpost/social_go_server/internal/model"
	"github.com/nestpost/social_go_server/internal/model/dto"
	"github.com/nestpost/social_go_server/internal/pkg/markdown"
	"github.com/nestpost/social_go_server/internal/pkg/queue"
	"github.com/nestpost/social_go_server/internal/repository"
)

var ErrEmptyPostContent = errors.New("帖子内容不能为空")

type PostService struct {
	postRepo       *repository.PostRepository
	userRepo       *repository.UserRepository
	commentService *CommentService
	notifier       *Notifier
}

func NewPostService(
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
	commentService *CommentService,
	notifier *Notifier,
) *PostService {
	return &PostService{
		postRepo:       postRepo,
		userRepo:       userRepo,
		commentService: commentService,
		notifier:       notifier,
	}
}

// Create 发布帖子
func (s *PostService) Create(userID int64, req *dto.CreatePostRequest) (*dto.PostDetail, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyPostContent
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:   userID,
		Content:  content,
		ImageURL: req.ImageURL,
		Likes:    model.StringArray{},
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	post.User = user
	return s.buildPostDetail(post, model.Forest{}, user.Email), nil
}

// Get 获取帖子详情及完整评论树
func (s *PostService) Get(postID int64, viewerIdentity string) (*dto.PostDetail, error) {
	post, err := s.postRepo.GetByIDWithUser(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	forest, err := s.postRepo.DecodeForest(post)
	if err != nil {
		return nil, err
	}

	return s.buildPostDetail(post, forest, viewerIdentity), nil
}

// ToggleLike 切换帖子点赞，点赞时通知帖子作者
func (s *PostService) ToggleLike(userID, postID int64) (*dto.LikeResult, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	actor, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	liked := true
	likes := post.Likes
	for i, l := range likes {
		if l == actor.Email {
			likes = append(likes[:i], likes[i+1:]...)
			liked = false
			break
		}
	}
	if liked {
		likes = append(likes, actor.Email)
	}

	if err := s.postRepo.UpdateLikes(postID, likes); err != nil {
		return nil, err
	}

	if liked {
		s.notifier.Notify(&queue.NotificationMessage{
			Type:       model.NotificationTypeLikePost,
			FromUserID: userID,
			ToUserID:   post.UserID,
			PostID:     postID,
			Message:    "赞了你的帖子",
		})
	}

	return &dto.LikeResult{Liked: liked, Likes: len(likes)}, nil
}

func (s *PostService) buildPostDetail(post *model.Post, forest model.Forest, viewerIdentity string) *dto.PostDetail {
	detail := &dto.PostDetail{
		ID:           post.ID,
		Content:      post.Content,
		ContentHTML:  markdown.Render(post.Content),
		ImageURL:     post.ImageURL,
		Likes:        len(post.Likes),
		Liked:        viewerIdentity != "" && post.HasLiked(viewerIdentity),
		Replies:      post.Replies,
		CommentCount: forest.Count(),
		Comments:     make([]*dto.CommentItem, len(forest)),
		CreatedAt:    post.CreatedAt.Format(time.RFC3339),
	}

	if post.User != nil {
		detail.User = &dto.PostUser{
			ID:        post.User.ID,
			Username:  post.User.Username,
			Name:      post.User.Name,
			AvatarURL: post.User.AvatarURL,
		}
	}

	for i, n := range forest {
		detail.Comments[i] = s.commentService.buildCommentItem(n, viewerIdentity)
	}

	return detail
}
