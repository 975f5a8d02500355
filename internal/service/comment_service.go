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

var (
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrParentNotFound    = errors.New("父评论不存在")
	ErrCommentPermission = errors.New("无权操作此评论")
	ErrEmptyContent      = errors.New("评论内容不能为空")
)

// CommentService 评论树变更操作。每次操作都是：读出整棵树 → 克隆 →
// 定位目标节点 → 应用变更 → 整体写回 → 按需触发通知。
// 同一帖子上的并发变更后写覆盖，不做跨请求互斥。
type CommentService struct {
	postRepo *repository.PostRepository
	userRepo *repository.UserRepository
	notifier *Notifier
}

func NewCommentService(
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
	notifier *Notifier,
) *CommentService {
	return &CommentService{
		postRepo: postRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Create 发表评论。parent_id 为空时追加为顶级评论并把帖子的回复计数
// 加一；否则挂到父评论的回复列表下，不动帖子计数。
func (s *CommentService) Create(userID, postID int64, req *dto.CreateCommentRequest) (*dto.CommentItem, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	post, err := s.postRepo.GetByID(postID)
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

	actor, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	node := model.NewCommentNode(actor.CommentAuthorSnapshot(), content)
	cloned := forest.Clone()

	var (
		counterDelta int
		notifyMsg    *queue.NotificationMessage
	)

	if req.ParentID != "" {
		parent, _, ok := cloned.Find(req.ParentID)
		if !ok {
			return nil, ErrParentNotFound
		}
		parent.Replies = append(parent.Replies, node)

		if targetID, ok := s.resolveUserID(parent.Author.Email); ok {
			notifyMsg = &queue.NotificationMessage{
				Type:       model.NotificationTypeReplyComment,
				FromUserID: userID,
				ToUserID:   targetID,
				PostID:     postID,
				CommentID:  node.ID,
				Message:    "回复了你的评论",
			}
		}
	} else {
		cloned = append(cloned, node)
		counterDelta = 1
		notifyMsg = &queue.NotificationMessage{
			Type:       model.NotificationTypeCommentPost,
			FromUserID: userID,
			ToUserID:   post.UserID,
			PostID:     postID,
			CommentID:  node.ID,
			Message:    "评论了你的帖子",
		}
	}

	if err := s.postRepo.UpdateComments(postID, cloned, counterDelta); err != nil {
		return nil, err
	}

	if notifyMsg != nil {
		s.notifier.Notify(notifyMsg)
	}

	return s.buildCommentItem(node, actor.Email), nil
}

// Edit 编辑评论内容，仅作者本人可操作
func (s *CommentService) Edit(userID, postID int64, commentID string, req *dto.EditCommentRequest) error {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return ErrEmptyContent
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	forest, err := s.postRepo.DecodeForest(post)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	cloned := forest.Clone()
	node, _, ok := cloned.Find(commentID)
	if !ok {
		return ErrCommentNotFound
	}

	if node.Author.Email != actor.Email {
		return ErrCommentPermission
	}

	now := time.Now()
	node.Content = content
	node.EditedAt = &now

	return s.postRepo.UpdateComments(postID, cloned, 0)
}

// Delete 删除评论，仅作者本人可操作。回复连同其整个子树一起删除；
// 顶级评论从树根移除并把帖子回复计数减一（无论子树多大都只减一，
// 与计数只统计顶级评论的口径一致）。
func (s *CommentService) Delete(userID, postID int64, commentID string) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	forest, err := s.postRepo.DecodeForest(post)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	cloned := forest.Clone()
	node, parent, ok := cloned.Find(commentID)
	if !ok {
		return ErrCommentNotFound
	}

	if node.Author.Email != actor.Email {
		return ErrCommentPermission
	}

	counterDelta := 0
	if parent != nil {
		parent.RemoveReply(commentID)
	} else {
		cloned, _ = cloned.Remove(commentID)
		counterDelta = -1
	}

	return s.postRepo.UpdateComments(postID, cloned, counterDelta)
}

// ToggleLike 切换评论点赞。已点赞则取消，未点赞则点赞并通知评论作者。
// 任意层级的评论都可以点赞。
func (s *CommentService) ToggleLike(userID, postID int64, commentID string) (*dto.LikeResult, error) {
	post, err := s.postRepo.GetByID(postID)
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

	actor, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	cloned := forest.Clone()
	node, _, ok := cloned.Find(commentID)
	if !ok {
		return nil, ErrCommentNotFound
	}

	liked := node.ToggleLike(actor.Email)

	if err := s.postRepo.UpdateComments(postID, cloned, 0); err != nil {
		return nil, err
	}

	if liked {
		if targetID, ok := s.resolveUserID(node.Author.Email); ok {
			s.notifier.Notify(&queue.NotificationMessage{
				Type:       model.NotificationTypeLikeComment,
				FromUserID: userID,
				ToUserID:   targetID,
				PostID:     postID,
				CommentID:  commentID,
				Message:    "赞了你的评论",
			})
		}
	}

	return &dto.LikeResult{Liked: liked, Likes: node.LikesCount()}, nil
}

// ListByPostID 获取帖子的完整评论树
func (s *CommentService) ListByPostID(postID int64, viewerIdentity string) ([]*dto.CommentItem, error) {
	post, err := s.postRepo.GetByID(postID)
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

	items := make([]*dto.CommentItem, len(forest))
	for i, n := range forest {
		items[i] = s.buildCommentItem(n, viewerIdentity)
	}
	return items, nil
}

// ViewerIdentity 把认证中间件给出的用户 ID 换成身份标识（邮箱），
// 供只读接口标记当前用户的点赞状态。查不到时返回空串。
func (s *CommentService) ViewerIdentity(userID int64) string {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ""
	}
	return user.Email
}

// resolveUserID 按作者快照里的身份反查用户 ID，用户已注销则放弃通知
func (s *CommentService) resolveUserID(email string) (int64, bool) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return 0, false
	}
	return user.ID, true
}

func (s *CommentService) buildCommentItem(n *model.CommentNode, viewerIdentity string) *dto.CommentItem {
	item := &dto.CommentItem{
		ID:      n.ID,
		Content: n.Content,
		Author: &dto.CommentAuthor{
			Name:      n.Author.Name,
			Username:  n.Author.Username,
			AvatarURL: n.Author.AvatarURL,
		},
		ContentHTML: markdown.Render(n.Content),
		Likes:       n.LikesCount(),
		Liked:       viewerIdentity != "" && n.HasLiked(viewerIdentity),
		Replies:     make([]*dto.CommentItem, len(n.Replies)),
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.EditedAt != nil {
		item.EditedAt = n.EditedAt.Format(time.RFC3339)
	}
	for i, r := range n.Replies {
		item.Replies[i] = s.buildCommentItem(r, viewerIdentity)
	}
	return item
}
