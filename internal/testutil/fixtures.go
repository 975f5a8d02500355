package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/nestpost/social_go_server/internal/model"
)

var userSeq int64

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := atomic.AddInt64(&userSeq, 1)
	user := &model.User{
		Username:  fmt.Sprintf("testuser_%d", seq),
		Name:      fmt.Sprintf("Test User %d", seq),
		Email:     fmt.Sprintf("test_%d@example.com", seq),
		AvatarURL: "https://example.com/avatar.png",
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithName 设置显示名
func WithName(name string) func(*model.User) {
	return func(u *model.User) {
		u.Name = name
	}
}

// TestPost 创建测试帖子
func TestPost(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Post)) *model.Post {
	t.Helper()

	post := &model.Post{
		UserID:  userID,
		Content: "Test post content",
		Likes:   model.StringArray{},
	}

	for _, opt := range opts {
		opt(post)
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}

	return post
}

// WithContent 设置帖子内容
func WithContent(content string) func(*model.Post) {
	return func(p *model.Post) {
		p.Content = content
	}
}

// WithForest 预置评论树
func WithForest(t *testing.T, forest model.Forest) func(*model.Post) {
	return func(p *model.Post) {
		data, err := json.Marshal(forest)
		if err != nil {
			t.Fatalf("Failed to marshal forest: %v", err)
		}
		p.Comments = string(data)
		p.Replies = len(forest)
	}
}

// WithRawComments 直接设置 comments 字段原文（用于构造损坏数据）
func WithRawComments(raw string) func(*model.Post) {
	return func(p *model.Post) {
		p.Comments = raw
	}
}

// TestCommentNode 创建评论节点（不落库，用于拼装森林）
func TestCommentNode(user *model.User, content string, replies ...*model.CommentNode) *model.CommentNode {
	node := model.NewCommentNode(user.CommentAuthorSnapshot(), content)
	node.Replies = append(node.Replies, replies...)
	return node
}

// TestNotification 创建测试通知
func TestNotification(t *testing.T, db *gorm.DB, userID, actorID int64, opts ...func(*model.Notification)) *model.Notification {
	t.Helper()

	notification := &model.Notification{
		UserID:  userID,
		ActorID: actorID,
		Type:    model.NotificationTypeCommentPost,
		PostID:  1,
		Message: "评论了你的帖子",
	}

	for _, opt := range opts {
		opt(notification)
	}

	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("Failed to create test notification: %v", err)
	}

	return notification
}

// WithRead 设置已读状态
func WithRead(read bool) func(*model.Notification) {
	return func(n *model.Notification) {
		n.IsRead = read
	}
}

// WithType 设置通知类型
func WithType(notificationType string) func(*model.Notification) {
	return func(n *model.Notification) {
		n.Type = notificationType
	}
}

// WithCreatedAt 设置创建时间（用于过期清理测试）
func WithCreatedAt(createdAt time.Time) func(*model.Notification) {
	return func(n *model.Notification) {
		n.CreatedAt = createdAt
	}
}
