package model

import (
	"time"
)

// 通知类型
const (
	NotificationTypeCommentPost  = "comment_post"
	NotificationTypeReplyComment = "reply_comment"
	NotificationTypeLikeComment  = "like_comment"
	NotificationTypeLikePost     = "like_post"
)

// Notification 站内通知，由 worker 从队列消费后落库
type Notification struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"` // 接收者
	ActorID   int64     `gorm:"index" json:"actor_id"`         // 触发者
	Type      string    `gorm:"size:20;not null" json:"type"`
	PostID    int64     `gorm:"index" json:"post_id"`
	CommentID string    `gorm:"size:40" json:"comment_id,omitempty"`
	Message   string    `gorm:"type:text" json:"message"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// 关联
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
