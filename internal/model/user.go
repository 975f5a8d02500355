package model

import (
	"time"
)

// User 用户资料。注册、登录和会话签发由独立的认证服务负责，
// 本服务只读取用户记录生成评论作者快照。
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url"`
	Bio       string    `gorm:"type:text" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// CommentAuthorSnapshot 生成评论作者快照
func (u *User) CommentAuthorSnapshot() CommentAuthor {
	return CommentAuthor{
		Name:      u.Name,
		Email:     u.Email,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}
