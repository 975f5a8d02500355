package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringArray 用于 JSON 数组字段
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return nil
}

// Post 帖子。整棵评论树作为单个 JSON 字段内嵌在帖子行中，
// 没有独立的评论表，每次评论变更都整体读写 comments 字段。
type Post struct {
	ID        int64       `gorm:"primaryKey" json:"id"`
	UserID    int64       `gorm:"not null;index" json:"user_id"`
	Content   string      `gorm:"type:text;not null" json:"content"`
	ImageURL  string      `gorm:"size:500" json:"image_url,omitempty"`
	Comments  string      `gorm:"type:json" json:"-"` // 评论树 JSON，由 repository 解析
	Likes     StringArray `gorm:"type:json" json:"likes"`
	Replies   int         `gorm:"default:0" json:"replies"` // 顶级评论计数（冗余字段）
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// HasLiked 判断指定身份是否已点赞该帖子
func (p *Post) HasLiked(identity string) bool {
	for _, l := range p.Likes {
		if l == identity {
			return true
		}
	}
	return false
}
