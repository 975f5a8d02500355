package dto

// NotificationItem 通知项
type NotificationItem struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Actor     *PostUser `json:"actor,omitempty"`
	PostID    int64     `json:"post_id"`
	CommentID string    `json:"comment_id,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt string    `json:"created_at"`
}

// UnreadCountResponse 未读数量
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
