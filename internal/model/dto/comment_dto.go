package dto

// CreateCommentRequest 创建评论请求，parent_id 为空表示顶级评论
type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=2000"`
	ParentID string `json:"parent_id,omitempty"`
}

// EditCommentRequest 编辑评论请求
type EditCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentItem 评论项，回复嵌套返回
type CommentItem struct {
	ID          string         `json:"id"`
	Author      *CommentAuthor `json:"author"`
	Content     string         `json:"content"`
	ContentHTML string         `json:"content_html"`
	Likes       int            `json:"likes"`
	Liked       bool           `json:"liked"`
	Replies     []*CommentItem `json:"replies"`
	CreatedAt   string         `json:"created_at"`
	EditedAt    string         `json:"edited_at,omitempty"`
}

// CommentAuthor 评论作者信息
type CommentAuthor struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// LikeResult 点赞切换结果
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}
