package dto

// CreatePostRequest 发布帖子请求
type CreatePostRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	ImageURL string `json:"image_url,omitempty"`
}

// PostUser 帖子作者信息
type PostUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// PostDetail 帖子详情，含完整评论树
type PostDetail struct {
	ID           int64          `json:"id"`
	User         *PostUser      `json:"user"`
	Content      string         `json:"content"`
	ContentHTML  string         `json:"content_html"`
	ImageURL     string         `json:"image_url,omitempty"`
	Likes        int            `json:"likes"`
	Liked        bool           `json:"liked"`
	Replies      int            `json:"replies"`       // 冗余的顶级评论计数
	CommentCount int            `json:"comment_count"` // 树中全部节点数
	Comments     []*CommentItem `json:"comments"`
	CreatedAt    string         `json:"created_at"`
}
