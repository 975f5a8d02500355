package model

import (
	"time"

	"github.com/google/uuid"
)

// CommentAuthor 评论作者快照，发表时从用户记录复制，之后不随用户资料变化
type CommentAuthor struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// CommentNode 评论树节点，回复以嵌套方式挂在父节点下
type CommentNode struct {
	ID        string         `json:"id"`
	Author    CommentAuthor  `json:"author"`
	Content   string         `json:"content"`
	Likes     []string       `json:"likes"`
	Replies   []*CommentNode `json:"replies"`
	CreatedAt time.Time      `json:"created_at"`
	EditedAt  *time.Time     `json:"edited_at,omitempty"`
}

// Forest 一篇帖子的全部顶级评论，顺序即发表顺序
type Forest []*CommentNode

// NewCommentNode 创建评论节点，分配新 ID，内容校验由调用方负责
func NewCommentNode(author CommentAuthor, content string) *CommentNode {
	return &CommentNode{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		Likes:     []string{},
		Replies:   []*CommentNode{},
		CreatedAt: time.Now(),
	}
}

// LikesCount 点赞数
func (n *CommentNode) LikesCount() int {
	return len(n.Likes)
}

// HasLiked 判断指定身份是否已点赞
func (n *CommentNode) HasLiked(identity string) bool {
	for _, l := range n.Likes {
		if l == identity {
			return true
		}
	}
	return false
}

// ToggleLike 切换点赞状态，返回操作后是否处于已点赞
func (n *CommentNode) ToggleLike(identity string) bool {
	for i, l := range n.Likes {
		if l == identity {
			n.Likes = append(n.Likes[:i], n.Likes[i+1:]...)
			return false
		}
	}
	n.Likes = append(n.Likes, identity)
	return true
}

// RemoveReply 从直接回复中移除指定 ID 的节点，连同其子树一起丢弃
func (n *CommentNode) RemoveReply(id string) bool {
	for i, r := range n.Replies {
		if r.ID == id {
			n.Replies = append(n.Replies[:i], n.Replies[i+1:]...)
			return true
		}
	}
	return false
}

// Clone 深拷贝整棵评论树，结果与原树完全独立。
// 使用显式栈迭代，避免深层嵌套时的递归开销。
func (f Forest) Clone() Forest {
	if f == nil {
		return nil
	}
	cloned := make(Forest, len(f))

	type frame struct {
		src *CommentNode
		dst **CommentNode
	}
	stack := make([]frame, 0, len(f))
	for i := len(f) - 1; i >= 0; i-- {
		stack = append(stack, frame{f[i], &cloned[i]})
	}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := *fr.src
		n.Likes = append([]string{}, fr.src.Likes...)
		if fr.src.EditedAt != nil {
			t := *fr.src.EditedAt
			n.EditedAt = &t
		}
		n.Replies = make([]*CommentNode, len(fr.src.Replies))
		*fr.dst = &n

		for i := len(fr.src.Replies) - 1; i >= 0; i-- {
			stack = append(stack, frame{fr.src.Replies[i], &n.Replies[i]})
		}
	}

	return cloned
}

// Find 前序遍历查找指定 ID 的节点，返回节点及其直接父节点。
// 顶级评论的 parent 为 nil。ID 在树内唯一，首个命中即唯一命中。
func (f Forest) Find(id string) (node, parent *CommentNode, ok bool) {
	type frame struct {
		node   *CommentNode
		parent *CommentNode
	}
	stack := make([]frame, 0, len(f))
	for i := len(f) - 1; i >= 0; i-- {
		stack = append(stack, frame{f[i], nil})
	}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if fr.node.ID == id {
			return fr.node, fr.parent, true
		}
		for i := len(fr.node.Replies) - 1; i >= 0; i-- {
			stack = append(stack, frame{fr.node.Replies[i], fr.node})
		}
	}

	return nil, nil, false
}

// Remove 从顶层移除指定 ID 的节点，返回新森林
func (f Forest) Remove(id string) (Forest, bool) {
	for i, n := range f {
		if n.ID == id {
			return append(f[:i], f[i+1:]...), true
		}
	}
	return f, false
}

// Count 统计树中全部节点数量，含所有层级的回复
func (f Forest) Count() int {
	count := 0
	stack := append([]*CommentNode{}, f...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, n.Replies...)
	}
	return count
}
