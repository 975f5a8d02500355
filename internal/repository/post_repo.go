package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nestpost/social_go_server/internal/model"
)

// ErrCorruptForest 帖子的 comments 字段无法解析
var ErrCorruptForest = errors.New("评论数据已损坏")

// PostRepository 帖子仓库。整棵评论树存放在帖子行的 comments 字段中，
// 每次评论变更都整体覆盖该字段。同一帖子上的并发变更是后写覆盖（last
// write wins），先落库的一方会被悄悄丢弃，这是内嵌树模型的已知限制。
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create 创建帖子
func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

// GetByID 根据 ID 获取帖子
func (r *PostRepository) GetByID(id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByIDWithUser 获取帖子及作者信息
func (r *PostRepository) GetByIDWithUser(id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("User").Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete 删除帖子
func (r *PostRepository) Delete(id int64) error {
	return r.db.Delete(&model.Post{}, id).Error
}

// DecodeForest 解析帖子的评论树字段。字段为空表示还没有评论；
// 无法解析的内容按存储层损坏处理，不交给上层猜测。
func (r *PostRepository) DecodeForest(post *model.Post) (model.Forest, error) {
	if post.Comments == "" {
		return model.Forest{}, nil
	}

	var forest model.Forest
	if err := json.Unmarshal([]byte(post.Comments), &forest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptForest, err)
	}
	return forest, nil
}

// LoadForest 读取帖子的整棵评论树
func (r *PostRepository) LoadForest(postID int64) (model.Forest, error) {
	post, err := r.GetByID(postID)
	if err != nil {
		return nil, err
	}
	return r.DecodeForest(post)
}

// UpdateComments 整体覆盖评论树字段，并在同一条 UPDATE 里调整顶级评论计数。
// 单条语句写入，调用方视角下是原子的。
func (r *PostRepository) UpdateComments(postID int64, forest model.Forest, counterDelta int) error {
	data, err := json.Marshal(forest)
	if err != nil {
		return fmt.Errorf("failed to marshal forest: %w", err)
	}

	updates := map[string]interface{}{
		"comments":   string(data),
		"updated_at": time.Now(),
	}
	if counterDelta != 0 {
		updates["replies"] = gorm.Expr("replies + ?", counterDelta)
	}

	return r.db.Model(&model.Post{}).Where("id = ?", postID).Updates(updates).Error
}

// UpdateLikes 整体覆盖帖子点赞列表
func (r *PostRepository) UpdateLikes(postID int64, likes model.StringArray) error {
	return r.db.Model(&model.Post{}).Where("id = ?", postID).
		Update("likes", likes).Error
}
