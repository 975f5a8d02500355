package worker

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nestpost/social_go_server/internal/model"
	"github.com/nestpost/social_go_server/internal/pkg/queue"
	"github.com/nestpost/social_go_server/internal/repository"
)

// Processor 通知处理器，把队列里的通知事件落库
type Processor struct {
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
}

// NewProcessor 创建通知处理器
func NewProcessor(
	notificationRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
) *Processor {
	return &Processor{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Process 处理单条通知消息。自己触发给自己的事件以及接收者已不存在的
// 事件直接丢弃，不算失败。
func (p *Processor) Process(ctx context.Context, msg *queue.NotificationMessage) error {
	if msg.FromUserID == msg.ToUserID {
		return nil
	}

	if _, err := p.userRepo.GetByID(msg.ToUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to resolve receiver: %w", err)
	}

	notification := &model.Notification{
		UserID:    msg.ToUserID,
		ActorID:   msg.FromUserID,
		Type:      msg.Type,
		PostID:    msg.PostID,
		CommentID: msg.CommentID,
		Message:   msg.Message,
	}

	if err := p.notificationRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}
