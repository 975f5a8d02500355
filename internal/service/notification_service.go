package service

import (
	"errors"
	"time"

	"github.com/nestpost/social_go_server/internal/model"
	"github.com/nestpost/social_go_server/internal/model/dto"
	"github.com/nestpost/social_go_server/internal/repository"
)

var ErrNotificationNotFound = errors.New("通知不存在")

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List 获取用户通知列表
func (s *NotificationService) List(userID int64, page, pageSize int) ([]*dto.NotificationItem, int64, error) {
	notifications, total, err := s.notificationRepo.ListByUserID(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.NotificationItem, len(notifications))
	for i, n := range notifications {
		items[i] = buildNotificationItem(n)
	}
	return items, total, nil
}

// UnreadCount 获取未读通知数
func (s *NotificationService) UnreadCount(userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

// MarkRead 标记单条通知已读
func (s *NotificationService) MarkRead(userID, notificationID int64) error {
	affected, err := s.notificationRepo.MarkRead(userID, notificationID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead 标记全部通知已读
func (s *NotificationService) MarkAllRead(userID int64) error {
	return s.notificationRepo.MarkAllRead(userID)
}

func buildNotificationItem(n *model.Notification) *dto.NotificationItem {
	item := &dto.NotificationItem{
		ID:        n.ID,
		Type:      n.Type,
		PostID:    n.PostID,
		CommentID: n.CommentID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.Actor != nil {
		item.Actor = &dto.PostUser{
			ID:        n.Actor.ID,
			Username:  n.Actor.Username,
			Name:      n.Actor.Name,
			AvatarURL: n.Actor.AvatarURL,
		}
	}
	return item
}
