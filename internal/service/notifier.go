package service

import (
	"context"
	"log"
	"time"

	"github.com/nestpost/social_go_server/internal/pkg/queue"
)

// Notifier 通知触发器。把通知事件写入 Redis 队列，由 worker 落库。
// 尽力而为：任何失败只记日志，绝不影响触发它的那次变更。
type Notifier struct {
	queue *queue.Queue
}

func NewNotifier(q *queue.Queue) *Notifier {
	return &Notifier{queue: q}
}

// Notify 异步触发通知。自己对自己的操作不产生通知。
func (n *Notifier) Notify(msg *queue.NotificationMessage) {
	if n == nil || n.queue == nil {
		return
	}
	if msg.FromUserID == msg.ToUserID {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := n.queue.Push(ctx, msg); err != nil {
		log.Printf("Failed to enqueue notification (type=%s, to=%d): %v", msg.Type, msg.ToUserID, err)
	}
}
