package cron

import (
	"log"
	"time"

	"github.com/nestpost/social_go_server/internal/repository"
)

// Service 定时任务：每日清理过期的已读通知
type Service struct {
	notificationRepo *repository.NotificationRepository
	retentionDays    int
	stopChan         chan struct{}
}

func NewService(notificationRepo *repository.NotificationRepository, retentionDays int) *Service {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Service{
		notificationRepo: notificationRepo,
		retentionDays:    retentionDays,
		stopChan:         make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runDailyPrune()
	log.Println("Cron service started (notification prune)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runDailyPrune 每日清理任务，UTC 零点触发
func (s *Service) runDailyPrune() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.PruneOnce()
			timer.Reset(24 * time.Hour)
		}
	}
}

// PruneOnce 执行一次清理
func (s *Service) PruneOnce() {
	before := time.Now().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.notificationRepo.DeleteReadBefore(before)
	if err != nil {
		log.Printf("Failed to prune notifications: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Pruned %d read notifications older than %d days", deleted, s.retentionDays)
	}
}
