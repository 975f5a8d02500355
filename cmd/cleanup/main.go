package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nestpost/social_go_server/config"
	"github.com/nestpost/social_go_server/internal/model"
)

var (
	dryRun             = flag.Bool("dry-run", true, "Dry run mode, don't actually delete anything")
	notificationExpire = flag.Int("notification-expire", 30, "Days to keep read notifications")
	cleanNotifications = flag.Bool("clean-notifications", true, "Delete expired read notifications")
	checkForests       = flag.Bool("check-forests", true, "Audit posts for corrupt comment JSON")
)

func main() {
	flag.Parse()

	log.Println("🧹 Starting cleanup task...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 连接数据库
	db, err := connectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 1. 清理过期的已读通知
	if *cleanNotifications {
		log.Printf("\n🔔 Cleaning read notifications older than %d days...", *notificationExpire)
		cleanExpiredNotifications(db, *notificationExpire, *dryRun)
	}

	// 2. 巡检评论树字段
	if *checkForests {
		log.Println("\n🌳 Auditing comment forests...")
		auditCommentForests(db)
	}

	log.Println("\n✅ Cleanup complete")
}

func connectDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// cleanExpiredNotifications 删除过期的已读通知
func cleanExpiredNotifications(db *gorm.DB, expireDays int, dryRun bool) {
	before := time.Now().AddDate(0, 0, -expireDays)

	var count int64
	db.Model(&model.Notification{}).
		Where("is_read = ? AND created_at < ?", true, before).
		Count(&count)

	if count == 0 {
		log.Println("Nothing to delete")
		return
	}

	if dryRun {
		log.Printf("[dry-run] Would delete %d notifications", count)
		return
	}

	result := db.Where("is_read = ? AND created_at < ?", true, before).
		Delete(&model.Notification{})
	if result.Error != nil {
		log.Printf("Failed to delete notifications: %v", result.Error)
		return
	}
	log.Printf("Deleted %d notifications", result.RowsAffected)
}

// auditCommentForests 巡检所有帖子的 comments 字段，报告无法解析的记录。
// 只报告不修复，损坏数据需要人工介入。
func auditCommentForests(db *gorm.DB) {
	type row struct {
		ID       int64
		Comments string
	}

	var rows []row
	if err := db.Model(&model.Post{}).Select("id", "comments").Find(&rows).Error; err != nil {
		log.Printf("Failed to scan posts: %v", err)
		return
	}

	corrupt := 0
	for _, r := range rows {
		if r.Comments == "" {
			continue
		}
		var forest model.Forest
		if err := json.Unmarshal([]byte(r.Comments), &forest); err != nil {
			corrupt++
			log.Printf("Post %d: corrupt comments field: %v", r.ID, err)
		}
	}

	if corrupt == 0 {
		log.Printf("Checked %d posts, all comment forests parse cleanly", len(rows))
	} else {
		log.Printf("Checked %d posts, %d corrupt", len(rows), corrupt)
	}
}
