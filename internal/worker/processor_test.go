package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nestpost/social_go_server/internal/model"
	"github.com/nestpost/social_go_server/internal/pkg/queue"
	"github.com/nestpost/social_go_server/internal/repository"
	"github.com/nestpost/social_go_server/internal/testutil"
)

func setupProcessor(t *testing.T) (*Processor, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	processor := NewProcessor(
		repository.NewNotificationRepository(db),
		repository.NewUserRepository(db),
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return processor, db, cleanup
}

func TestProcessor_Process_CreatesNotification(t *testing.T) {
	processor, db, cleanup := setupProcessor(t)
	defer cleanup()

	receiver := testutil.TestUser(t, db)
	actor := testutil.TestUser(t, db)

	msg := &queue.NotificationMessage{
		Type:       model.NotificationTypeCommentPost,
		FromUserID: actor.ID,
		ToUserID:   receiver.ID,
		PostID:     42,
		CommentID:  "node-1",
		Message:    "评论了你的帖子",
	}

	require.NoError(t, processor.Process(context.Background(), msg))

	repo := repository.NewNotificationRepository(db)
	items, total, err := repo.ListByUserID(receiver.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, model.NotificationTypeCommentPost, items[0].Type)
	assert.Equal(t, actor.ID, items[0].ActorID)
	assert.Equal(t, int64(42), items[0].PostID)
	assert.Equal(t, "node-1", items[0].CommentID)
	assert.False(t, items[0].IsRead)
}

func TestProcessor_Process_SelfEventSkipped(t *testing.T) {
	processor, db, cleanup := setupProcessor(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	msg := &queue.NotificationMessage{
		Type:       model.NotificationTypeLikePost,
		FromUserID: user.ID,
		ToUserID:   user.ID,
		PostID:     1,
	}

	require.NoError(t, processor.Process(context.Background(), msg))

	repo := repository.NewNotificationRepository(db)
	_, total, err := repo.ListByUserID(user.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestProcessor_Process_MissingReceiverDropped(t *testing.T) {
	processor, db, cleanup := setupProcessor(t)
	defer cleanup()

	actor := testutil.TestUser(t, db)

	msg := &queue.NotificationMessage{
		Type:       model.NotificationTypeReplyComment,
		FromUserID: actor.ID,
		ToUserID:   99999,
		PostID:     1,
		CommentID:  "node-1",
	}

	// 接收者不存在直接丢弃，不算处理失败
	require.NoError(t, processor.Process(context.Background(), msg))
}
