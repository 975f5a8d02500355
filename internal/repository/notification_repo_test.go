package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestpost/social_go_server/internal/testutil"
)

func TestNotificationRepository_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	receiver := testutil.TestUser(t, db)
	actor := testutil.TestUser(t, db)

	testutil.TestNotification(t, db, receiver.ID, actor.ID)
	testutil.TestNotification(t, db, receiver.ID, actor.ID)
	testutil.TestNotification(t, db, actor.ID, receiver.ID) // 其他用户的通知

	items, total, err := repo.ListByUserID(receiver.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Actor)
	assert.Equal(t, actor.ID, items[0].Actor.ID)
}

func TestNotificationRepository_CountUnread(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	receiver := testutil.TestUser(t, db)
	actor := testutil.TestUser(t, db)

	testutil.TestNotification(t, db, receiver.ID, actor.ID)
	testutil.TestNotification(t, db, receiver.ID, actor.ID, testutil.WithRead(true))

	count, err := repo.CountUnread(receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	receiver := testutil.TestUser(t, db)
	actor := testutil.TestUser(t, db)

	n := testutil.TestNotification(t, db, receiver.ID, actor.ID)

	affected, err := repo.MarkRead(receiver.ID, n.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// 非接收者本人操作无效
	affected, err = repo.MarkRead(actor.ID, n.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	receiver := testutil.TestUser(t, db)
	actor := testutil.TestUser(t, db)

	testutil.TestNotification(t, db, receiver.ID, actor.ID)
	testutil.TestNotification(t, db, receiver.ID, actor.ID)

	require.NoError(t, repo.MarkAllRead(receiver.ID))

	count, err := repo.CountUnread(receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNotificationRepository_DeleteReadBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewNotificationRepository(db)
	receiver := testutil.TestUser(t, db)
	actor := testutil.TestUser(t, db)

	old := time.Now().AddDate(0, 0, -60)
	testutil.TestNotification(t, db, receiver.ID, actor.ID, testutil.WithRead(true), testutil.WithCreatedAt(old))
	testutil.TestNotification(t, db, receiver.ID, actor.ID, testutil.WithCreatedAt(old)) // 未读不删
	testutil.TestNotification(t, db, receiver.ID, actor.ID, testutil.WithRead(true))     // 未过期不删

	deleted, err := repo.DeleteReadBefore(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := repo.ListByUserID(receiver.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
