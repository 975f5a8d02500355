package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nestpost/social_go_server/internal/model"
	"github.com/nestpost/social_go_server/internal/model/dto"
	"github.com/nestpost/social_go_server/internal/repository"
	"github.com/nestpost/social_go_server/internal/testutil"
)

func newPostService(db *gorm.DB) *PostService {
	postRepo := repository.NewPostRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifier := NewNotifier(nil)
	commentService := NewCommentService(postRepo, userRepo, notifier)
	return NewPostService(postRepo, userRepo, commentService, notifier)
}

func TestPostService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := newPostService(db)
	alice := testutil.TestUser(t, db, testutil.WithUsername("alice"))

	detail, err := svc.Create(alice.ID, &dto.CreatePostRequest{Content: "hello world"})
	require.NoError(t, err)
	assert.NotZero(t, detail.ID)
	assert.Equal(t, "hello world", detail.Content)
	assert.Equal(t, 0, detail.Likes)
	assert.Equal(t, 0, detail.Replies)
	assert.Empty(t, detail.Comments)
	require.NotNil(t, detail.User)
	assert.Equal(t, "alice", detail.User.Username)
}

func TestPostService_Create_EmptyContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := newPostService(db)
	alice := testutil.TestUser(t, db)

	_, err := svc.Create(alice.ID, &dto.CreatePostRequest{Content: "  "})
	assert.True(t, errors.Is(err, ErrEmptyPostContent))
}

func TestPostService_Get(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := newPostService(db)
	alice := testutil.TestUser(t, db)
	bob := testutil.TestUser(t, db)

	reply := testutil.TestCommentNode(bob, "reply")
	root := testutil.TestCommentNode(alice, "comment", reply)
	post := testutil.TestPost(t, db, alice.ID,
		testutil.WithContent("with comments"),
		testutil.WithForest(t, model.Forest{root}),
	)

	detail, err := svc.Get(post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "with comments", detail.Content)
	assert.Equal(t, 1, detail.Replies)      // 计数只统计顶级评论
	assert.Equal(t, 2, detail.CommentCount) // 树里实际节点数
	require.Len(t, detail.Comments, 1)
	require.Len(t, detail.Comments[0].Replies, 1)
	assert.Equal(t, "reply", detail.Comments[0].Replies[0].Content)
}

func TestPostService_Get_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := newPostService(db)

	_, err := svc.Get(99999, "")
	assert.True(t, errors.Is(err, ErrPostNotFound))
}

func TestPostService_ToggleLike(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := newPostService(db)
	alice := testutil.TestUser(t, db)
	bob := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, alice.ID)

	result, err := svc.ToggleLike(bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.Likes)

	detail, err := svc.Get(post.ID, bob.Email)
	require.NoError(t, err)
	assert.True(t, detail.Liked)

	result, err = svc.ToggleLike(bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.Likes)
}
