package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nestpost/social_go_server/internal/testutil"
)

func TestUserRepository_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	user := testutil.TestUser(t, db, testutil.WithUsername("alice"))

	got, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = repo.GetByID(99999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	testutil.TestUser(t, db, testutil.WithEmail("alice@example.com"))

	got, err := repo.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = repo.GetByEmail("missing@example.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	testutil.TestUser(t, db, testutil.WithUsername("bob"))

	got, err := repo.GetByUsername("bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
}

func TestUser_CommentAuthorSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db,
		testutil.WithUsername("alice"),
		testutil.WithName("Alice"),
		testutil.WithEmail("alice@example.com"),
	)

	snapshot := user.CommentAuthorSnapshot()
	assert.Equal(t, "Alice", snapshot.Name)
	assert.Equal(t, "alice@example.com", snapshot.Email)
	assert.Equal(t, "alice", snapshot.Username)
}
