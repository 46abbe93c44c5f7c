package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"posts-backend/internal/entity"
	"posts-backend/internal/repo"
	"posts-backend/pkg/connector"
	"posts-backend/pkg/goosehelper"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	db, err := connector.GetDatabaseConnector(ctx, connector.DriverSQLite, filepath.Join(t.TempDir(), "posts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = goosehelper.MigrateUp(db.DB, connector.GooseDialect(connector.DriverSQLite), Migrations, MigrationsDir)
	require.NoError(t, err)
	return db
}

func newPost(caption string) *entity.Post {
	return &entity.Post{
		Caption:  caption,
		URL:      "http://media.local/posts-media/" + caption,
		FileType: entity.FileTypeImage,
		FileName: caption + ".jpg",
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	err := goosehelper.MigrateUp(db.DB, connector.GooseDialect(connector.DriverSQLite), Migrations, MigrationsDir)
	require.NoError(t, err)

	postRepo := NewPost(db)
	_, err = postRepo.AddPost(context.Background(), newPost("after-second-migrate"))
	require.NoError(t, err)
}

func TestAddPostAssignsServerFields(t *testing.T) {
	postRepo := NewPost(openTestDB(t))

	stored, err := postRepo.AddPost(context.Background(), newPost("first"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Equal(t, "first", stored.Caption)
	assert.Equal(t, entity.FileTypeImage, stored.FileType)
	assert.Equal(t, "first.jpg", stored.FileName)
}

func TestAddPostKeepsProvidedID(t *testing.T) {
	postRepo := NewPost(openTestDB(t))
	id := uuid.New()
	post := newPost("with-id")
	post.ID = id

	stored, err := postRepo.AddPost(context.Background(), post)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
}

func TestAddPostIgnoresProvidedCreatedAt(t *testing.T) {
	postRepo := NewPost(openTestDB(t))
	ctx := context.Background()
	moscow := time.FixedZone("MSK", 3*60*60)

	older := newPost("older")
	older.CreatedAt = time.Date(2030, 1, 1, 13, 0, 0, 0, moscow)
	storedOlder, err := postRepo.AddPost(ctx, older)
	require.NoError(t, err)

	newer := newPost("newer")
	newer.CreatedAt = time.Date(2020, 1, 1, 11, 0, 0, 0, time.UTC)
	storedNewer, err := postRepo.AddPost(ctx, newer)
	require.NoError(t, err)

	assert.NotEqual(t, 2030, storedOlder.CreatedAt.Year())
	assert.True(t, storedNewer.CreatedAt.After(storedOlder.CreatedAt))

	posts, err := postRepo.GetPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Caption)
	assert.Equal(t, "older", posts[1].Caption)
}

func TestAddPostRejectsEmptyRequiredFields(t *testing.T) {
	postRepo := NewPost(openTestDB(t))
	post := newPost("broken")
	post.URL = ""

	_, err := postRepo.AddPost(context.Background(), post)
	require.Error(t, err)

	posts, err := postRepo.GetPosts(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetPost(t *testing.T) {
	postRepo := NewPost(openTestDB(t))
	ctx := context.Background()
	stored, err := postRepo.AddPost(ctx, newPost("lookup"))
	require.NoError(t, err)

	got, err := postRepo.GetPost(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.True(t, stored.CreatedAt.Equal(got.CreatedAt))

	_, err = postRepo.GetPost(ctx, uuid.New())
	assert.ErrorIs(t, err, repo.ErrPostNotFound)
}

func TestGetPostsNewestFirst(t *testing.T) {
	postRepo := NewPost(openTestDB(t))
	ctx := context.Background()

	var ids []uuid.UUID
	for _, caption := range []string{"one", "two", "three", "four"} {
		stored, err := postRepo.AddPost(ctx, newPost(caption))
		require.NoError(t, err)
		ids = append(ids, stored.ID)
	}

	posts, err := postRepo.GetPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, posts, 4)
	for i, post := range posts {
		assert.Equal(t, ids[len(ids)-1-i], post.ID)
	}
	for i := 1; i < len(posts); i++ {
		assert.True(t, posts[i-1].CreatedAt.After(posts[i].CreatedAt))
	}

	limited, err := postRepo.GetPosts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, ids[3], limited[0].ID)
	assert.Equal(t, ids[2], limited[1].ID)
}

func TestGetPostsEmpty(t *testing.T) {
	posts, err := NewPost(openTestDB(t)).GetPosts(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestClockIsStrictlyIncreasing(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newClock(func() time.Time { return fixed })

	first := c.Next()
	second := c.Next()
	third := c.Next()

	assert.Equal(t, fixed, first)
	assert.Equal(t, fixed.Add(time.Microsecond), second)
	assert.Equal(t, fixed.Add(2*time.Microsecond), third)
}
