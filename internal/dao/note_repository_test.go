package dao

import (
	"context"
	"testing"

	"github.com/collabpad/collab-notepad-service/internal/domain"
	"github.com/collabpad/collab-notepad-service/internal/model"
	"github.com/collabpad/collab-notepad-service/pkg/timex"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestRepository(t *testing.T) domain.NoteRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, "Note"))

	return NewNoteRepository(New(db))
}

func TestNoteRepositoryCreateAndList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.Create(ctx, &domain.Note{ID: "n1", RoomID: "room1", Content: "hello", Creator: "conn-1"})
	require.NoError(t, err)
	err = repo.Create(ctx, &domain.Note{ID: "n2", RoomID: "room1", Content: "world", Creator: "conn-2"})
	require.NoError(t, err)
	err = repo.Create(ctx, &domain.Note{ID: "x1", RoomID: "room2", Content: "other", Creator: "conn-3"})
	require.NoError(t, err)

	notes, err := repo.ListByRoom(ctx, "room1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "n1", notes[0].ID)
	assert.Equal(t, "n2", notes[1].ID)
	assert.Equal(t, "hello", notes[0].Content)

	notes, err = repo.ListByRoom(ctx, "empty-room")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteRepositoryUpdateContent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Note{ID: "n1", RoomID: "room1", Creator: "conn-1"}))

	found, err := repo.UpdateContent(ctx, "room1", "n1", "updated")
	require.NoError(t, err)
	assert.True(t, found)

	note, err := repo.Get(ctx, "room1", "n1")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "updated", note.Content)

	// 未命中不返回错误
	found, err = repo.UpdateContent(ctx, "room1", "missing", "x")
	require.NoError(t, err)
	assert.False(t, found)

	// 房间隔离
	found, err = repo.UpdateContent(ctx, "room2", "n1", "x")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNoteRepositoryDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Note{ID: "n1", RoomID: "room1", Creator: "conn-1"}))

	found, err := repo.Delete(ctx, "room1", "n1")
	require.NoError(t, err)
	assert.True(t, found)

	note, err := repo.Get(ctx, "room1", "n1")
	require.NoError(t, err)
	assert.Nil(t, note)

	found, err = repo.Delete(ctx, "room1", "n1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNoteRepositoryContributorsRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	merged := &domain.Note{
		ID:           "m1",
		RoomID:       "room1",
		Content:      "a\n\n---\n\nb",
		Creator:      domain.MergedCreator("alice"),
		Contributors: []string{"alice"},
	}
	require.NoError(t, repo.Create(ctx, merged))

	note, err := repo.Get(ctx, "room1", "m1")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, []string{"alice"}, note.Contributors)
	assert.True(t, note.CanBeDeletedBy("alice"))
	assert.False(t, note.CanBeDeletedBy("bob"))
}

func TestNoteRepositoryReplaceAll(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Note{ID: "old1", RoomID: "room1", Creator: "conn-1"}))
	require.NoError(t, repo.Create(ctx, &domain.Note{ID: "old2", RoomID: "room1", Creator: "conn-2"}))
	require.NoError(t, repo.Create(ctx, &domain.Note{ID: "keep", RoomID: "room2", Creator: "conn-3"}))

	now := timex.Now()
	replacement := []*domain.Note{
		{ID: "new1", Content: "a", Creator: "conn-9", CreatedAt: now},
		{ID: "new2", Content: "b", Creator: "conn-9", CreatedAt: now},
	}
	require.NoError(t, repo.ReplaceAll(ctx, "room1", replacement))

	notes, err := repo.ListByRoom(ctx, "room1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "new1", notes[0].ID)
	assert.Equal(t, "new2", notes[1].ID)

	// 其他房间不受影响
	notes, err = repo.ListByRoom(ctx, "room2")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "keep", notes[0].ID)
}

func TestNoteRepositoryReplaceAllEmpty(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Note{ID: "n1", RoomID: "room1", Creator: "conn-1"}))
	require.NoError(t, repo.ReplaceAll(ctx, "room1", nil))

	notes, err := repo.ListByRoom(ctx, "room1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}
