package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/collabpad/collab-notepad-service/internal/domain"
	"github.com/collabpad/collab-notepad-service/internal/dto"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memNoteRepository 内存实现，保持插入顺序
type memNoteRepository struct {
	mu    sync.Mutex
	notes []*domain.Note
	fail  error // 非 nil 时所有写操作返回该错误
}

func newMemNoteRepository() *memNoteRepository {
	return &memNoteRepository{}
}

func (m *memNoteRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Note
	for _, n := range m.notes {
		if n.RoomID == roomID {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	copied := *note
	m.notes = append(m.notes, &copied)
	return nil
}

func (m *memNoteRepository) Get(ctx context.Context, roomID string, noteID string) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notes {
		if n.RoomID == roomID && n.ID == noteID {
			copied := *n
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memNoteRepository) UpdateContent(ctx context.Context, roomID string, noteID string, content string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	for _, n := range m.notes {
		if n.RoomID == roomID && n.ID == noteID {
			n.Content = content
			return true, nil
		}
	}
	return false, nil
}

func (m *memNoteRepository) Delete(ctx context.Context, roomID string, noteID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	for i, n := range m.notes {
		if n.RoomID == roomID && n.ID == noteID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memNoteRepository) DeleteByRoom(ctx context.Context, roomID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.Note
	var removed int64
	for _, n := range m.notes {
		if n.RoomID == roomID {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	m.notes = kept
	return removed, nil
}

func (m *memNoteRepository) ReplaceAll(ctx context.Context, roomID string, notes []*domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	var kept []*domain.Note
	for _, n := range m.notes {
		if n.RoomID != roomID {
			kept = append(kept, n)
		}
	}
	for _, n := range notes {
		copied := *n
		copied.RoomID = roomID
		kept = append(kept, &copied)
	}
	m.notes = kept
	return nil
}

func TestAddCreatesEmptyNote(t *testing.T) {
	repo := newMemNoteRepository()
	svc := NewNoteService(repo, nil)
	ctx := context.Background()

	note, err := svc.Add(ctx, "room1", "n1", "conn-1")
	require.NoError(t, err)
	assert.Equal(t, "n1", note.ID)
	assert.Equal(t, "", note.Content)
	assert.Equal(t, "conn-1", note.Creator)

	notes, err := svc.ListByRoom(ctx, "room1")
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestAddStoreFailure(t *testing.T) {
	repo := newMemNoteRepository()
	repo.fail = errors.New("store down")
	svc := NewNoteService(repo, nil)

	note, err := svc.Add(context.Background(), "room1", "n1", "conn-1")
	assert.Error(t, err)
	assert.Nil(t, note)
}

func TestUpdateContentMissingIsNoOp(t *testing.T) {
	repo := newMemNoteRepository()
	svc := NewNoteService(repo, nil)
	ctx := context.Background()

	note, err := svc.UpdateContent(ctx, "room1", "missing", "hello")
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestUpdateContentExisting(t *testing.T) {
	repo := newMemNoteRepository()
	svc := NewNoteService(repo, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "room1", "n1", "conn-1")
	require.NoError(t, err)

	note, err := svc.UpdateContent(ctx, "room1", "n1", "hello")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "hello", note.Content)
	assert.Equal(t, "conn-1", note.Creator)
}

func TestDeleteAuthorization(t *testing.T) {
	repo := newMemNoteRepository()
	svc := NewNoteService(repo, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "room1", "n1", "alice")
	require.NoError(t, err)

	// 非创建者被拒绝，笔记保留
	res, err := svc.Delete(ctx, "room1", "n1", "bob")
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.False(t, res.Authorized)
	assert.False(t, res.NotFound)

	notes, _ := svc.ListByRoom(ctx, "room1")
	assert.Len(t, notes, 1)

	// 创建者可以删除
	res, err = svc.Delete(ctx, "room1", "n1", "alice")
	require.NoError(t, err)
	assert.True(t, res.Deleted)

	// 再次删除提示不存在
	res, err = svc.Delete(ctx, "room1", "n1", "alice")
	require.NoError(t, err)
	assert.True(t, res.NotFound)
}

func TestDeleteMergedNoteByContributor(t *testing.T) {
	repo := newMemNoteRepository()
	svc := NewNoteService(repo, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "room1", "n1", "alice")
	require.NoError(t, err)

	merged, err := svc.Merge(ctx, "room1", "carol")
	require.NoError(t, err)
	require.NotNil(t, merged)

	// 合并者可删除合并笔记
	res, err := svc.Delete(ctx, "room1", merged.ID, "carol")
	require.NoError(t, err)
	assert.True(t, res.Deleted)

	// 名字是合并署名子串的用户不被授权
	merged2, err := svc.Merge(ctx, "room1", "carol")
	require.NoError(t, err)
	res, err = svc.Delete(ctx, "room1", merged2.ID, "car")
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.False(t, res.Authorized)
}

func TestMergeEmptyRoom(t *testing.T) {
	repo := newMemNoteRepository()
	svc := NewNoteService(repo, nil)

	note, err := svc.Merge(context.Background(), "empty", "alice")
	require.NoError(t, err)
	assert.Nil(t, note)

	notes, _ := svc.ListByRoom(context.Background(), "empty")
	assert.Empty(t, notes)
}

func TestMergeConcatenatesInStoreOrder(t *testing.T) {
	repo := newMemNoteRepository()
	svc := NewNoteService(repo, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "room1", "n1", "x")
	require.NoError(t, err)
	_, err = svc.UpdateContent(ctx, "room1", "n1", "a")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "room1", "n2", "y")
	require.NoError(t, err)
	_, err = svc.UpdateContent(ctx, "room1", "n2", "b")
	require.NoError(t, err)

	merged, err := svc.Merge(ctx, "room1", "zed")
	require.NoError(t, err)
	require.NotNil(t, merged)
	assert.Equal(t, "a\n\n---\n\nb", merged.Content)
	assert.Equal(t, "Merged by: zed", merged.Creator)
	assert.Equal(t, []string{"zed"}, merged.Contributors)

	// 原有笔记保留，合并笔记追加
	notes, _ := svc.ListByRoom(ctx, "room1")
	assert.Len(t, notes, 3)
}

func TestReplaceAllReturnsCanonicalList(t *testing.T) {
	repo := newMemNoteRepository()
	svc := NewNoteService(repo, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "room1", "old", "x")
	require.NoError(t, err)

	saved, err := svc.ReplaceAll(ctx, "room1", []*domain.Note{
		{ID: "n1", Content: "a", Creator: "alice"},
		{ID: "n2", Content: "b", Creator: "bob"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)

	ids := []string{saved[0].ID, saved[1].ID}
	sort.Strings(ids)
	assert.Equal(t, []string{"n1", "n2"}, ids)
}

func TestReplaceAllKeepsMergeDeleteRights(t *testing.T) {
	repo := newMemNoteRepository()
	svc := NewNoteService(repo, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "room1", "n1", "alice")
	require.NoError(t, err)
	_, err = svc.UpdateContent(ctx, "room1", "n1", "hello")
	require.NoError(t, err)

	merged, err := svc.Merge(ctx, "room1", "zed")
	require.NoError(t, err)
	require.NotNil(t, merged)

	// 模拟客户端整体保存：经传输结构 JSON 往返后回写
	all, err := svc.ListByRoom(ctx, "room1")
	require.NoError(t, err)

	body, err := json.Marshal(dto.ToNotes(all))
	require.NoError(t, err)
	var wire []dto.Note
	require.NoError(t, json.Unmarshal(body, &wire))

	saved, err := svc.ReplaceAll(ctx, "room1", dto.ToDomainNotes("room1", wire))
	require.NoError(t, err)
	require.Len(t, saved, 2)

	// 合并者名单在保存往返后保留，合并者仍可删除合并笔记
	for _, n := range saved {
		if n.ID == merged.ID {
			assert.Equal(t, []string{"zed"}, n.Contributors)
		}
	}
	res, err := svc.Delete(ctx, "room1", merged.ID, "zed")
	require.NoError(t, err)
	assert.True(t, res.Deleted)
}

// 合并 N 条笔记：内容恰为 N 段以分隔符连接，且任何输入内容不丢失
func TestMergeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	contentGen := gen.SliceOf(gen.RegexMatch("[a-z0-9 ]{0,12}")).
		SuchThat(func(contents []string) bool {
			for _, c := range contents {
				if strings.Contains(c, domain.MergeDelimiter) {
					return false
				}
			}
			return true
		})

	properties.Property("merged content joins all notes in order", prop.ForAll(
		func(contents []string) bool {
			repo := newMemNoteRepository()
			svc := NewNoteService(repo, nil)
			ctx := context.Background()

			for i, c := range contents {
				id := "n" + string(rune('a'+i%26)) + "-" + string(rune('0'+i/26))
				if _, err := svc.Add(ctx, "room", id, "u"); err != nil {
					return false
				}
				if _, err := svc.UpdateContent(ctx, "room", id, c); err != nil {
					return false
				}
			}

			merged, err := svc.Merge(ctx, "room", "m")
			if err != nil {
				return false
			}
			if len(contents) == 0 {
				return merged == nil
			}
			return merged.Content == strings.Join(contents, domain.MergeDelimiter)
		},
		contentGen,
	))

	properties.TestingRun(t)
}
