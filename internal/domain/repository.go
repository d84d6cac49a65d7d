package domain

import "context"

// NoteRepository 笔记存储接口
type NoteRepository interface {
	// ListByRoom 返回房间内全部笔记，按创建时间与 ID 升序
	ListByRoom(ctx context.Context, roomID string) ([]*Note, error)
	// Create 新增一条笔记
	Create(ctx context.Context, note *Note) error
	// Get 按房间与 ID 取一条笔记，不存在返回 nil
	Get(ctx context.Context, roomID string, noteID string) (*Note, error)
	// UpdateContent 更新内容，返回是否命中
	UpdateContent(ctx context.Context, roomID string, noteID string, content string) (bool, error)
	// Delete 删除一条笔记，返回是否命中
	Delete(ctx context.Context, roomID string, noteID string) (bool, error)
	// DeleteByRoom 删除房间内全部笔记，返回删除数量
	DeleteByRoom(ctx context.Context, roomID string) (int64, error)
	// ReplaceAll 以单个事务原子替换房间内全部笔记
	ReplaceAll(ctx context.Context, roomID string, notes []*Note) error
}
