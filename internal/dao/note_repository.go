package dao

import (
	"context"
	"errors"

	"github.com/collabpad/collab-notepad-service/internal/domain"
	"github.com/collabpad/collab-notepad-service/internal/model"
	"github.com/collabpad/collab-notepad-service/pkg/timex"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将 DAO Note 转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:           m.ID,
		RoomID:       m.RoomID,
		Content:      m.Content,
		Creator:      m.Creator,
		Contributors: m.Contributors,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	return &model.Note{
		ID:           note.ID,
		RoomID:       note.RoomID,
		Content:      note.Content,
		Creator:      note.Creator,
		Contributors: note.Contributors,
		CreatedAt:    note.CreatedAt,
		UpdatedAt:    note.UpdatedAt,
	}
}

// ListByRoom 返回房间内全部笔记，按创建时间与 ID 升序保证顺序稳定
func (r *noteRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Note, error) {
	var rows []*model.Note
	err := r.dao.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, r.toDomain(row))
	}
	return notes, nil
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	m := r.toModel(note)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = timex.Now()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	note.CreatedAt = m.CreatedAt
	note.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *noteRepository) Get(ctx context.Context, roomID string, noteID string) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).
		Where("room_id = ? AND id = ?", roomID, noteID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// UpdateContent 更新内容，未命中时返回 false 而非错误
func (r *noteRepository) UpdateContent(ctx context.Context, roomID string, noteID string, content string) (bool, error) {
	result := r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("room_id = ? AND id = ?", roomID, noteID).
		Updates(map[string]any{
			"content":    content,
			"updated_at": timex.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *noteRepository) Delete(ctx context.Context, roomID string, noteID string) (bool, error) {
	result := r.dao.db.WithContext(ctx).
		Where("room_id = ? AND id = ?", roomID, noteID).
		Delete(&model.Note{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *noteRepository) DeleteByRoom(ctx context.Context, roomID string) (int64, error) {
	result := r.dao.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Delete(&model.Note{})
	return result.RowsAffected, result.Error
}

// ReplaceAll 以单个事务原子替换房间内全部笔记
// 先清空再写入，事务失败时原有数据保持不变
func (r *noteRepository) ReplaceAll(ctx context.Context, roomID string, notes []*domain.Note) error {
	return r.dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		now := timex.Now()
		for _, note := range notes {
			m := r.toModel(note)
			m.RoomID = roomID
			if m.CreatedAt.IsZero() {
				m.CreatedAt = now
			}
			if m.UpdatedAt.IsZero() {
				m.UpdatedAt = now
			}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
