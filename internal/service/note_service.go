// Package service 实现业务逻辑层
package service

import (
	"context"

	"github.com/collabpad/collab-notepad-service/internal/domain"
	"github.com/collabpad/collab-notepad-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoteService 笔记业务接口
type NoteService interface {
	// ListByRoom 返回房间内全部笔记
	ListByRoom(ctx context.Context, roomID string) ([]*domain.Note, error)
	// Add 新建一条空内容笔记
	Add(ctx context.Context, roomID string, noteID string, creator string) (*domain.Note, error)
	// UpdateContent 更新笔记内容，未命中时返回 (nil, nil)
	UpdateContent(ctx context.Context, roomID string, noteID string, content string) (*domain.Note, error)
	// Delete 删除笔记，返回授权决定
	Delete(ctx context.Context, roomID string, noteID string, deleter string) (*DeleteResult, error)
	// Merge 合并房间内全部笔记为一条新笔记，房间为空时返回 (nil, nil)
	Merge(ctx context.Context, roomID string, merger string) (*domain.Note, error)
	// ReplaceAll 原子替换房间内全部笔记
	ReplaceAll(ctx context.Context, roomID string, notes []*domain.Note) ([]*domain.Note, error)
}

// DeleteResult 删除操作的结果
type DeleteResult struct {
	Deleted    bool
	NotFound   bool
	Authorized bool
	NoteID     string
}

type noteService struct {
	repo   domain.NoteRepository
	logger *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(repo domain.NoteRepository, lg *zap.Logger) NoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &noteService{repo: repo, logger: lg}
}

func (s *noteService) ListByRoom(ctx context.Context, roomID string) ([]*domain.Note, error) {
	return s.repo.ListByRoom(ctx, roomID)
}

func (s *noteService) Add(ctx context.Context, roomID string, noteID string, creator string) (*domain.Note, error) {
	note := &domain.Note{
		ID:      noteID,
		RoomID:  roomID,
		Content: "",
		Creator: creator,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	s.logger.Info("note added",
		zap.String(logger.FieldRoom, roomID),
		zap.String(logger.FieldNoteID, noteID))
	return note, nil
}

func (s *noteService) UpdateContent(ctx context.Context, roomID string, noteID string, content string) (*domain.Note, error) {
	found, err := s.repo.UpdateContent(ctx, roomID, noteID, content)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return s.repo.Get(ctx, roomID, noteID)
}

func (s *noteService) Delete(ctx context.Context, roomID string, noteID string, deleter string) (*DeleteResult, error) {
	note, err := s.repo.Get(ctx, roomID, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return &DeleteResult{NotFound: true, NoteID: noteID}, nil
	}
	if !note.CanBeDeletedBy(deleter) {
		return &DeleteResult{Authorized: false, NoteID: noteID}, nil
	}

	deleted, err := s.repo.Delete(ctx, roomID, noteID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		// 授权检查和删除之间被并发删除
		return &DeleteResult{NotFound: true, NoteID: noteID}, nil
	}
	s.logger.Info("note deleted",
		zap.String(logger.FieldRoom, roomID),
		zap.String(logger.FieldNoteID, noteID),
		zap.String(logger.FieldUsername, deleter))
	return &DeleteResult{Deleted: true, Authorized: true, NoteID: noteID}, nil
}

// Merge 取房间全部笔记，按存储顺序拼接内容，生成一条归属于合并者的新笔记
// 合并者记入 Contributors，作为后续删除授权依据
func (s *noteService) Merge(ctx context.Context, roomID string, merger string) (*domain.Note, error) {
	notes, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}

	merged := &domain.Note{
		ID:           uuid.NewString(),
		RoomID:       roomID,
		Content:      domain.MergeContents(notes),
		Creator:      domain.MergedCreator(merger),
		Contributors: []string{merger},
	}
	if err := s.repo.Create(ctx, merged); err != nil {
		return nil, err
	}
	s.logger.Info("notes merged",
		zap.String(logger.FieldRoom, roomID),
		zap.String(logger.FieldUsername, merger),
		zap.Int(logger.FieldCount, len(notes)))
	return merged, nil
}

func (s *noteService) ReplaceAll(ctx context.Context, roomID string, notes []*domain.Note) ([]*domain.Note, error) {
	if err := s.repo.ReplaceAll(ctx, roomID, notes); err != nil {
		return nil, err
	}
	s.logger.Info("room notes replaced",
		zap.String(logger.FieldRoom, roomID),
		zap.Int(logger.FieldCount, len(notes)))
	return s.repo.ListByRoom(ctx, roomID)
}
