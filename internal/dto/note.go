// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/collabpad/collab-notepad-service/internal/domain"
	"github.com/collabpad/collab-notepad-service/pkg/convert"
)

// NoteAddRequest 新建空笔记的请求参数
type NoteAddRequest struct {
	RoomID  string `json:"roomId" form:"roomId" binding:"required"`
	ID      string `json:"id" form:"id" binding:"required"`
	Creator string `json:"creator" form:"creator" binding:"required"`
}

// NoteUpdateRequest 修改笔记内容的请求参数
type NoteUpdateRequest struct {
	RoomID  string `json:"roomId" form:"roomId" binding:"required"`
	NoteID  string `json:"noteId" form:"noteId" binding:"required"`
	Content string `json:"content" form:"content"`
}

// NoteDeleteRequest 删除笔记所需参数
type NoteDeleteRequest struct {
	RoomID          string `json:"roomId" form:"roomId" binding:"required"`
	NoteID          string `json:"noteId" form:"noteId" binding:"required"`
	DeleterUsername string `json:"deleterUsername" form:"deleterUsername" binding:"required"`
}

// NotesMergeRequest 合并房间笔记的请求参数
type NotesMergeRequest struct {
	RoomID         string `json:"roomId" form:"roomId" binding:"required"`
	MergerUsername string `json:"mergerUsername" form:"mergerUsername" binding:"required"`
}

// NotesSaveRequest 整体保存房间笔记的请求体
type NotesSaveRequest struct {
	RoomID string `json:"roomId" form:"roomId" binding:"required"`
	Notes  []Note `json:"notes" form:"notes"`
}

// Note 笔记的线上传输结构
// Contributors 承载合并产物的删除授权名单，保存回写时必须原样带回
type Note struct {
	ID           string   `json:"id" binding:"required"`
	Content      string   `json:"content"`
	Creator      string   `json:"creator" binding:"required"`
	Contributors []string `json:"contributors,omitempty"`
}

// DeletionUnauthorizedMessage 删除被拒绝时单播给发送者的消息
type DeletionUnauthorizedMessage struct {
	NoteID  string `json:"noteId"`
	Message string `json:"message"`
}

// MergeErrorMessage 合并失败时单播给发送者的消息
type MergeErrorMessage struct {
	Message string `json:"message"`
}

// ToNote 将领域模型转换为传输结构
func ToNote(n *domain.Note) Note {
	var out Note
	convert.StructAssign(n, &out)
	return out
}

// ToNotes 批量转换
func ToNotes(notes []*domain.Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, ToNote(n))
	}
	return out
}

// ToDomainNotes 将传输结构转换为领域模型
func ToDomainNotes(roomID string, notes []Note) []*domain.Note {
	out := make([]*domain.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, &domain.Note{
			ID:           n.ID,
			RoomID:       roomID,
			Content:      n.Content,
			Creator:      n.Creator,
			Contributors: n.Contributors,
		})
	}
	return out
}
