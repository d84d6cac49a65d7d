package websocket_router

import (
	"github.com/collabpad/collab-notepad-service/internal/app"
	"github.com/collabpad/collab-notepad-service/internal/dto"
	pkgapp "github.com/collabpad/collab-notepad-service/pkg/app"
	"github.com/collabpad/collab-notepad-service/pkg/code"
	"github.com/collabpad/collab-notepad-service/pkg/logger"

	"go.uber.org/zap"
)

// NoteWSHandler WebSocket 笔记处理器
// 使用 App Container 注入依赖
type NoteWSHandler struct {
	*WSHandler
}

// NewNoteWSHandler 创建 NoteWSHandler 实例
func NewNoteWSHandler(a *app.App) *NoteWSHandler {
	return &NoteWSHandler{
		WSHandler: NewWSHandler(a),
	}
}

// NoteAdd 处理新建笔记
// 成功时向房间广播新笔记，存储失败只单播给发送者
func (h *NoteWSHandler) NoteAdd(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.NoteAddRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()), ActionNoteAddError)
		return
	}

	note, err := h.App.NoteService.Add(c.Context(), params.RoomID, params.ID, params.Creator)
	if err != nil {
		h.respondError(c, code.ErrorNoteAddFailed, err, "websocket_router.note.NoteAdd", ActionNoteAddError)
		return
	}

	pkgapp.BroadcastResponse(h.App.Registry.Clients(params.RoomID),
		code.Success.WithData(dto.ToNote(note)), ActionNewNote)
}

// NoteUpdate 处理笔记内容更新
// 仅当笔记存在时广播，未命中静默忽略，错误只记日志
func (h *NoteWSHandler) NoteUpdate(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.NoteUpdateRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		h.logError(c, "websocket_router.note.NoteUpdate.BindAndValid", errs)
		return
	}

	note, err := h.App.NoteService.UpdateContent(c.Context(), params.RoomID, params.NoteID, params.Content)
	if err != nil {
		h.logError(c, "websocket_router.note.NoteUpdate", err)
		return
	}
	if note == nil {
		h.logDebug(c, "websocket_router.note.NoteUpdate",
			zap.String(logger.FieldRoom, params.RoomID),
			zap.String(logger.FieldNoteID, params.NoteID),
			zap.String("reason", "note not found"))
		return
	}

	pkgapp.BroadcastResponse(h.App.Registry.Clients(params.RoomID),
		code.Success.WithData(dto.ToNote(note)), ActionNoteUpdated)
}

// NoteDelete 处理删除笔记
// 授权通过时向房间广播被删笔记的 ID，否则只单播拒绝原因给发送者
func (h *NoteWSHandler) NoteDelete(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.NoteDeleteRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()), ActionDeletionUnauthorized)
		return
	}

	result, err := h.App.NoteService.Delete(c.Context(), params.RoomID, params.NoteID, params.DeleterUsername)
	if err != nil {
		h.logError(c, "websocket_router.note.NoteDelete", err)
		c.ToResponse(code.ErrorNoteDeleteFailed.WithData(dto.DeletionUnauthorizedMessage{
			NoteID:  params.NoteID,
			Message: code.ErrorNoteDeleteFailed.Lang.GetMessage(),
		}), ActionDeletionUnauthorized)
		return
	}

	if result.NotFound {
		c.ToResponse(code.ErrorNoteNotFound.WithData(dto.DeletionUnauthorizedMessage{
			NoteID:  params.NoteID,
			Message: code.ErrorNoteNotFound.Lang.GetMessage(),
		}), ActionDeletionUnauthorized)
		return
	}
	if !result.Deleted {
		h.logInfo(c, "websocket_router.note.NoteDelete",
			zap.String(logger.FieldRoom, params.RoomID),
			zap.String(logger.FieldNoteID, params.NoteID),
			zap.String(logger.FieldUsername, params.DeleterUsername),
			zap.String("reason", "unauthorized"))
		c.ToResponse(code.ErrorNoteDeleteUnauthorized.WithData(dto.DeletionUnauthorizedMessage{
			NoteID:  params.NoteID,
			Message: code.ErrorNoteDeleteUnauthorized.Lang.GetMessage(),
		}), ActionDeletionUnauthorized)
		return
	}

	// 广播只携带被删笔记的 ID
	pkgapp.BroadcastResponse(h.App.Registry.Clients(params.RoomID),
		code.Success.WithData(result.NoteID), ActionNoteDeleted)
}

// NotesMerge 处理合并房间笔记
// 空房间静默忽略，失败只单播给发送者
func (h *NoteWSHandler) NotesMerge(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.NotesMergeRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorNotesMergeFailed.WithData(dto.MergeErrorMessage{
			Message: code.ErrorNotesMergeFailed.Lang.GetMessage(),
		}).WithDetails(errs.ErrorsToString()), ActionMergeError)
		return
	}

	merged, err := h.App.NoteService.Merge(c.Context(), params.RoomID, params.MergerUsername)
	if err != nil {
		h.logError(c, "websocket_router.note.NotesMerge", err)
		c.ToResponse(code.ErrorNotesMergeFailed.WithData(dto.MergeErrorMessage{
			Message: code.ErrorNotesMergeFailed.Lang.GetMessage(),
		}), ActionMergeError)
		return
	}
	if merged == nil {
		// 房间没有笔记，不广播也不报错
		h.logDebug(c, "websocket_router.note.NotesMerge",
			zap.String(logger.FieldRoom, params.RoomID),
			zap.String("reason", "no notes to merge"))
		return
	}

	pkgapp.BroadcastResponse(h.App.Registry.Clients(params.RoomID),
		code.Success.WithData(dto.ToNote(merged)), ActionNotesMerged)
}
