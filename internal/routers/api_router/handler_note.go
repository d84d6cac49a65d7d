package api_router

import (
	"github.com/collabpad/collab-notepad-service/internal/app"
	"github.com/collabpad/collab-notepad-service/internal/dto"
	pkgapp "github.com/collabpad/collab-notepad-service/pkg/app"
	"github.com/collabpad/collab-notepad-service/pkg/code"
	"github.com/collabpad/collab-notepad-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// SaveNotes 整体保存房间笔记
// 原子替换房间内全部笔记，返回保存后的规范化列表
func (h *NoteHandler) SaveNotes(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NotesSaveRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	saved, err := h.App.NoteService.ReplaceAll(c.Request.Context(), params.RoomID, dto.ToDomainNotes(params.RoomID, params.Notes))
	if err != nil {
		h.App.Logger().Error("api_router.note.SaveNotes",
			zap.Error(err),
			zap.String(logger.FieldRoom, params.RoomID),
			zap.Int(logger.FieldCount, len(params.Notes)))
		response.ToResponse(code.ErrorNotesSaveFailed.WithDetails(err.Error()))
		return
	}

	response.ToResponse(code.Success.WithData(dto.ToNotes(saved)))
}
