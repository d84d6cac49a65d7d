package websocket_router

import (
	"github.com/collabpad/collab-notepad-service/internal/app"
	"github.com/collabpad/collab-notepad-service/internal/domain"
	"github.com/collabpad/collab-notepad-service/internal/dto"
	"github.com/collabpad/collab-notepad-service/internal/registry"
	pkgapp "github.com/collabpad/collab-notepad-service/pkg/app"
	"github.com/collabpad/collab-notepad-service/pkg/code"
	"github.com/collabpad/collab-notepad-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RoomWSHandler WebSocket 房间处理器
// 使用 App Container 注入依赖
type RoomWSHandler struct {
	*WSHandler
	sf singleflight.Group // 合并同房间的并发笔记加载
}

// NewRoomWSHandler 创建 RoomWSHandler 实例
func NewRoomWSHandler(a *app.App) *RoomWSHandler {
	return &RoomWSHandler{
		WSHandler: NewWSHandler(a),
	}
}

// JoinRoom 处理客户端加入房间
// 注册成员后向发送者单播全量笔记，向房间广播更新后的成员列表
func (h *RoomWSHandler) JoinRoom(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.JoinRoomRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()), ActionRoomNotes)
		return
	}

	c.Username = params.Username

	participants := h.App.Registry.Join(params.RoomID, &registry.Participant{
		ID:       c.ID,
		Username: params.Username,
		Client:   c,
	})

	h.logInfo(c, "websocket_router.room.JoinRoom",
		zap.String(logger.FieldRoom, params.RoomID),
		zap.String(logger.FieldUsername, params.Username),
		zap.Int(logger.FieldCount, len(participants)))

	// 成员列表先于笔记加载广播，笔记加载失败不影响加入
	pkgapp.BroadcastResponse(h.App.Registry.Clients(params.RoomID),
		code.Success.WithData(dto.UserJoinedMessage{
			Users:    toParticipants(participants),
			Username: params.Username,
		}), ActionUserJoined)

	// 并发加入同一房间时合并一次笔记读取
	v, err, _ := h.sf.Do("room-notes:"+params.RoomID, func() (any, error) {
		return h.App.NoteService.ListByRoom(c.Context(), params.RoomID)
	})
	if err != nil {
		h.respondError(c, code.ErrorRoomNotesLoadFailed, err, "websocket_router.room.JoinRoom.ListByRoom", ActionRoomNotes)
		return
	}

	notes := v.([]*domain.Note)
	c.ToResponse(code.Success.WithData(dto.ToNotes(notes)), ActionRoomNotes)
}

// Disconnect 连接关闭后清理其房间成员身份
// 向每个受影响的房间广播剩余成员列表
func (h *RoomWSHandler) Disconnect(c *pkgapp.WebsocketClient) {
	departures := h.App.Registry.Leave(c.ID)

	for _, d := range departures {
		h.logInfo(c, "websocket_router.room.Disconnect",
			zap.String(logger.FieldRoom, d.RoomID),
			zap.String(logger.FieldUsername, d.Username),
			zap.Int(logger.FieldCount, len(d.Participants)))

		pkgapp.BroadcastResponse(h.App.Registry.Clients(d.RoomID),
			code.Success.WithData(dto.DisconnectedMessage{
				Users:    toParticipants(d.Participants),
				Username: d.Username,
			}), ActionDisconnected)
	}
}

func toParticipants(participants []*registry.Participant) []dto.Participant {
	out := make([]dto.Participant, 0, len(participants))
	for _, p := range participants {
		out = append(out, dto.Participant{
			ID:       p.ID,
			Username: p.Username,
		})
	}
	return out
}
