package websocket_router

// 客户端到服务端的事件
const (
	ActionJoinRoom   = "join-room"
	ActionAddNote    = "add-note"
	ActionUpdateNote = "update-note"
	ActionDeleteNote = "delete-note"
	ActionMergeNotes = "merge-notes"
)

// 服务端到客户端的事件
const (
	ActionRoomNotes            = "room-notes"
	ActionUserJoined           = "user-joined"
	ActionNewNote              = "new-note"
	ActionNoteAddError         = "note-add-error"
	ActionNoteUpdated          = "note-updated"
	ActionNoteDeleted          = "note-deleted"
	ActionDeletionUnauthorized = "deletion-unauthorized"
	ActionNotesMerged          = "notes-merged"
	ActionMergeError           = "merge-error"
	ActionDisconnected         = "disconnected"
)
