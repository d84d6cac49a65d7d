package dto

// JoinRoomRequest 加入房间的请求参数
type JoinRoomRequest struct {
	RoomID   string `json:"roomId" form:"roomId" binding:"required"`
	Username string `json:"username" form:"username" binding:"required"`
}

// Participant 房间成员的线上传输结构，ID 为连接句柄
type Participant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserJoinedMessage 有成员加入时广播给房间的消息
type UserJoinedMessage struct {
	Users    []Participant `json:"users"`
	Username string        `json:"username"`
}

// DisconnectedMessage 有成员离开时广播给房间的消息
type DisconnectedMessage struct {
	Users    []Participant `json:"users"`
	Username string        `json:"username"`
}
