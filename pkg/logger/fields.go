package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldConnID 连接 ID 字段
	FieldConnID = "connId"

	// FieldRoom 房间 ID 字段
	FieldRoom = "roomId"

	// FieldUsername 用户显示名字段
	FieldUsername = "username"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"
)
