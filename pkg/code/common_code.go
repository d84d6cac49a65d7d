package code

import "net/http"

// Common codes
// 公共响应码
var (
	Success = NewSuss(200, lang{en: "Success", zh_cn: "成功"})

	ErrorServerInternal  = NewError(10000001, lang{en: "Server internal error", zh_cn: "服务内部错误"}).WithStatusCode(http.StatusInternalServerError)
	ErrorInvalidParams   = NewError(10000002, lang{en: "Invalid request parameters", zh_cn: "请求参数错误"})
	ErrorNotFoundAPI     = NewError(10000003, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorTooManyRequests = NewError(10000004, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorRequestTimeout  = NewError(10000005, lang{en: "Request timeout", zh_cn: "请求超时"})
)

// Room / note codes
// 房间与笔记响应码
var (
	ErrorRoomNotesLoadFailed    = NewError(20000001, lang{en: "Failed to load room notes.", zh_cn: "加载房间笔记失败"})
	ErrorNoteAddFailed          = NewError(20000002, lang{en: "Failed to add note.", zh_cn: "添加笔记失败"})
	ErrorNoteDeleteUnauthorized = NewError(20000003, lang{en: "You are not authorized to delete this note.", zh_cn: "你没有权限删除这条笔记"})
	ErrorNoteNotFound           = NewError(20000004, lang{en: "Note not found.", zh_cn: "笔记不存在"})
	ErrorNoteDeleteFailed       = NewError(20000005, lang{en: "Error processing deletion request.", zh_cn: "删除请求处理失败"})
	ErrorNotesMergeFailed       = NewError(20000006, lang{en: "Failed to merge notes.", zh_cn: "合并笔记失败"})
	ErrorNotesSaveFailed        = NewError(20000007, lang{en: "Failed to save notes", zh_cn: "保存笔记失败"}).WithStatusCode(http.StatusInternalServerError)
)
