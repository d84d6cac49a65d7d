package code

import (
	"fmt"
	"net/http"
)

// Code is the unified response code carried by every HTTP and WebSocket reply.
// Code 是所有 HTTP 和 WebSocket 响应携带的统一响应码。
type Code struct {
	// 状态码
	code int
	// HTTP 状态码
	statusCode int
	// 状态
	status bool
	// 消息
	Lang lang
	// 数据
	data interface{}
	// 是否含有Data
	haveData bool
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers an error code. Duplicate codes panic at init time.
// NewError 注册一个错误码，重复注册会在初始化阶段 panic。
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, statusCode: http.StatusOK, status: false, Lang: l}
}

var sussCodes = map[int]string{}

// NewSuss registers a success code.
// NewSuss 注册一个成功码。
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, statusCode: http.StatusOK, status: true, Lang: l}
}

// Clone 创建一个新的 Code 副本
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		statusCode: e.statusCode,
		status:     e.status,
		Lang:       e.Lang,
	}
}

// 注册的响应码在并发请求间共享，携带负载前必须先复制
func (e *Code) copy() *Code {
	c := *e
	c.details = append([]string(nil), e.details...)
	return &c
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

// WithData returns a copy carrying the payload; the registered code stays untouched.
// WithData 返回携带数据的副本，已注册的响应码本身不变。
func (e *Code) WithData(data interface{}) *Code {
	c := e.copy()
	c.haveData = true
	c.data = data
	return c
}

// WithDetails returns a copy carrying the details; the registered code stays untouched.
// WithDetails 返回携带详情的副本，已注册的响应码本身不变。
func (e *Code) WithDetails(details ...string) *Code {
	c := e.copy()
	c.haveDetails = true
	c.details = append([]string(nil), details...)
	return c
}

// WithStatusCode overrides the HTTP status code for REST responses.
// WithStatusCode 覆盖 REST 响应使用的 HTTP 状态码。
func (e *Code) WithStatusCode(statusCode int) *Code {
	c := e.copy()
	c.statusCode = statusCode
	return c
}

func (e *Code) StatusCode() int {
	if e.statusCode == 0 {
		return http.StatusOK
	}
	return e.statusCode
}
