package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/collabpad/collab-notepad-service/global"
	"github.com/collabpad/collab-notepad-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lxzan/gws"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

type LogType string

const (
	WebSocketServerPingInterval         = 25
	WebSocketServerPingWait             = 40
	LogInfo                     LogType = "info"
	LogError                    LogType = "error"
	LogWarn                     LogType = "warn"
)

var (
	wsConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notepad_ws_connections",
		Help: "Current number of open websocket connections.",
	})
	wsEventTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notepad_ws_events_total",
		Help: "Total websocket events dispatched by action.",
	}, []string{"action"})
)

func log(t LogType, msg string, fields ...zap.Field) {

	if t == "error" {
		global.Logger.Error(msg, fields...)
	} else if t == "warn" {
		global.Logger.Warn(msg, fields...)
	} else if t == "info" {
		global.Logger.Info(msg, fields...)
	}
}

// WebSocketMessage "action|{json}" 拆分后的消息
type WebSocketMessage struct {
	Action string `json:"action"` // 操作类型，例如 "join-room", "add-note", "delete-note"
	Data   []byte `json:"data"`   // 分隔符之后的 JSON 负载
}

// ParseWebSocketMessage splits a raw text frame into action and payload.
// Frames without the "|" separator are rejected.
func ParseWebSocketMessage(raw string) (*WebSocketMessage, bool) {
	index := strings.Index(raw, "|")
	if index == -1 {
		return nil, false
	}
	return &WebSocketMessage{
		Action: raw[:index],
		Data:   []byte(raw[index+1:]),
	}, true
}

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
}

// WebsocketClient 结构体来存储每个 WebSocket 连接及其相关状态
// ID 为连接句柄，连接建立时生成，作为成员去重与笔记归属的标识
// gin 会在升级完成后回收请求对象，需要的请求状态都在此时拷贝一份
type WebsocketClient struct {
	conn     *gws.Conn
	done     chan struct{}
	ctx      context.Context
	trans    ut.Translator
	ID       string
	TraceID  string
	Username string
}

// Context 返回连接生命周期使用的 context
// 升级完成后 HTTP 请求的 context 会被取消，这里持有一个不随其取消的副本
func (c *WebsocketClient) Context() context.Context {
	return c.ctx
}

// 基于全局验证器的 WebSocket 版本参数绑定和验证工具函数
func (c *WebsocketClient) BindAndValid(data []byte, obj any) (bool, ValidErrors) {
	var errs ValidErrors

	if err := json.Unmarshal(data, obj); err != nil {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: "Invalid message format",
		})
		return false, errs
	}

	if err := global.Validator.Validate.Struct(obj); err != nil {

		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, validationErr := range validationErrors {
				message := validationErr.Error()
				if c.trans != nil {
					message = validationErr.Translate(c.trans)
				}
				errs = append(errs, &ValidError{
					Key:     validationErr.Field(),
					Message: message,
				})
			}
		} else {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
		}
		return false, errs
	}
	return true, nil
}

// 定期发送 Ping 消息
func (c *WebsocketClient) PingLoop(PingInterval time.Duration) {
	ticker := time.NewTicker(PingInterval * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			log(LogInfo, "WebsocketServer Client Close Ping")
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				log(LogError, "WebsocketServer Client Ping err ", zap.Error(err))
				return
			}
		}
	}
}

// ToResponse 将结果编码为 "action|{json}" 帧并单播给客户端
func (c *WebsocketClient) ToResponse(codeObj *code.Code, action ...string) {

	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}
	c.message(encodeFrame(actionType, content))
}

func (c *WebsocketClient) message(payload []byte) {
	_ = c.conn.WriteMessage(gws.OpcodeText, payload)
}

// BroadcastResponse 将结果广播给一组客户端（通常为同房间成员）
// 广播包含发送者自身，成员列表由调用方提供
func BroadcastResponse(clients []*WebsocketClient, codeObj *code.Code, action string) {

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	payload := encodeFrame(action, content)
	b := gws.NewBroadcaster(gws.OpcodeText, payload)
	defer b.Close()

	for _, uc := range clients {
		if uc.conn == nil {
			continue
		}
		_ = b.Broadcast(uc.conn)
	}
}

func encodeFrame(actionType string, content any) []byte {
	responseBytes, _ := json.Marshal(content)
	if actionType != "" {
		responseBytes = []byte(fmt.Sprintf(`%s|%s`, actionType, string(responseBytes)))
	}
	return responseBytes
}

// ------------------------------------> WebsocketServer

type ConnStorage = map[*gws.Conn]*WebsocketClient

type WebsocketServer struct {
	handlers     map[string]func(*WebsocketClient, *WebSocketMessage)
	closeHandler func(*WebsocketClient)
	clients      ConnStorage
	mu           sync.Mutex
	up           *gws.Upgrader
	config       *WebsocketServerConfig
}

func NewWebsocketServer(c WebsocketServerConfig) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	wss := WebsocketServer{
		handlers: make(map[string]func(*WebsocketClient, *WebSocketMessage)),
		clients:  make(ConnStorage),
		config:   &c,
	}
	return &wss
}

func (w *WebsocketServer) Upgrade() {
	w.up = gws.NewUpgrader(w, &w.config.GWSOption)
}

func (w *WebsocketServer) Run() gin.HandlerFunc {

	return func(c *gin.Context) {

		w.Upgrade()
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			log(LogError, "WebsocketServer Start err", zap.Error(err))
			return
		}
		client := &WebsocketClient{
			conn:    socket,
			done:    make(chan struct{}),
			ctx:     context.WithoutCancel(c.Request.Context()),
			ID:      uuid.NewString(),
			TraceID: c.GetString("trace_id"),
		}
		if trans, ok := c.Value("trans").(ut.Translator); ok {
			client.trans = trans
		}
		w.AddClient(client)
		log(LogInfo, "WebsocketServer Start", zap.String("type", "ReadLoop"), zap.String("connId", client.ID))
		go socket.ReadLoop()
		go client.PingLoop(w.config.PingInterval)
	}
}

// Use 注册消息处理器
func (w *WebsocketServer) Use(action string, handler func(*WebsocketClient, *WebSocketMessage)) {
	w.handlers[action] = handler
}

// OnDisconnect 注册断开处理器，在连接移除后调用
func (w *WebsocketServer) OnDisconnect(handler func(*WebsocketClient)) {
	w.closeHandler = handler
}

func (w *WebsocketServer) GetClient(conn *gws.Conn) *WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clients[conn]
}

func (w *WebsocketServer) AddClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
	wsConnections.Set(float64(len(w.clients)))
}

func (w *WebsocketServer) RemoveClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, conn)
	wsConnections.Set(float64(len(w.clients)))
}

// ClientCount 当前连接数
func (w *WebsocketServer) ClientCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	log(LogInfo, "WebsocketServer Client Connect", zap.Int("Count", w.ClientCount()))
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {

	c := w.GetClient(conn)
	if c == nil {
		return
	}

	w.RemoveClient(conn)
	close(c.done)

	if w.closeHandler != nil {
		w.closeHandler(c)
	}

	log(LogInfo, "WebsocketServer Client Leave", zap.String("connId", c.ID), zap.Int("Count", w.ClientCount()))
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	if message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
		return
	}

	c := w.GetClient(conn)
	if c == nil {
		return
	}

	msg, ok := ParseWebSocketMessage(message.Data.String())
	if !ok {
		log(LogError, "WebsocketServer OnMessage", zap.String("type", "Illegal message type"), zap.String("connId", c.ID))
		return
	}

	handler, exists := w.handlers[msg.Action]
	if exists {
		log(LogInfo, "WebsocketServer OnMessage", zap.String("Action", msg.Action), zap.String("connId", c.ID))
		wsEventTotal.WithLabelValues(msg.Action).Inc()
		handler(c, msg)
	} else {
		log(LogError, "WebsocketServer OnMessage", zap.String("msg", "Unknown message type"), zap.String("Action", msg.Action))
	}
}
