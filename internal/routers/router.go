package routers

import (
	"time"

	"github.com/collabpad/collab-notepad-service/internal/app"
	"github.com/collabpad/collab-notepad-service/internal/middleware"
	"github.com/collabpad/collab-notepad-service/internal/routers/api_router"
	"github.com/collabpad/collab-notepad-service/internal/routers/websocket_router"
	pkgapp "github.com/collabpad/collab-notepad-service/pkg/app"
	"github.com/collabpad/collab-notepad-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/lxzan/gws"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/notes",
		FillInterval: time.Second,
		Capacity:     20,
		Quantum:      20,
	},
)

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	var wss = pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			CheckUtf8Enabled: true,
			// 同一连接的消息串行处理，保证事件间的先后顺序
			ParallelEnabled:     false,
			Recovery:            gws.Recovery,
			PermessageDeflate:   gws.PermessageDeflate{Enabled: true},
			ReadMaxPayloadSize:  1024 * 1024 * 16,
			WriteMaxPayloadSize: 1024 * 1024 * 16,
		},
	})

	// 创建 WebSocket Handlers（注入 App Container）
	roomWSHandler := websocket_router.NewRoomWSHandler(appContainer)
	noteWSHandler := websocket_router.NewNoteWSHandler(appContainer)

	// 加入房间
	wss.Use(websocket_router.ActionJoinRoom, roomWSHandler.JoinRoom)
	// 新建
	wss.Use(websocket_router.ActionAddNote, noteWSHandler.NoteAdd)
	// 更新内容
	wss.Use(websocket_router.ActionUpdateNote, noteWSHandler.NoteUpdate)
	// 删除
	wss.Use(websocket_router.ActionDeleteNote, noteWSHandler.NoteDelete)
	// 合并
	wss.Use(websocket_router.ActionMergeNotes, noteWSHandler.NotesMerge)

	// 断开时清理房间成员并广播
	wss.OnDisconnect(roomWSHandler.Disconnect)

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo())
		api.Use(middleware.TraceMiddleware(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
		api.Use(middleware.CorsWithOrigin(cfg.Server.CorsAllowOrigin))
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		noteHandler := api_router.NewNoteHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		// 实时同步通道
		api.GET("/sync", wss.Run())

		// 整体保存房间笔记
		api.POST("/notes", noteHandler.SaveNotes)

		// 服务端版本号接口
		api.GET("/version", versionHandler.ServerVersion)
	}

	r.Use(middleware.CorsWithOrigin(cfg.Server.CorsAllowOrigin))
	r.NoRoute(middleware.NoFound())

	return r
}
