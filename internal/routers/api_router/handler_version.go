package api_router

import (
	"github.com/collabpad/collab-notepad-service/internal/app"
	pkgapp "github.com/collabpad/collab-notepad-service/pkg/app"
	"github.com/collabpad/collab-notepad-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionHandler 版本信息 API 路由处理器
// 使用 App Container 注入依赖
type VersionHandler struct {
	*Handler
}

// NewVersionHandler 创建 VersionHandler 实例
func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{
		Handler: NewHandler(a),
	}
}

// ServerVersion 获取服务端版本信息
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	response.ToResponse(code.Success.WithData(h.App.Version()))
}
