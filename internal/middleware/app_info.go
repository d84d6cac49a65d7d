package middleware

import (
	"github.com/collabpad/collab-notepad-service/global"
	internalApp "github.com/collabpad/collab-notepad-service/internal/app"
	"github.com/collabpad/collab-notepad-service/pkg/app"

	"github.com/gin-gonic/gin"
)

func AppInfo() gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", global.Name)
		c.Set("app_version", internalApp.Version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
