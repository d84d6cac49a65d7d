// Package global 持有进程级单例（日志器、验证器等）
package global

import (
	"fmt"
	"runtime"

	dumpx "github.com/gookit/goutil/dump"
	"go.uber.org/zap"
)

// Logger 进程级日志器，由 cmd 在启动时注入
// WebSocket 层等无法走依赖注入的位置直接使用
var Logger *zap.Logger

// Dump 开发期调试输出，带调用位置前缀
func Dump(a ...any) {
	if _, file, line, ok := runtime.Caller(1); ok {
		fmt.Printf("\033[32m%s:%d:\033[0m\n", file, line)
	}
	dumpx.P(a...)
}
