// Package logger provides the zap logger constructor shared by all components.
// Package logger 提供所有组件共享的 zap 日志器构造函数。
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config logger configuration
// Config 日志配置
type Config struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string
	// File 日志文件路径，为空时仅输出到 stderr
	File string
	// Production 是否启用 JSON 输出
	Production bool
}

// NewLogger creates a zap logger writing to stderr and, when configured, a log file.
// NewLogger 创建一个输出到 stderr 及可选日志文件的 zap 日志器。
func NewLogger(c Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if c.Production {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), 0754); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(c.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		// 日志文件始终使用 JSON 编码
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.Lock(f), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
