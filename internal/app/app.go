// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/collabpad/collab-notepad-service/internal/dao"
	"github.com/collabpad/collab-notepad-service/internal/domain"
	"github.com/collabpad/collab-notepad-service/internal/registry"
	"github.com/collabpad/collab-notepad-service/internal/service"
	pkgapp "github.com/collabpad/collab-notepad-service/pkg/app"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// StartTime 服务启动时间
	StartTime time.Time

	// Repository 层
	NoteRepo domain.NoteRepository

	// Service 层
	NoteService service.NoteService

	// 房间成员注册表
	Registry *registry.Registry
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db,
		dao.WithLogger(logger),
		dao.WithAutoMigrate(cfg.Database.AutoMigrate),
	)

	// 初始化 Repository 层
	a.NoteRepo = dao.NewNoteRepository(a.Dao)

	// 初始化 Service 层（依赖注入）
	a.NoteService = service.NewNoteService(a.NoteRepo, logger)

	// 初始化房间成员注册表
	a.Registry = registry.New(logger)

	logger.Info("App container initialized successfully")

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Shutdown 优雅关闭应用容器
func (a *App) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- a.Close()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}
