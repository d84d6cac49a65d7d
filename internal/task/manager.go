package task

import (
	"github.com/collabpad/collab-notepad-service/internal/app"
	"github.com/collabpad/collab-notepad-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, a *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       a,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	cfg := m.app.Config()

	if spec := cfg.Tasks.RoomStatsSpec; spec != "" {
		if err := m.scheduler.AddTask(NewRoomStatsTask(m.app, spec)); err != nil {
			m.logger.Warn("failed to register room stats task", zap.Error(err))
			return err
		}
	} else {
		m.logger.Info("room stats task is disabled")
	}

	if spec := cfg.Tasks.DBMaintainSpec; spec != "" {
		if err := m.scheduler.AddTask(NewDBMaintainTask(m.app, spec)); err != nil {
			m.logger.Warn("failed to register db maintain task", zap.Error(err))
			return err
		}
	} else {
		m.logger.Info("db maintain task is disabled")
	}

	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
