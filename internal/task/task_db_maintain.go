package task

import (
	"context"

	"github.com/collabpad/collab-notepad-service/internal/app"

	"go.uber.org/zap"
)

// DBMaintainTask 数据库维护任务
// 对 SQLite 定期执行统计信息更新与查询计划优化
type DBMaintainTask struct {
	app  *app.App
	spec string
}

// NewDBMaintainTask 创建数据库维护任务
func NewDBMaintainTask(a *app.App, spec string) *DBMaintainTask {
	return &DBMaintainTask{app: a, spec: spec}
}

// Name 返回任务名称
func (t *DBMaintainTask) Name() string {
	return "DBMaintain"
}

// Spec 返回 cron 表达式
func (t *DBMaintainTask) Spec() string {
	return t.spec
}

// IsStartupRun 是否立即执行一次
func (t *DBMaintainTask) IsStartupRun() bool {
	return false
}

// Run 执行维护
func (t *DBMaintainTask) Run(ctx context.Context) error {
	if t.app.Config().Database.Type != "sqlite" {
		return nil
	}

	db := t.app.DB.WithContext(ctx)
	if err := db.Exec("ANALYZE").Error; err != nil {
		return err
	}
	if err := db.Exec("PRAGMA optimize").Error; err != nil {
		return err
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.String("msg", "sqlite maintenance completed"))
	return nil
}
