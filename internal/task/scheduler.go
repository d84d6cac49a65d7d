// Package task 提供后台定时任务调度
package task

import (
	"context"

	"github.com/collabpad/collab-notepad-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	Spec() string                  // cron 表达式，空则禁用
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器，基于 cron 表达式触发
type Scheduler struct {
	logger *zap.Logger
	cron   *cron.Cron
	tasks  []Task
	sc     *safe_close.SafeClose
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{
		logger: logger,
		cron:   cron.New(),
		tasks:  make([]Task, 0),
		sc:     sc,
	}
}

// AddTask 添加任务，表达式无效时返回错误
func (s *Scheduler) AddTask(task Task) error {
	_, err := s.cron.AddFunc(task.Spec(), func() {
		s.runTask(task, false)
	})
	if err != nil {
		return err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

// Start 启动所有任务，并挂接到关闭信号
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting ", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		if task.IsStartupRun() {
			go s.runTask(task, true)
		}
	}

	s.cron.Start()

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		ctx := s.cron.Stop()
		// 等待进行中的任务结束
		<-ctx.Done()
		s.logger.Info("tasks stopped", zap.Int("count", len(s.tasks)))
	})
}

func (s *Scheduler) runTask(task Task, startupRun bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task run panic",
				zap.String("name", task.Name()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	s.logger.Info("task running", zap.String("name", task.Name()), zap.Bool("startupRun", startupRun))
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.Bool("startupRun", startupRun),
			zap.Error(err))
	}
}
