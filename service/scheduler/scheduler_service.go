/**
 * @module SchedulerService
 * @description 清洗调度器服务，负责按Cron表达式定时触发银层全量刷新
 * @architecture 基于Go协程和cron库的调度器模式
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 启动 -> 到达调度点 -> 触发全量刷新 -> 记录结果
 * @rules 支持秒级Cron表达式；未配置CLEANSING_CRON时调度器不注册任务，仅保留手动触发
 * @dependencies github.com/robfig/cron/v3
 * @refs service/pipeline/pipeline.go
 */

package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"silver-service/service/pipeline"

	"github.com/robfig/cron/v3"
)

// 单次调度运行的超时上限
const scheduledRunTimeout = 30 * time.Minute

// SchedulerService 清洗调度器服务
type SchedulerService struct {
	pipeline *pipeline.Pipeline
	cron     *cron.Cron
	spec     string
}

// NewSchedulerService 创建调度器服务
// 调度表达式取自CLEANSING_CRON环境变量（带秒字段），为空时调度器为空转状态
func NewSchedulerService(p *pipeline.Pipeline) *SchedulerService {
	return &SchedulerService{
		pipeline: p,
		cron:     cron.New(cron.WithSeconds()),
		spec:     os.Getenv("CLEANSING_CRON"),
	}
}

// Start 启动调度器
func (s *SchedulerService) Start() error {
	if s.spec == "" {
		slog.Info("未配置CLEANSING_CRON，定时清洗未启用")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, s.runScheduled)
	if err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("清洗调度器已启动", "cron", s.spec)
	return nil
}

// Stop 停止调度器，等待在途任务结束
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("清洗调度器已停止")
}

// runScheduled 执行一次定时全量刷新
func (s *SchedulerService) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledRunTimeout)
	defer cancel()

	run, err := s.pipeline.Run(ctx, "scheduled", nil)
	if err != nil {
		if errors.Is(err, pipeline.ErrRunInProgress) {
			slog.Warn("定时清洗跳过：已有运行在进行中")
			return
		}
		slog.Error("定时清洗触发失败", "error", err)
		return
	}

	slog.Info("定时清洗完成", "run_id", run.ID, "status", run.Status)
}
