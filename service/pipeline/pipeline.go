/*
 * @module service/pipeline/pipeline
 * @description 清洗管道编排器：按实体独立执行 源读取 -> 清洗 -> 整表替换发布，并持久化运行报告
 * @architecture 管道模式 - 六个实体清洗器并行执行，无共享可变状态
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 获取运行锁 -> 创建运行记录 -> 实体并行清洗 -> 汇总状态 -> 释放锁
 * @rules 实体之间相互独立，单实体失败不影响其他实体；失败实体不发布任何输出；
 *        字段缺陷只计数上报，结构缺陷/源不可用/汇不可用按实体终止并记录原因
 * @dependencies golang.org/x/sync/errgroup, gorm.io/gorm
 * @refs service/cleansing, service/source, service/sink, service/monitoring
 */

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"silver-service/client/connectors"
	"silver-service/service/cleansing"
	"silver-service/service/distributed_lock"
	"silver-service/service/meta"
	"silver-service/service/models"
	"silver-service/service/monitoring"
	"silver-service/service/sink"
	"silver-service/service/source"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	// fullRefreshLockKey 全量刷新的分布式锁键
	fullRefreshLockKey = "full_refresh"
	// lockTTL 运行锁过期时间，防止实例崩溃后死锁
	lockTTL = 30 * time.Minute
	// defaultMaxWorkers 实体并行度上限
	defaultMaxWorkers = 6
)

// ErrRunInProgress 已有一次运行正在进行
var ErrRunInProgress = errors.New("已有清洗运行正在进行中")

// 实体失败原因分类，对应缺陷分类设计
const (
	failReasonSource     = "source_unavailable"
	failReasonStructural = "structural_defect"
	failReasonSink       = "sink_unavailable"
)

// Pipeline 银层清洗管道
type Pipeline struct {
	db        *gorm.DB
	source    source.RawRecordSource
	sink      sink.CleansedSink
	cleansers map[string]cleansing.EntityCleanser
	lock      distributed_lock.DistributedLock // 可为nil，此时退化为进程内互斥
	notifier  *connectors.KafkaNotifier        // 可为nil
	metrics   *monitoring.RunMetrics

	maxWorkers int
	localMu    sync.Mutex
}

// NewPipeline 创建清洗管道
func NewPipeline(db *gorm.DB, rawSource source.RawRecordSource, cleansedSink sink.CleansedSink,
	lock distributed_lock.DistributedLock, notifier *connectors.KafkaNotifier) *Pipeline {
	return &Pipeline{
		db:         db,
		source:     rawSource,
		sink:       cleansedSink,
		cleansers:  cleansing.Registry(),
		lock:       lock,
		notifier:   notifier,
		metrics:    monitoring.Default(),
		maxWorkers: defaultMaxWorkers,
	}
}

// Run 执行一次清洗运行
// entityTypes为空时对全部六个实体执行全量刷新；返回持久化后的运行报告
func (p *Pipeline) Run(ctx context.Context, triggerType string, entityTypes []string) (*models.CleansingRun, error) {
	if len(entityTypes) == 0 {
		entityTypes = meta.AllEntityTypes()
	}
	for _, et := range entityTypes {
		if !meta.IsValidEntityType(et) {
			return nil, fmt.Errorf("未知实体类型: %s", et)
		}
	}

	release, err := p.acquireRunLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	run := &models.CleansingRun{
		Status:      models.RunStatusRunning,
		TriggerType: triggerType,
		TotalCount:  len(entityTypes),
		StartTime:   time.Now(),
	}
	if err := p.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("创建运行记录失败: %w", err)
	}

	slog.Info("清洗运行开始", "run_id", run.ID, "trigger", triggerType, "entities", entityTypes)

	results := make([]*models.EntityRunResult, len(entityTypes))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.maxWorkers)

	for i, entityType := range entityTypes {
		i, entityType := i, entityType
		group.Go(func() error {
			results[i] = p.runEntity(groupCtx, run.ID, entityType)
			return nil
		})
	}
	// 实体闭包不返回错误，Wait仅用于汇合
	_ = group.Wait()

	for _, result := range results {
		if result.Status == models.EntityRunSuccess {
			run.SuccessCount++
		} else {
			run.FailedCount++
		}
		if err := p.db.WithContext(ctx).Create(result).Error; err != nil {
			slog.Error("保存实体运行结果失败", "run_id", run.ID, "entity", result.EntityType, "error", err)
		}
	}

	endTime := time.Now()
	run.EndTime = &endTime
	run.Status = runStatus(run.SuccessCount, run.FailedCount)
	run.EntityResults = nil
	if err := p.db.WithContext(ctx).Save(run).Error; err != nil {
		slog.Error("更新运行记录失败", "run_id", run.ID, "error", err)
	}

	p.metrics.ObserveRun(run.Status)
	slog.Info("清洗运行结束", "run_id", run.ID, "status", run.Status,
		"success", run.SuccessCount, "failed", run.FailedCount,
		"duration", endTime.Sub(run.StartTime))

	for _, result := range results {
		run.EntityResults = append(run.EntityResults, *result)
	}
	return run, nil
}

// runEntity 执行单实体清洗，任何失败均不发布该实体的输出
func (p *Pipeline) runEntity(ctx context.Context, runID, entityType string) *models.EntityRunResult {
	start := time.Now()
	result := &models.EntityRunResult{
		RunID:      runID,
		EntityType: entityType,
		StartTime:  start,
	}

	rows, err := p.source.Fetch(ctx, entityType)
	if err != nil {
		return p.failEntity(result, failReasonSource, err)
	}

	cleanser := p.cleansers[entityType]
	cleansed, err := cleanser.Cleanse(rows)
	if err != nil {
		return p.failEntity(result, failReasonStructural, err)
	}

	result.RawRows = cleansed.Stats.RawRows
	result.CleansedRows = cleansed.Stats.CleansedRows
	result.DroppedRows = cleansed.Stats.DroppedRows
	result.FieldDefects = cleansed.Stats.FieldDefects

	if err := p.sink.Publish(ctx, entityType, cleansed.Records); err != nil {
		// 清洗结果随之丢弃，旧快照保持可见
		return p.failEntity(result, failReasonSink, err)
	}

	endTime := time.Now()
	result.EndTime = &endTime
	result.Status = models.EntityRunSuccess
	result.Details = models.JSONB{
		"duration_ms": endTime.Sub(start).Milliseconds(),
	}

	p.metrics.ObserveEntity(entityType, endTime.Sub(start),
		result.RawRows, result.CleansedRows, result.DroppedRows, result.FieldDefects)

	p.notifyPublished(ctx, runID, entityType, result.CleansedRows)

	return result
}

// failEntity 标记实体失败并记录原因分类
func (p *Pipeline) failEntity(result *models.EntityRunResult, reason string, err error) *models.EntityRunResult {
	if reason == failReasonStructural && !cleansing.IsStructuralDefect(err) {
		// 清洗器返回的非结构性错误同样按实体终止，原因单独分类
		reason = "cleanse_failed"
	}

	endTime := time.Now()
	result.EndTime = &endTime
	result.Status = models.EntityRunFailed
	result.ErrorMessage = err.Error()
	result.Details = models.JSONB{"fail_reason": reason}

	p.metrics.ObserveEntityFailure(result.EntityType, reason)
	slog.Error("实体清洗失败", "entity", result.EntityType, "reason", reason, "error", err)
	return result
}

// notifyPublished 发送发布完成事件，失败仅记录日志
func (p *Pipeline) notifyPublished(ctx context.Context, runID, entityType string, rows int64) {
	if p.notifier == nil || !p.notifier.Enabled() {
		return
	}
	event := connectors.PublishEvent{
		RunID:        runID,
		EntityType:   entityType,
		CleansedRows: rows,
		PublishedAt:  time.Now(),
	}
	if err := p.notifier.NotifyPublished(ctx, event); err != nil {
		slog.Warn("发送发布事件失败", "entity", entityType, "error", err)
	}
}

// acquireRunLock 获取运行锁
// 配置了Redis时使用分布式锁，否则使用进程内互斥；获取失败返回ErrRunInProgress
func (p *Pipeline) acquireRunLock(ctx context.Context) (func(), error) {
	if p.lock == nil {
		if !p.localMu.TryLock() {
			return nil, ErrRunInProgress
		}
		return p.localMu.Unlock, nil
	}

	acquired, err := p.lock.TryLock(ctx, fullRefreshLockKey, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("获取运行锁失败: %w", err)
	}
	if !acquired {
		return nil, ErrRunInProgress
	}
	return func() {
		if err := p.lock.Unlock(context.Background(), fullRefreshLockKey); err != nil {
			slog.Warn("释放运行锁失败", "error", err)
		}
	}, nil
}

// runStatus 汇总运行状态
func runStatus(success, failed int) string {
	switch {
	case failed == 0:
		return models.RunStatusSuccess
	case success == 0:
		return models.RunStatusFailed
	default:
		return models.RunStatusPartialFailed
	}
}
