/*
 * @module service/monitoring/metrics_collector
 * @description 清洗运行指标收集器，暴露运行次数、行数、字段缺陷与耗时指标
 * @architecture 分层架构 - 监控层
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 指标定义 -> 运行期累加 -> /metrics拉取
 * @rules 指标注册到默认registry，由main暴露promhttp端点
 * @dependencies github.com/prometheus/client_golang
 * @refs service/pipeline, main.go
 */

package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RunMetrics 清洗运行指标集
type RunMetrics struct {
	runsTotal      *prometheus.CounterVec
	entityDuration *prometheus.HistogramVec
	rowsProcessed  *prometheus.CounterVec
	fieldDefects   *prometheus.CounterVec
	entityFailures *prometheus.CounterVec
}

// defaultMetrics 进程级单例，promauto重复注册会panic
var defaultMetrics = newRunMetrics()

// Default 获取指标集单例
func Default() *RunMetrics {
	return defaultMetrics
}

// newRunMetrics 定义并注册全部清洗指标
func newRunMetrics() *RunMetrics {
	return &RunMetrics{
		runsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleansing_runs_total",
			Help: "清洗运行总数，按最终状态分类",
		}, []string{"status"}),
		entityDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cleansing_entity_duration_seconds",
			Help:    "单实体清洗耗时分布",
			Buckets: prometheus.DefBuckets,
		}, []string{"entity_type"}),
		rowsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleansing_rows_total",
			Help: "处理行数，按实体与阶段（raw/cleansed/dropped）分类",
		}, []string{"entity_type", "stage"}),
		fieldDefects: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleansing_field_defects_total",
			Help: "字段级缺陷计数（降级处理，不中断记录）",
		}, []string{"entity_type"}),
		entityFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleansing_entity_failures_total",
			Help: "实体级失败计数，按失败原因分类",
		}, []string{"entity_type", "reason"}),
	}
}

// ObserveRun 记录一次运行的最终状态
func (m *RunMetrics) ObserveRun(status string) {
	m.runsTotal.WithLabelValues(status).Inc()
}

// ObserveEntity 记录单实体清洗结果
func (m *RunMetrics) ObserveEntity(entityType string, duration time.Duration, rawRows, cleansedRows, droppedRows, fieldDefects int64) {
	m.entityDuration.WithLabelValues(entityType).Observe(duration.Seconds())
	m.rowsProcessed.WithLabelValues(entityType, "raw").Add(float64(rawRows))
	m.rowsProcessed.WithLabelValues(entityType, "cleansed").Add(float64(cleansedRows))
	m.rowsProcessed.WithLabelValues(entityType, "dropped").Add(float64(droppedRows))
	m.fieldDefects.WithLabelValues(entityType).Add(float64(fieldDefects))
}

// ObserveEntityFailure 记录实体级失败
func (m *RunMetrics) ObserveEntityFailure(entityType, reason string) {
	m.entityFailures.WithLabelValues(entityType, reason).Inc()
}
