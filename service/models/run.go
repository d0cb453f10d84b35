/*
 * @module service/models/run
 * @description 清洗运行报告模型，记录每次银层全量刷新的整体状态与分实体结果
 * @architecture DDD领域驱动设计 - 实体模型
 * @stateFlow 运行创建 -> running -> success/partial_failed/failed
 * @rules 每次运行生成一条CleansingRun与每实体一条EntityRunResult；失败实体不发布任何输出
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/pipeline
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 运行与分实体结果状态
const (
	RunStatusRunning       = "running"
	RunStatusSuccess       = "success"
	RunStatusPartialFailed = "partial_failed"
	RunStatusFailed        = "failed"

	EntityRunSuccess = "success"
	EntityRunFailed  = "failed"
)

// CleansingRun 一次银层清洗运行
type CleansingRun struct {
	ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Status       string     `json:"status" gorm:"not null;size:20;default:'running';index" example:"running"`
	TriggerType  string     `json:"trigger_type" gorm:"not null;size:20" example:"manual"` // manual, scheduled
	TotalCount   int        `json:"total_count" gorm:"default:0"`
	SuccessCount int        `json:"success_count" gorm:"default:0"`
	FailedCount  int        `json:"failed_count" gorm:"default:0"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	CreatedBy    string     `json:"created_by" gorm:"not null;default:'system';size:100"`
	CreatedAt    time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	EntityResults []EntityRunResult `json:"entity_results,omitempty" gorm:"foreignKey:RunID"`
}

// TableName 指定表名
func (CleansingRun) TableName() string {
	return "cleansing_runs"
}

// BeforeCreate GORM钩子，创建前生成UUID
func (r *CleansingRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// EntityRunResult 单个实体在一次运行中的清洗结果
type EntityRunResult struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RunID          string     `json:"run_id" gorm:"not null;type:varchar(36);index"`
	EntityType     string     `json:"entity_type" gorm:"not null;size:30;index"`
	Status         string     `json:"status" gorm:"not null;size:20"`
	RawRows        int64      `json:"raw_rows" gorm:"default:0"`
	CleansedRows   int64      `json:"cleansed_rows" gorm:"default:0"`
	DroppedRows    int64      `json:"dropped_rows" gorm:"default:0"` // 去重或空键丢弃的行数
	FieldDefects   int64      `json:"field_defects" gorm:"default:0"`
	ErrorMessage   string     `json:"error_message,omitempty" gorm:"type:text"`
	Details        JSONB      `json:"details,omitempty" gorm:"type:jsonb"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName 指定表名
func (EntityRunResult) TableName() string {
	return "cleansing_entity_results"
}

// BeforeCreate GORM钩子，创建前生成UUID
func (r *EntityRunResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
