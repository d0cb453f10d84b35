/*
 * @module service/source/source
 * @description 原始记录源抽象及其GORM实现，从青铜层原始表读取指定实体的完整快照
 * @architecture 适配器模式 - 封装外部装载器产出的原始表
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 实体类型解析 -> 整表读取 -> 原始记录批次返回
 * @rules 读取失败视为该实体的源不可用，终止该实体的清洗，不影响其他实体
 * @dependencies gorm.io/gorm
 * @refs service/meta/entity_types.go, service/pipeline
 */

package source

import (
	"context"
	"fmt"

	"silver-service/service/cleansing"
	"silver-service/service/meta"

	"gorm.io/gorm"
)

// RawRecordSource 原始记录源，按实体类型产出一个完整原始快照
type RawRecordSource interface {
	Fetch(ctx context.Context, entityType string) ([]cleansing.RawRecord, error)
}

// GormRawSource 基于GORM的原始记录源实现
type GormRawSource struct {
	db *gorm.DB
}

// NewGormRawSource 创建基于GORM的原始记录源
func NewGormRawSource(db *gorm.DB) *GormRawSource {
	return &GormRawSource{db: db}
}

// Fetch 读取指定实体的原始表全量快照
func (s *GormRawSource) Fetch(ctx context.Context, entityType string) ([]cleansing.RawRecord, error) {
	schema, ok := meta.RawSchemaFor(entityType)
	if !ok {
		return nil, fmt.Errorf("未知实体类型: %s", entityType)
	}

	var rows []map[string]interface{}
	if err := s.db.WithContext(ctx).Table(schema.Table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("读取原始表 %s 失败: %w", schema.Table, err)
	}

	records := make([]cleansing.RawRecord, len(rows))
	for i, row := range rows {
		records[i] = row
	}
	return records, nil
}
