/*
 * @module service/sink/sink
 * @description 清洗结果汇端抽象及其GORM实现，以整表替换语义发布银层快照
 * @architecture 适配器模式 - 封装下游存储
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 开启事务 -> 清空旧快照 -> 批量写入新快照 -> 提交
 * @rules 发布在单事务内完成，成功则完全取代上一快照，失败则旧快照保持可见，绝不发布部分输出
 * @dependencies gorm.io/gorm, reflect
 * @refs service/models/cleansed.go, service/pipeline
 */

package sink

import (
	"context"
	"fmt"
	"reflect"

	"silver-service/service/meta"
	"silver-service/service/models"

	"gorm.io/gorm"
)

// 批量写入大小
const publishBatchSize = 500

// CleansedSink 清洗结果汇端，按实体类型接收清洗记录批次
type CleansedSink interface {
	Publish(ctx context.Context, entityType string, records interface{}) error
}

// GormCleansedSink 基于GORM的汇端实现，写入银层表
type GormCleansedSink struct {
	db *gorm.DB
}

// NewGormCleansedSink 创建基于GORM的汇端
func NewGormCleansedSink(db *gorm.DB) *GormCleansedSink {
	return &GormCleansedSink{db: db}
}

// 实体类型到银层表模型的映射
var targetModels = map[string]interface{}{
	meta.EntityCRMCustomer: &models.CleansedCustomer{},
	meta.EntityCRMProduct:  &models.CleansedProduct{},
	meta.EntityCRMSales:    &models.CleansedSale{},
	meta.EntityERPCustomer: &models.CleansedERPCustomer{},
	meta.EntityERPLocation: &models.CleansedERPLocation{},
	meta.EntityERPCategory: &models.CleansedERPCategory{},
}

// Publish 整表替换发布：清空该实体的银层表后批量写入新快照
// 空记录集同样是合法发布（全量刷新后为空快照）
func (s *GormCleansedSink) Publish(ctx context.Context, entityType string, records interface{}) error {
	model, ok := targetModels[entityType]
	if !ok {
		return fmt.Errorf("未知实体类型: %s", entityType)
	}

	value := reflect.ValueOf(records)
	if value.Kind() != reflect.Slice {
		return fmt.Errorf("实体 %s 的发布记录必须为切片，实际为 %T", entityType, records)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("清空实体 %s 旧快照失败: %w", entityType, err)
		}

		if value.Len() == 0 {
			return nil
		}

		if err := tx.CreateInBatches(records, publishBatchSize).Error; err != nil {
			return fmt.Errorf("写入实体 %s 新快照失败: %w", entityType, err)
		}
		return nil
	})
}
