/*
 * @module service/cleansing/erp_category_cleanser
 * @description ERP类目清洗器：纯列投影透传，为保持管道形态对称而存在，便于未来插入规则
 * @architecture 策略模式 - EntityCleanser实现
 * @stateFlow 结构校验 -> 投影 -> 输出
 * @refs service/cleansing/cleanser.go
 */

package cleansing

import (
	"silver-service/service/meta"
	"silver-service/service/models"
)

// ERPCategoryCleanser ERP类目清洗器
type ERPCategoryCleanser struct{}

// NewERPCategoryCleanser 创建ERP类目清洗器
func NewERPCategoryCleanser() *ERPCategoryCleanser {
	return &ERPCategoryCleanser{}
}

// EntityType 返回实体类型
func (c *ERPCategoryCleanser) EntityType() string {
	return meta.EntityERPCategory
}

// Cleanse 执行ERP类目实体清洗（无转换）
func (c *ERPCategoryCleanser) Cleanse(rows []RawRecord) (*CleanseResult, error) {
	if err := ValidateSchema(c.EntityType(), rows); err != nil {
		return nil, err
	}

	stats := CleanseStats{RawRows: int64(len(rows))}

	records := make([]models.CleansedERPCategory, 0, len(rows))
	for _, row := range rows {
		reader := fieldReader{row: row, defects: &stats.FieldDefects}

		id := reader.String("id")
		if id == nil {
			stats.DroppedRows++
			continue
		}

		records = append(records, models.CleansedERPCategory{
			ID:              *id,
			Category:        derefOrEmpty(reader.String("category")),
			Subcategory:     derefOrEmpty(reader.String("subcategory")),
			MaintenanceFlag: derefOrEmpty(reader.String("maintenance_flag")),
		})
	}

	stats.CleansedRows = int64(len(records))

	return &CleanseResult{Records: records, Stats: stats}, nil
}
