/*
 * @module service/cleansing/erp_location_cleanser
 * @description ERP地区清洗器：去除cid中的连字符，归一国家名称
 * @architecture 策略模式 - EntityCleanser实现
 * @stateFlow 结构校验 -> 解码 -> 分隔符剥离 -> 国家归一 -> 输出
 * @rules cid去除分隔符后应可与CRM客户key关联
 * @refs service/cleansing/normalizer.go
 */

package cleansing

import (
	"strings"

	"silver-service/service/meta"
	"silver-service/service/models"
)

// ERPLocationCleanser ERP地区清洗器
type ERPLocationCleanser struct{}

// NewERPLocationCleanser 创建ERP地区清洗器
func NewERPLocationCleanser() *ERPLocationCleanser {
	return &ERPLocationCleanser{}
}

// EntityType 返回实体类型
func (c *ERPLocationCleanser) EntityType() string {
	return meta.EntityERPLocation
}

// Cleanse 执行ERP地区实体清洗
func (c *ERPLocationCleanser) Cleanse(rows []RawRecord) (*CleanseResult, error) {
	if err := ValidateSchema(c.EntityType(), rows); err != nil {
		return nil, err
	}

	stats := CleanseStats{RawRows: int64(len(rows))}

	records := make([]models.CleansedERPLocation, 0, len(rows))
	for _, row := range rows {
		reader := fieldReader{row: row, defects: &stats.FieldDefects}

		cid := reader.String("cid")
		if cid == nil {
			stats.DroppedRows++
			continue
		}

		records = append(records, models.CleansedERPLocation{
			CID:     StripSeparators(strings.TrimSpace(*cid), "-"),
			Country: CanonicalCountry(reader.String("country_raw")),
		})
	}

	stats.CleansedRows = int64(len(records))

	return &CleanseResult{Records: records, Stats: stats}, nil
}
