/*
 * @module service/cleansing/erp_customer_cleanser
 * @description ERP客户清洗器：去除cid的NAS前缀，置空未来生日，归一性别码值
 * @architecture 策略模式 - EntityCleanser实现
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 结构校验 -> 解码 -> 前缀剥离 -> 生日校验 -> 性别映射 -> 输出
 * @rules 未来的判定以管道运行时刻为准；cid剥离前缀后应可与CRM客户key关联
 * @dependencies time
 * @refs service/cleansing/normalizer.go
 */

package cleansing

import (
	"time"

	"silver-service/service/meta"
	"silver-service/service/models"
)

// ERPCustomerCleanser ERP客户清洗器
type ERPCustomerCleanser struct {
	// now 注入的时钟，生日是否在未来以此为准
	now func() time.Time
}

// NewERPCustomerCleanser 创建ERP客户清洗器
func NewERPCustomerCleanser() *ERPCustomerCleanser {
	return &ERPCustomerCleanser{now: time.Now}
}

// WithClock 替换时钟（测试用）
func (c *ERPCustomerCleanser) WithClock(now func() time.Time) *ERPCustomerCleanser {
	c.now = now
	return c
}

// EntityType 返回实体类型
func (c *ERPCustomerCleanser) EntityType() string {
	return meta.EntityERPCustomer
}

// Cleanse 执行ERP客户实体清洗
func (c *ERPCustomerCleanser) Cleanse(rows []RawRecord) (*CleanseResult, error) {
	if err := ValidateSchema(c.EntityType(), rows); err != nil {
		return nil, err
	}

	stats := CleanseStats{RawRows: int64(len(rows))}
	processedAt := c.now()

	records := make([]models.CleansedERPCustomer, 0, len(rows))
	for _, row := range rows {
		reader := fieldReader{row: row, defects: &stats.FieldDefects}

		cid := reader.String("cid")
		if cid == nil {
			stats.DroppedRows++
			continue
		}

		birthDate := reader.Time("birth_date")
		if birthDate != nil && birthDate.After(processedAt) {
			birthDate = nil
		}

		records = append(records, models.CleansedERPCustomer{
			CID:       StripKnownPrefix(*cid, "NAS"),
			BirthDate: birthDate,
			Gender:    MapCode(reader.String("gender_code"), ERPGenderCodes),
		})
	}

	stats.CleansedRows = int64(len(records))

	return &CleanseResult{Records: records, Stats: stats}, nil
}
