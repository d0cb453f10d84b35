/*
 * @module service/cleansing/customer_cleanser
 * @description CRM客户清洗器：按id去重保留最新，修剪姓名并映射婚姻状态与性别码值
 * @architecture 策略模式 - EntityCleanser实现
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 结构校验 -> 解码 -> 去重（保留created_at最新） -> 字段规范化 -> 输出
 * @rules 空id记录整体排除；去重后每个id恰好保留一条记录
 * @dependencies strconv, time
 * @refs service/cleansing/dedup.go, service/cleansing/normalizer.go
 */

package cleansing

import (
	"strconv"
	"time"

	"silver-service/service/meta"
	"silver-service/service/models"
)

// CustomerCleanser CRM客户清洗器
type CustomerCleanser struct{}

// NewCustomerCleanser 创建CRM客户清洗器
func NewCustomerCleanser() *CustomerCleanser {
	return &CustomerCleanser{}
}

// EntityType 返回实体类型
func (c *CustomerCleanser) EntityType() string {
	return meta.EntityCRMCustomer
}

// rawCustomer 解码后的客户原始行
type rawCustomer struct {
	id            *int64
	key           *string
	firstName     *string
	lastName      *string
	maritalStatus *string
	gender        *string
	createdAt     *time.Time
}

// Cleanse 执行客户实体清洗
func (c *CustomerCleanser) Cleanse(rows []RawRecord) (*CleanseResult, error) {
	if err := ValidateSchema(c.EntityType(), rows); err != nil {
		return nil, err
	}

	stats := CleanseStats{RawRows: int64(len(rows))}

	decoded := make([]rawCustomer, 0, len(rows))
	for _, row := range rows {
		reader := fieldReader{row: row, defects: &stats.FieldDefects}
		decoded = append(decoded, rawCustomer{
			id:            reader.Int64("id"),
			key:           reader.String("key"),
			firstName:     reader.String("first_name"),
			lastName:      reader.String("last_name"),
			maritalStatus: reader.String("marital_status_code"),
			gender:        reader.String("gender_code"),
			createdAt:     reader.Time("created_at"),
		})
	}

	// 空id排除，同id保留created_at最新的一条（并列保留先遇到的）
	survivors := ResolveLatest(decoded,
		func(r rawCustomer) (string, bool) {
			if r.id == nil {
				return "", false
			}
			return strconv.FormatInt(*r.id, 10), true
		},
		func(r rawCustomer) *time.Time { return r.createdAt },
	)

	records := make([]models.CleansedCustomer, 0, len(survivors))
	for _, r := range survivors {
		records = append(records, models.CleansedCustomer{
			ID:            *r.id,
			Key:           derefOrEmpty(Trim(r.key)),
			FirstName:     derefOrEmpty(Trim(r.firstName)),
			LastName:      derefOrEmpty(Trim(r.lastName)),
			MaritalStatus: MapCode(r.maritalStatus, MaritalStatusCodes),
			Gender:        MapCode(r.gender, GenderCodes),
			CreatedAt:     r.createdAt,
		})
	}

	stats.CleansedRows = int64(len(records))
	stats.DroppedRows = stats.RawRows - stats.CleansedRows

	return &CleanseResult{Records: records, Stats: stats}, nil
}
