/*
 * @module service/cleansing/cleanser
 * @description 实体清洗器通用接口与原始记录读取工具，统一字段缺陷降级与结构校验
 * @architecture 策略模式 - 每实体一个清洗器实现统一接口
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 结构校验 -> 逐行字段读取 -> 规则应用 -> 统计输出
 * @rules 单字段读取失败计为字段缺陷并降级为nil；声明字段整体缺失为结构性缺陷
 * @dependencies github.com/spf13/cast
 * @refs service/cleansing/normalizer.go, service/meta/entity_types.go
 */

package cleansing

import (
	"time"

	"silver-service/service/meta"

	"github.com/spf13/cast"
)

// RawRecord 原始记录的通用表示，键为声明字段名
type RawRecord = map[string]interface{}

// CleanseStats 单实体清洗统计
type CleanseStats struct {
	RawRows      int64 `json:"raw_rows"`
	CleansedRows int64 `json:"cleansed_rows"`
	DroppedRows  int64 `json:"dropped_rows"`
	FieldDefects int64 `json:"field_defects"`
}

// CleanseResult 单实体清洗结果，Records为可直接发布的清洗记录切片
type CleanseResult struct {
	Records interface{}
	Stats   CleanseStats
}

// EntityCleanser 实体清洗器接口，每个实体类型一个实现
type EntityCleanser interface {
	// EntityType 返回清洗器负责的实体类型
	EntityType() string
	// Cleanse 对一个完整原始快照执行清洗，结构性缺陷返回错误并不产出任何记录
	Cleanse(rows []RawRecord) (*CleanseResult, error)
}

// Registry 实体类型到清洗器的注册表
// 新增实体时在此注册，管道形态无需改动
func Registry() map[string]EntityCleanser {
	return map[string]EntityCleanser{
		meta.EntityCRMCustomer: NewCustomerCleanser(),
		meta.EntityCRMProduct:  NewProductCleanser(),
		meta.EntityCRMSales:    NewSalesCleanser(),
		meta.EntityERPCustomer: NewERPCustomerCleanser(),
		meta.EntityERPLocation: NewERPLocationCleanser(),
		meta.EntityERPCategory: NewERPCategoryCleanser(),
	}
}

// ValidateSchema 结构性校验：批次非空时首行必须包含全部声明字段
// 空批次视为合法（发布空快照）
func ValidateSchema(entityType string, rows []RawRecord) error {
	if len(rows) == 0 {
		return nil
	}
	schema, ok := meta.RawSchemaFor(entityType)
	if !ok {
		return NewStructuralDefect(entityType, "<schema>")
	}
	for _, field := range schema.Fields {
		if _, exists := rows[0][field]; !exists {
			return NewStructuralDefect(entityType, field)
		}
	}
	return nil
}

// fieldReader 原始记录字段读取器，统一类型强转和缺陷计数
type fieldReader struct {
	row     RawRecord
	defects *int64
}

// String 读取字符串字段，缺失或空返回nil，强转失败计缺陷并返回nil
func (r *fieldReader) String(name string) *string {
	value, exists := r.row[name]
	if !exists || value == nil {
		return nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		*r.defects++
		return nil
	}
	return &s
}

// Int64 读取整数字段
func (r *fieldReader) Int64(name string) *int64 {
	value, exists := r.row[name]
	if !exists || value == nil {
		return nil
	}
	i, err := cast.ToInt64E(value)
	if err != nil {
		*r.defects++
		return nil
	}
	return &i
}

// Float64 读取浮点字段
func (r *fieldReader) Float64(name string) *float64 {
	value, exists := r.row[name]
	if !exists || value == nil {
		return nil
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		*r.defects++
		return nil
	}
	return &f
}

// Time 读取时间字段
func (r *fieldReader) Time(name string) *time.Time {
	value, exists := r.row[name]
	if !exists || value == nil {
		return nil
	}
	t, err := cast.ToTimeE(value)
	if err != nil {
		*r.defects++
		return nil
	}
	return &t
}

// derefOrEmpty 指针字符串解引用，nil返回空串
func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
