/*
 * @module service/cleansing/customer_cleanser_test
 * @description CRM客户清洗器单元测试
 * @architecture 单元测试
 * @stateFlow 构造原始批次 -> Cleanse -> 断言输出记录与统计
 * @rules 覆盖去重、码值映射、空id排除与结构性缺陷
 * @dependencies testing, github.com/stretchr/testify
 * @refs customer_cleanser.go
 */

package cleansing

import (
	"testing"
	"time"

	"silver-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// customerRow 构造包含全部声明字段的客户原始记录
func customerRow(overrides RawRecord) RawRecord {
	row := RawRecord{
		"id":                  int64(1),
		"key":                 "AW00011000",
		"first_name":          "Jon",
		"last_name":           "Yang",
		"marital_status_code": "M",
		"gender_code":         "M",
		"created_at":          time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestCustomerCleanseNormalization(t *testing.T) {
	rows := []RawRecord{
		customerRow(RawRecord{
			"first_name":          "  Jon ",
			"last_name":           " Yang  ",
			"marital_status_code": "s",
			"gender_code":         "F",
		}),
	}

	result, err := NewCustomerCleanser().Cleanse(rows)
	require.NoError(t, err)

	records := result.Records.([]models.CleansedCustomer)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, "Jon", records[0].FirstName)
	assert.Equal(t, "Yang", records[0].LastName)
	assert.Equal(t, "Single", records[0].MaritalStatus)
	assert.Equal(t, "Female", records[0].Gender)
	assert.Equal(t, int64(1), result.Stats.CleansedRows)
	assert.Equal(t, int64(0), result.Stats.DroppedRows)
}

func TestCustomerCleanseUnknownCodes(t *testing.T) {
	rows := []RawRecord{
		customerRow(RawRecord{"marital_status_code": "X", "gender_code": nil}),
	}

	result, err := NewCustomerCleanser().Cleanse(rows)
	require.NoError(t, err)

	records := result.Records.([]models.CleansedCustomer)
	require.Len(t, records, 1)
	assert.Equal(t, "n/a", records[0].MaritalStatus)
	assert.Equal(t, "n/a", records[0].Gender)
}

func TestCustomerCleanseDeduplication(t *testing.T) {
	rows := []RawRecord{
		customerRow(RawRecord{"first_name": "Old", "created_at": time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)}),
		customerRow(RawRecord{"first_name": "New", "created_at": time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC)}),
		customerRow(RawRecord{"id": int64(2), "first_name": "Other"}),
	}

	result, err := NewCustomerCleanser().Cleanse(rows)
	require.NoError(t, err)

	records := result.Records.([]models.CleansedCustomer)
	require.Len(t, records, 2)
	assert.Equal(t, "New", records[0].FirstName)
	assert.Equal(t, "Other", records[1].FirstName)
	assert.Equal(t, int64(3), result.Stats.RawRows)
	assert.Equal(t, int64(1), result.Stats.DroppedRows)
}

func TestCustomerCleanseDropsNullID(t *testing.T) {
	rows := []RawRecord{
		customerRow(RawRecord{"id": nil}),
		customerRow(RawRecord{"id": int64(7)}),
	}

	result, err := NewCustomerCleanser().Cleanse(rows)
	require.NoError(t, err)

	records := result.Records.([]models.CleansedCustomer)
	require.Len(t, records, 1)
	assert.Equal(t, int64(7), records[0].ID)
	assert.Equal(t, int64(1), result.Stats.DroppedRows)
}

func TestCustomerCleanseStructuralDefect(t *testing.T) {
	row := customerRow(nil)
	delete(row, "gender_code")

	_, err := NewCustomerCleanser().Cleanse([]RawRecord{row})
	require.Error(t, err)
	assert.True(t, IsStructuralDefect(err))
	assert.Contains(t, err.Error(), "gender_code")
}

func TestCustomerCleanseEmptyBatch(t *testing.T) {
	result, err := NewCustomerCleanser().Cleanse(nil)
	require.NoError(t, err)
	assert.Len(t, result.Records.([]models.CleansedCustomer), 0)
	assert.Equal(t, int64(0), result.Stats.RawRows)
}

func TestCustomerCleanseFieldDefect(t *testing.T) {
	rows := []RawRecord{
		customerRow(RawRecord{"created_at": "not-a-time"}),
	}

	result, err := NewCustomerCleanser().Cleanse(rows)
	require.NoError(t, err)

	records := result.Records.([]models.CleansedCustomer)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].CreatedAt)
	assert.Equal(t, int64(1), result.Stats.FieldDefects)
}
