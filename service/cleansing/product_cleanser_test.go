/*
 * @module service/cleansing/product_cleanser_test
 * @description CRM产品清洗器单元测试
 * @architecture 单元测试
 * @stateFlow 构造原始批次 -> Cleanse -> 断言复合键拆分与结束日期修复
 * @rules 覆盖复合键拆分、历史链修复、重复id报错与成本降级
 * @dependencies testing, github.com/stretchr/testify
 * @refs product_cleanser.go
 */

package cleansing

import (
	"errors"
	"testing"
	"time"

	"silver-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productRow 构造包含全部声明字段的产品原始记录
func productRow(overrides RawRecord) RawRecord {
	row := RawRecord{
		"id":            int64(1),
		"composite_key": "AC-HE-HL-U509-R",
		"name":          "Sport-100 Helmet",
		"cost":          12.0278,
		"line_code":     "S",
		"start_date":    time.Date(2011, 7, 1, 0, 0, 0, 0, time.UTC),
		"end_date":      nil,
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestSplitCompositeKey(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		categoryID string
		productKey string
	}{
		{"标准复合键", "AC-HE-HL-U509-R", "AC_HE", "HL-U509-R"},
		{"恰好6字符无产品键", "AC-HE-", "AC_HE", ""},
		{"不足5字符整体作类目", "AC-H", "AC_H", ""},
		{"空串", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryID, productKey := splitCompositeKey(tt.key)
			assert.Equal(t, tt.categoryID, categoryID)
			assert.Equal(t, tt.productKey, productKey)
		})
	}
}

func TestProductCleanseBasicFields(t *testing.T) {
	rows := []RawRecord{
		productRow(RawRecord{"name": "  Sport-100 Helmet  ", "line_code": "m"}),
	}

	result, err := NewProductCleanser().Cleanse(rows)
	require.NoError(t, err)

	records := result.Records.([]models.CleansedProduct)
	require.Len(t, records, 1)
	assert.Equal(t, "AC_HE", records[0].CategoryID)
	assert.Equal(t, "HL-U509-R", records[0].ProductKey)
	assert.Equal(t, "Sport-100 Helmet", records[0].Name)
	assert.Equal(t, "Mountain", records[0].ProductLine)
	assert.Equal(t, 12.0278, records[0].Cost)
}

func TestProductCleanseNullCostBecomesZero(t *testing.T) {
	rows := []RawRecord{productRow(RawRecord{"cost": nil})}

	result, err := NewProductCleanser().Cleanse(rows)
	require.NoError(t, err)

	records := result.Records.([]models.CleansedProduct)
	require.Len(t, records, 1)
	assert.Equal(t, float64(0), records[0].Cost)
}

func TestProductCleanseEndDateChain(t *testing.T) {
	start2011 := time.Date(2011, 7, 1, 0, 0, 0, 0, time.UTC)
	start2012 := time.Date(2012, 7, 1, 0, 0, 0, 0, time.UTC)
	start2013 := time.Date(2013, 7, 1, 0, 0, 0, 0, time.UTC)
	staleEnd := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)

	// 同一产品键三个版本，末条乱序出现也按start_date排序修复
	rows := []RawRecord{
		productRow(RawRecord{"id": int64(1), "start_date": start2013, "end_date": nil}),
		productRow(RawRecord{"id": int64(2), "start_date": start2011, "end_date": staleEnd}),
		productRow(RawRecord{"id": int64(3), "start_date": start2012, "end_date": staleEnd}),
	}

	result, err := NewProductCleanser().Cleanse(rows)
	require.NoError(t, err)

	records := result.Records.([]models.CleansedProduct)
	require.Len(t, records, 3)

	byID := make(map[int64]models.CleansedProduct, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	require.NotNil(t, byID[2].EndDate)
	assert.Equal(t, time.Date(2012, 6, 30, 0, 0, 0, 0, time.UTC), *byID[2].EndDate)
	require.NotNil(t, byID[3].EndDate)
	assert.Equal(t, time.Date(2013, 6, 30, 0, 0, 0, 0, time.UTC), *byID[3].EndDate)
	// 末条保留原始end_date
	assert.Nil(t, byID[1].EndDate)
}

func TestProductCleanseEndDateLastKeepsOriginal(t *testing.T) {
	start := time.Date(2012, 7, 1, 0, 0, 0, 0, time.UTC)
	originalEnd := time.Date(2014, 12, 31, 0, 0, 0, 0, time.UTC)

	rows := []RawRecord{
		productRow(RawRecord{"id": int64(1), "start_date": start, "end_date": originalEnd}),
	}

	result, err := NewProductCleanser().Cleanse(rows)
	require.NoError(t, err)

	records := result.Records.([]models.CleansedProduct)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].EndDate)
	assert.Equal(t, originalEnd, *records[0].EndDate)
}

func TestProductCleanseDuplicateID(t *testing.T) {
	rows := []RawRecord{
		productRow(RawRecord{"id": int64(5)}),
		productRow(RawRecord{"id": int64(5), "composite_key": "BI-MT-other"}),
	}

	_, err := NewProductCleanser().Cleanse(rows)
	require.Error(t, err)
	assert.True(t, IsStructuralDefect(err))

	var dup *DuplicateIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, int64(5), dup.ID)
}

func TestProductCleanseDropsNullID(t *testing.T) {
	rows := []RawRecord{
		productRow(RawRecord{"id": nil}),
		productRow(RawRecord{"id": int64(2)}),
	}

	result, err := NewProductCleanser().Cleanse(rows)
	require.NoError(t, err)

	records := result.Records.([]models.CleansedProduct)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), result.Stats.DroppedRows)
}
