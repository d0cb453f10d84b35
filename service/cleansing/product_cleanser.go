/*
 * @module service/cleansing/product_cleanser
 * @description CRM产品清洗器：拆分复合键派生类目id与产品键，修复历史记录结束日期
 * @architecture 策略模式 - EntityCleanser实现
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 结构校验 -> 解码 -> id唯一性校验 -> 字段规范化 -> 结束日期修复 -> 输出
 * @rules 同product_key历史记录按start_date升序，非末条end_date=下条start_date前一天；末条保留原值
 * @dependencies sort, strings, time
 * @refs service/cleansing/normalizer.go
 */

package cleansing

import (
	"sort"
	"strings"

	"silver-service/service/meta"
	"silver-service/service/models"
)

// ProductCleanser CRM产品清洗器
type ProductCleanser struct{}

// NewProductCleanser 创建CRM产品清洗器
func NewProductCleanser() *ProductCleanser {
	return &ProductCleanser{}
}

// EntityType 返回实体类型
func (c *ProductCleanser) EntityType() string {
	return meta.EntityCRMProduct
}

// Cleanse 执行产品实体清洗
func (c *ProductCleanser) Cleanse(rows []RawRecord) (*CleanseResult, error) {
	if err := ValidateSchema(c.EntityType(), rows); err != nil {
		return nil, err
	}

	stats := CleanseStats{RawRows: int64(len(rows))}

	records := make([]models.CleansedProduct, 0, len(rows))
	seenIDs := make(map[int64]bool, len(rows))

	for _, row := range rows {
		reader := fieldReader{row: row, defects: &stats.FieldDefects}

		id := reader.Int64("id")
		if id == nil {
			stats.DroppedRows++
			continue
		}
		// 源系统承诺id唯一，仍需显式校验
		if seenIDs[*id] {
			return nil, &DuplicateIDError{EntityType: c.EntityType(), ID: *id}
		}
		seenIDs[*id] = true

		categoryID, productKey := splitCompositeKey(derefOrEmpty(reader.String("composite_key")))

		records = append(records, models.CleansedProduct{
			ID:          *id,
			CategoryID:  categoryID,
			ProductKey:  productKey,
			Name:        derefOrEmpty(Trim(reader.String("name"))),
			Cost:        NonNegativeOrZero(reader.Float64("cost")),
			ProductLine: MapCode(reader.String("line_code"), ProductLineCodes),
			StartDate:   reader.Time("start_date"),
			EndDate:     reader.Time("end_date"),
		})
	}

	repairEndDates(records)

	stats.CleansedRows = int64(len(records))

	return &CleanseResult{Records: records, Stats: stats}, nil
}

// splitCompositeKey 拆分复合键：前5字符（分隔符替换为下划线）为类目id，第7字符起为产品键
func splitCompositeKey(key string) (categoryID, productKey string) {
	if len(key) >= 5 {
		categoryID = strings.ReplaceAll(key[:5], "-", "_")
	} else {
		categoryID = strings.ReplaceAll(key, "-", "_")
	}
	if len(key) >= 7 {
		productKey = key[6:]
	}
	return categoryID, productKey
}

// repairEndDates 按product_key分组修复结束日期
// 组内按start_date升序（空值在前），非末条end_date置为下条start_date减一天
// 末条保留原始end_date，即便与自身start_date逻辑不一致也不做修正（已知局限）
func repairEndDates(records []models.CleansedProduct) {
	groups := make(map[string][]int, len(records))
	for i, r := range records {
		groups[r.ProductKey] = append(groups[r.ProductKey], i)
	}

	for _, idxs := range groups {
		sort.SliceStable(idxs, func(a, b int) bool {
			sa, sb := records[idxs[a]].StartDate, records[idxs[b]].StartDate
			if sa == nil {
				return sb != nil
			}
			if sb == nil {
				return false
			}
			return sa.Before(*sb)
		})

		for pos := 0; pos < len(idxs)-1; pos++ {
			next := records[idxs[pos+1]].StartDate
			if next == nil {
				records[idxs[pos]].EndDate = nil
				continue
			}
			end := next.AddDate(0, 0, -1)
			records[idxs[pos]].EndDate = &end
		}
	}
}
