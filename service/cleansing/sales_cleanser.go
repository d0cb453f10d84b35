/*
 * @module service/cleansing/sales_cleanser
 * @description CRM销售清洗器：修复数值编码日期，按派生规则重算销售额与单价
 * @architecture 策略模式 - EntityCleanser实现
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 结构校验 -> 解码 -> 日期修复 -> 销售额重算（用原始单价） -> 单价重算（用重算后销售额） -> 输出
 * @rules 重算顺序不可调换；数量为0时单价派生结果为空而非报错；空单价参与乘法按空值传播
 * @dependencies github.com/shopspring/decimal
 * @refs service/cleansing/normalizer.go
 */

package cleansing

import (
	"time"

	"silver-service/service/meta"
	"silver-service/service/models"

	"github.com/shopspring/decimal"
)

// SalesCleanser CRM销售清洗器
type SalesCleanser struct{}

// NewSalesCleanser 创建CRM销售清洗器
func NewSalesCleanser() *SalesCleanser {
	return &SalesCleanser{}
}

// EntityType 返回实体类型
func (c *SalesCleanser) EntityType() string {
	return meta.EntityCRMSales
}

// Cleanse 执行销售实体清洗
func (c *SalesCleanser) Cleanse(rows []RawRecord) (*CleanseResult, error) {
	if err := ValidateSchema(c.EntityType(), rows); err != nil {
		return nil, err
	}

	stats := CleanseStats{RawRows: int64(len(rows))}

	records := make([]models.CleansedSale, 0, len(rows))
	for _, row := range rows {
		reader := fieldReader{row: row, defects: &stats.FieldDefects}

		record := models.CleansedSale{
			OrderNumber: derefOrEmpty(Trim(reader.String("order_number"))),
			ProductKey:  derefOrEmpty(Trim(reader.String("product_key"))),
		}
		if customerID := reader.Int64("customer_id"); customerID != nil {
			record.CustomerID = *customerID
		}

		record.OrderDate = repairDateField(reader.Int64("order_date_raw"))
		record.ShipDate = repairDateField(reader.Int64("ship_date_raw"))
		record.DueDate = repairDateField(reader.Int64("due_date_raw"))

		quantity := int64(0)
		if q := reader.Int64("quantity"); q != nil {
			quantity = *q
		}
		record.Quantity = quantity

		record.Sales, record.Price = recomputeSalesAndPrice(
			reader.Float64("sales"), quantity, reader.Float64("price"))

		records = append(records, record)
	}

	stats.CleansedRows = int64(len(records))

	return &CleanseResult{Records: records, Stats: stats}, nil
}

// repairDateField 对可空的数值编码日期字段应用修复规则
func repairDateField(raw *int64) *time.Time {
	if raw == nil {
		return nil
	}
	return RepairNumericDate(*raw)
}

// recomputeSalesAndPrice 销售额与单价重算
// 先重算销售额：原值为空、非正或与 数量×|原始单价| 不一致时，替换为该乘积（单价为空时乘积为空，按空值传播）
// 再重算单价：原值为空或非正时，用重算后的销售额除以数量派生；数量为0时结果为空
func recomputeSalesAndPrice(sales *float64, quantity int64, price *float64) (*decimal.Decimal, *decimal.Decimal) {
	var computed *decimal.Decimal
	if price != nil {
		v := decimal.NewFromInt(quantity).Mul(decimal.NewFromFloat(*price).Abs())
		computed = &v
	}

	var salesOut *decimal.Decimal
	switch {
	case sales == nil || *sales <= 0:
		salesOut = computed
	case computed != nil && !decimal.NewFromFloat(*sales).Equal(*computed):
		salesOut = computed
	default:
		v := decimal.NewFromFloat(*sales)
		salesOut = &v
	}

	var priceOut *decimal.Decimal
	if price == nil || *price <= 0 {
		if quantity != 0 && salesOut != nil {
			v := salesOut.Div(decimal.NewFromInt(quantity))
			priceOut = &v
		}
	} else {
		v := decimal.NewFromFloat(*price)
		priceOut = &v
	}

	return salesOut, priceOut
}
