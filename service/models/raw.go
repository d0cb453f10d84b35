/*
 * @module service/models/raw
 * @description 青铜层原始数据模型，与源系统抽取文件一一对应，允许存在重复、脏值和空值
 * @architecture DDD领域驱动设计 - 实体模型
 * @stateFlow 由外部装载器全量写入，清洗管道只读消费
 * @rules 原始表不做任何约束修复，结构缺陷在清洗阶段检测
 * @dependencies gorm.io/gorm
 * @refs service/meta/entity_types.go, service/source
 */

package models

import "time"

// RawCRMCustomer CRM客户原始记录，同一id可能存在多条历史行
type RawCRMCustomer struct {
	RowID             uint       `json:"row_id" gorm:"primaryKey;autoIncrement;column:row_id"`
	ID                *int64     `json:"id" gorm:"column:id;index"`
	Key               *string    `json:"key" gorm:"column:key;size:50"`
	FirstName         *string    `json:"first_name" gorm:"column:first_name;size:100"`
	LastName          *string    `json:"last_name" gorm:"column:last_name;size:100"`
	MaritalStatusCode *string    `json:"marital_status_code" gorm:"column:marital_status_code;size:10"`
	GenderCode        *string    `json:"gender_code" gorm:"column:gender_code;size:10"`
	CreatedAt         *time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName 指定表名
func (RawCRMCustomer) TableName() string {
	return "raw_crm_customers"
}

// RawCRMProduct CRM产品原始记录，composite_key编码了类目和产品键
type RawCRMProduct struct {
	RowID        uint       `json:"row_id" gorm:"primaryKey;autoIncrement;column:row_id"`
	ID           *int64     `json:"id" gorm:"column:id;index"`
	CompositeKey *string    `json:"composite_key" gorm:"column:composite_key;size:100"`
	Name         *string    `json:"name" gorm:"column:name;size:200"`
	Cost         *float64   `json:"cost" gorm:"column:cost"`
	LineCode     *string    `json:"line_code" gorm:"column:line_code;size:10"`
	StartDate    *time.Time `json:"start_date" gorm:"column:start_date"`
	EndDate      *time.Time `json:"end_date" gorm:"column:end_date"`
}

// TableName 指定表名
func (RawCRMProduct) TableName() string {
	return "raw_crm_products"
}

// RawCRMSale CRM销售原始记录，日期字段为YYYYMMDD数值编码
type RawCRMSale struct {
	RowID       uint     `json:"row_id" gorm:"primaryKey;autoIncrement;column:row_id"`
	OrderNumber *string  `json:"order_number" gorm:"column:order_number;size:50;index"`
	ProductKey  *string  `json:"product_key" gorm:"column:product_key;size:100"`
	CustomerID  *int64   `json:"customer_id" gorm:"column:customer_id"`
	OrderDateRaw *int64  `json:"order_date_raw" gorm:"column:order_date_raw"`
	ShipDateRaw *int64   `json:"ship_date_raw" gorm:"column:ship_date_raw"`
	DueDateRaw  *int64   `json:"due_date_raw" gorm:"column:due_date_raw"`
	Sales       *float64 `json:"sales" gorm:"column:sales"`
	Quantity    *int64   `json:"quantity" gorm:"column:quantity"`
	Price       *float64 `json:"price" gorm:"column:price"`
}

// TableName 指定表名
func (RawCRMSale) TableName() string {
	return "raw_crm_sales"
}

// RawERPCustomer ERP客户原始记录，cid可能携带NAS前缀
type RawERPCustomer struct {
	RowID      uint       `json:"row_id" gorm:"primaryKey;autoIncrement;column:row_id"`
	CID        *string    `json:"cid" gorm:"column:cid;size:50"`
	BirthDate  *time.Time `json:"birth_date" gorm:"column:birth_date"`
	GenderCode *string    `json:"gender_code" gorm:"column:gender_code;size:20"`
}

// TableName 指定表名
func (RawERPCustomer) TableName() string {
	return "raw_erp_customers"
}

// RawERPLocation ERP地区原始记录，cid含分隔符，国家编码不统一
type RawERPLocation struct {
	RowID      uint    `json:"row_id" gorm:"primaryKey;autoIncrement;column:row_id"`
	CID        *string `json:"cid" gorm:"column:cid;size:50"`
	CountryRaw *string `json:"country_raw" gorm:"column:country_raw;size:100"`
}

// TableName 指定表名
func (RawERPLocation) TableName() string {
	return "raw_erp_locations"
}

// RawERPCategory ERP类目原始记录，列投影后直接透传
type RawERPCategory struct {
	RowID           uint    `json:"row_id" gorm:"primaryKey;autoIncrement;column:row_id"`
	ID              *string `json:"id" gorm:"column:id;size:50"`
	Category        *string `json:"category" gorm:"column:category;size:100"`
	Subcategory     *string `json:"subcategory" gorm:"column:subcategory;size:100"`
	MaintenanceFlag *string `json:"maintenance_flag" gorm:"column:maintenance_flag;size:10"`
}

// TableName 指定表名
func (RawERPCategory) TableName() string {
	return "raw_erp_categories"
}
