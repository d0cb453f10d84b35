/*
 * @module service/models/cleansed
 * @description 银层清洗后数据模型，满足规范化不变量，供下游金层视图组合消费
 * @architecture DDD领域驱动设计 - 实体模型
 * @stateFlow 每次清洗运行全量重建，发布采用整表替换语义
 * @rules 清洗表只由CleansedSink写入；字段约束由清洗规则保证而非数据库约束
 * @dependencies gorm.io/gorm, github.com/shopspring/decimal
 * @refs service/cleansing, service/sink
 */

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CleansedCustomer 清洗后CRM客户，每个非空id恰好一条记录（保留created_at最新的一条）
type CleansedCustomer struct {
	ID            int64      `json:"id" gorm:"primaryKey;column:id"`
	Key           string     `json:"key" gorm:"column:key;size:50;index"`
	FirstName     string     `json:"first_name" gorm:"column:first_name;size:100"`
	LastName      string     `json:"last_name" gorm:"column:last_name;size:100"`
	MaritalStatus string     `json:"marital_status" gorm:"column:marital_status;size:20"` // Single, Married, n/a
	Gender        string     `json:"gender" gorm:"column:gender;size:20"`                 // Male, Female, n/a
	CreatedAt     *time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName 指定表名
func (CleansedCustomer) TableName() string {
	return "silver_crm_customers"
}

// CleansedProduct 清洗后CRM产品，类目与产品键由composite_key拆分派生
type CleansedProduct struct {
	ID          int64      `json:"id" gorm:"primaryKey;column:id"`
	CategoryID  string     `json:"category_id" gorm:"column:category_id;size:20;index"`
	ProductKey  string     `json:"product_key" gorm:"column:product_key;size:100;index"`
	Name        string     `json:"name" gorm:"column:name;size:200"`
	Cost        float64    `json:"cost" gorm:"column:cost"`
	ProductLine string     `json:"product_line" gorm:"column:product_line;size:20"` // Mountain, Road, Other Sales, Touring, n/a
	StartDate   *time.Time `json:"start_date" gorm:"column:start_date"`
	EndDate     *time.Time `json:"end_date" gorm:"column:end_date"`
}

// TableName 指定表名
func (CleansedProduct) TableName() string {
	return "silver_crm_products"
}

// CleansedSale 清洗后CRM销售，金额与单价按派生规则重算
type CleansedSale struct {
	RowID       uint             `json:"row_id" gorm:"primaryKey;autoIncrement;column:row_id"`
	OrderNumber string           `json:"order_number" gorm:"column:order_number;size:50;index"`
	ProductKey  string           `json:"product_key" gorm:"column:product_key;size:100;index"`
	CustomerID  int64            `json:"customer_id" gorm:"column:customer_id;index"`
	OrderDate   *time.Time       `json:"order_date" gorm:"column:order_date"`
	ShipDate    *time.Time       `json:"ship_date" gorm:"column:ship_date"`
	DueDate     *time.Time       `json:"due_date" gorm:"column:due_date"`
	Sales       *decimal.Decimal `json:"sales" gorm:"column:sales;type:decimal(18,4)"`
	Quantity    int64            `json:"quantity" gorm:"column:quantity"`
	Price       *decimal.Decimal `json:"price" gorm:"column:price;type:decimal(18,4)"`
}

// TableName 指定表名
func (CleansedSale) TableName() string {
	return "silver_crm_sales"
}

// CleansedERPCustomer 清洗后ERP客户，cid去除NAS前缀后可与CleansedCustomer.Key关联
type CleansedERPCustomer struct {
	CID       string     `json:"cid" gorm:"primaryKey;column:cid;size:50"`
	BirthDate *time.Time `json:"birth_date" gorm:"column:birth_date"` // 晚于处理时刻的生日置空
	Gender    string     `json:"gender" gorm:"column:gender;size:20"` // Male, Female, n/a
}

// TableName 指定表名
func (CleansedERPCustomer) TableName() string {
	return "silver_erp_customers"
}

// CleansedERPLocation 清洗后ERP地区，cid去除分隔符，国家名称归一
type CleansedERPLocation struct {
	CID     string `json:"cid" gorm:"primaryKey;column:cid;size:50"`
	Country string `json:"country" gorm:"column:country;size:100"`
}

// TableName 指定表名
func (CleansedERPLocation) TableName() string {
	return "silver_erp_locations"
}

// CleansedERPCategory 清洗后ERP类目，纯投影透传
type CleansedERPCategory struct {
	ID              string `json:"id" gorm:"primaryKey;column:id;size:50"`
	Category        string `json:"category" gorm:"column:category;size:100"`
	Subcategory     string `json:"subcategory" gorm:"column:subcategory;size:100"`
	MaintenanceFlag string `json:"maintenance_flag" gorm:"column:maintenance_flag;size:10"`
}

// TableName 指定表名
func (CleansedERPCategory) TableName() string {
	return "silver_erp_categories"
}
