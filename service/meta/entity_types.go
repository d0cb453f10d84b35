/*
 * @module service/meta/entity_types
 * @description 实体类型元数据定义，声明银层清洗支持的实体类型及其原始字段结构
 * @architecture 分层架构 - 元数据层
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 无状态常量定义
 * @rules 实体类型和原始字段结构为固定配置，新增实体需同步更新清洗器注册表
 * @refs service/cleansing, service/source
 */

package meta

// 实体类型常量，对应CRM和ERP两个源系统的六类原始数据
const (
	EntityCRMCustomer = "crm_customer"
	EntityCRMProduct  = "crm_product"
	EntityCRMSales    = "crm_sales"
	EntityERPCustomer = "erp_customer"
	EntityERPLocation = "erp_location"
	EntityERPCategory = "erp_category"
)

// AllEntityTypes 返回所有支持的实体类型（固定顺序）
func AllEntityTypes() []string {
	return []string{
		EntityCRMCustomer,
		EntityCRMProduct,
		EntityCRMSales,
		EntityERPCustomer,
		EntityERPLocation,
		EntityERPCategory,
	}
}

// IsValidEntityType 校验实体类型是否受支持
func IsValidEntityType(entityType string) bool {
	for _, t := range AllEntityTypes() {
		if t == entityType {
			return true
		}
	}
	return false
}

// RawSchema 原始数据批次的声明字段结构
// 清洗前用于结构性校验：声明字段在批次中整体缺失时视为结构性缺陷
type RawSchema struct {
	Table  string   // 原始表名（青铜层装载器写入的表）
	Fields []string // 声明字段列表
}

// rawSchemas 各实体类型的原始字段结构
var rawSchemas = map[string]RawSchema{
	EntityCRMCustomer: {
		Table:  "raw_crm_customers",
		Fields: []string{"id", "key", "first_name", "last_name", "marital_status_code", "gender_code", "created_at"},
	},
	EntityCRMProduct: {
		Table:  "raw_crm_products",
		Fields: []string{"id", "composite_key", "name", "cost", "line_code", "start_date", "end_date"},
	},
	EntityCRMSales: {
		Table:  "raw_crm_sales",
		Fields: []string{"order_number", "product_key", "customer_id", "order_date_raw", "ship_date_raw", "due_date_raw", "sales", "quantity", "price"},
	},
	EntityERPCustomer: {
		Table:  "raw_erp_customers",
		Fields: []string{"cid", "birth_date", "gender_code"},
	},
	EntityERPLocation: {
		Table:  "raw_erp_locations",
		Fields: []string{"cid", "country_raw"},
	},
	EntityERPCategory: {
		Table:  "raw_erp_categories",
		Fields: []string{"id", "category", "subcategory", "maintenance_flag"},
	},
}

// RawSchemaFor 获取指定实体类型的原始字段结构
func RawSchemaFor(entityType string) (RawSchema, bool) {
	schema, ok := rawSchemas[entityType]
	return schema, ok
}
