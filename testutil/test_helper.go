/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数，提供内存数据库与原始数据工厂
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, time
 * @refs service/models
 */

package testutil

import (
	"fmt"
	"time"

	"silver-service/service/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 内存库按连接隔离，限制为单连接保证所有会话看到同一库
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.RawCRMCustomer{},
		&models.RawCRMProduct{},
		&models.RawCRMSale{},
		&models.RawERPCustomer{},
		&models.RawERPLocation{},
		&models.RawERPCategory{},
		&models.CleansedCustomer{},
		&models.CleansedProduct{},
		&models.CleansedSale{},
		&models.CleansedERPCustomer{},
		&models.CleansedERPLocation{},
		&models.CleansedERPCategory{},
		&models.CleansingRun{},
		&models.EntityRunResult{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"raw_crm_customers",
		"raw_crm_products",
		"raw_crm_sales",
		"raw_erp_customers",
		"raw_erp_locations",
		"raw_erp_categories",
		"silver_crm_customers",
		"silver_crm_products",
		"silver_crm_sales",
		"silver_erp_customers",
		"silver_erp_locations",
		"silver_erp_categories",
		"cleansing_runs",
		"cleansing_entity_results",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// 指针辅助函数

// StrPtr 字符串指针
func StrPtr(s string) *string { return &s }

// Int64Ptr 整数指针
func Int64Ptr(i int64) *int64 { return &i }

// Float64Ptr 浮点指针
func Float64Ptr(f float64) *float64 { return &f }

// TimePtr 时间指针
func TimePtr(t time.Time) *time.Time { return &t }

// Date 构造UTC日期
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// RawCustomerOption 客户原始行选项函数类型
type RawCustomerOption func(*models.RawCRMCustomer)

// CreateRawCustomer 创建测试客户原始行
func (tdb *TestDB) CreateRawCustomer(id int64, createdAt time.Time, opts ...RawCustomerOption) *models.RawCRMCustomer {
	row := &models.RawCRMCustomer{
		ID:                &id,
		Key:               StrPtr(fmt.Sprintf("AW%08d", id)),
		FirstName:         StrPtr("Jon"),
		LastName:          StrPtr("Snow"),
		MaritalStatusCode: StrPtr("S"),
		GenderCode:        StrPtr("M"),
		CreatedAt:         &createdAt,
	}

	for _, opt := range opts {
		opt(row)
	}

	if err := tdb.DB.Create(row).Error; err != nil {
		panic(fmt.Sprintf("failed to create raw customer: %v", err))
	}
	return row
}

// RawSaleOption 销售原始行选项函数类型
type RawSaleOption func(*models.RawCRMSale)

// CreateRawSale 创建测试销售原始行
func (tdb *TestDB) CreateRawSale(orderNumber string, opts ...RawSaleOption) *models.RawCRMSale {
	row := &models.RawCRMSale{
		OrderNumber:  StrPtr(orderNumber),
		ProductKey:   StrPtr("BK-M82S-44"),
		CustomerID:   Int64Ptr(11000),
		OrderDateRaw: Int64Ptr(20110529),
		ShipDateRaw:  Int64Ptr(20110605),
		DueDateRaw:   Int64Ptr(20110610),
		Sales:        Float64Ptr(250),
		Quantity:     Int64Ptr(10),
		Price:        Float64Ptr(25),
	}

	for _, opt := range opts {
		opt(row)
	}

	if err := tdb.DB.Create(row).Error; err != nil {
		panic(fmt.Sprintf("failed to create raw sale: %v", err))
	}
	return row
}

// RawProductOption 产品原始行选项函数类型
type RawProductOption func(*models.RawCRMProduct)

// CreateRawProduct 创建测试产品原始行
func (tdb *TestDB) CreateRawProduct(id int64, compositeKey string, startDate time.Time, opts ...RawProductOption) *models.RawCRMProduct {
	row := &models.RawCRMProduct{
		ID:           &id,
		CompositeKey: StrPtr(compositeKey),
		Name:         StrPtr("HL Road Frame"),
		Cost:         Float64Ptr(100),
		LineCode:     StrPtr("R"),
		StartDate:    &startDate,
	}

	for _, opt := range opts {
		opt(row)
	}

	if err := tdb.DB.Create(row).Error; err != nil {
		panic(fmt.Sprintf("failed to create raw product: %v", err))
	}
	return row
}
