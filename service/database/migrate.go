/*
 * @module service/database/migrate
 * @description 数据库迁移模块，创建原始表、银层表与运行报告表
 * @architecture 分层架构 - 数据访问层
 * @stateFlow 应用启动时执行一次迁移
 * @rules 原始表由外部装载器写入，此处仅保证表结构存在；银层表只由汇端写入
 * @dependencies gorm.io/gorm
 * @refs service/models
 */

package database

import (
	"fmt"

	"silver-service/service/models"

	"gorm.io/gorm"
)

// AutoMigrate 迁移全部表结构
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// 青铜层原始表（装载器写入）
		&models.RawCRMCustomer{},
		&models.RawCRMProduct{},
		&models.RawCRMSale{},
		&models.RawERPCustomer{},
		&models.RawERPLocation{},
		&models.RawERPCategory{},
		// 银层清洗表（汇端整表替换写入）
		&models.CleansedCustomer{},
		&models.CleansedProduct{},
		&models.CleansedSale{},
		&models.CleansedERPCustomer{},
		&models.CleansedERPLocation{},
		&models.CleansedERPCategory{},
		// 运行报告表
		&models.CleansingRun{},
		&models.EntityRunResult{},
	)
	if err != nil {
		return fmt.Errorf("表结构迁移失败: %w", err)
	}
	return nil
}
