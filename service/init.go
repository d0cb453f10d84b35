/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、迁移与各全局服务的装配
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保数据库与管道依赖装配完成后才提供API服务
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres
 * @refs service/pipeline, service/scheduler
 */

package service

import (
	"fmt"
	"log"
	"os"

	"silver-service/client/connectors"
	"silver-service/service/database"
	"silver-service/service/distributed_lock"
	"silver-service/service/pipeline"
	"silver-service/service/scheduler"
	"silver-service/service/sink"
	"silver-service/service/source"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB                     *gorm.DB
	GlobalPipeline         *pipeline.Pipeline
	GlobalSchedulerService *scheduler.SchedulerService
	GlobalKafkaNotifier    *connectors.KafkaNotifier
)

func init() {
	initDatabase()
	runMigrations()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		// 使用分离的环境变量构建连接字符串
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "warehouse")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")
		schema := getEnvWithDefault("DB_SCHEMA", "public")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
			host, port, user, password, dbname, sslmode, schema)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	if err := database.AutoMigrate(DB); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	log.Println("数据库表结构迁移完成")
}

// initServices 初始化服务
func initServices() {
	// 分布式锁可选：未配置Redis时管道退化为进程内互斥
	lock, err := distributed_lock.NewRedisLock()
	if err != nil {
		log.Fatalf("分布式锁初始化失败: %v", err)
	}

	GlobalKafkaNotifier = connectors.NewKafkaNotifierFromEnv()

	rawSource := source.NewGormRawSource(DB)
	cleansedSink := sink.NewGormCleansedSink(DB)

	if lock != nil {
		GlobalPipeline = pipeline.NewPipeline(DB, rawSource, cleansedSink, lock, GlobalKafkaNotifier)
	} else {
		GlobalPipeline = pipeline.NewPipeline(DB, rawSource, cleansedSink, nil, GlobalKafkaNotifier)
	}

	GlobalSchedulerService = scheduler.NewSchedulerService(GlobalPipeline)
	if err := GlobalSchedulerService.Start(); err != nil {
		log.Printf("启动清洗调度器失败: %v", err)
	}

	log.Println("服务初始化完成")
}
