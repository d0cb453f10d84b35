/*
 * @module service/distributed_lock/redis_lock
 * @description Redis分布式锁实现，用于多实例环境下防止并发执行全量清洗刷新
 * @architecture 工具层 - 提供分布式锁能力
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 获取锁 -> 执行清洗运行 -> 释放锁/自动过期
 * @rules 使用Redis SET NX实现，Lua脚本保证仅持有者可释放；未配置Redis时由调用方退化为进程内互斥
 * @dependencies github.com/go-redis/redis/v8
 * @refs service/pipeline, service/scheduler
 */

package distributed_lock

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// DistributedLock 分布式锁接口
type DistributedLock interface {
	// TryLock 尝试获取锁
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Unlock 释放锁
	Unlock(ctx context.Context, key string) error
	// Refresh 刷新锁的过期时间
	Refresh(ctx context.Context, key string, ttl time.Duration) error
}

// RedisLock Redis分布式锁实现
type RedisLock struct {
	client     *redis.Client
	instanceID string // 实例ID，标识锁的持有者
}

// NewRedisLock 创建Redis分布式锁
// REDIS_HOST未配置时返回nil而非错误，调用方据此退化为进程内互斥
func NewRedisLock() (*RedisLock, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil, nil
	}

	port := getEnvWithDefault("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")
	db := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		fmt.Sscanf(dbStr, "%d", &db)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	hostname, _ := os.Hostname()
	instanceID := fmt.Sprintf("%s:%d", hostname, os.Getpid())

	slog.Info("Redis分布式锁初始化成功",
		"instance_id", instanceID,
		"redis_host", host,
		"redis_port", port)

	return &RedisLock{
		client:     client,
		instanceID: instanceID,
	}, nil
}

// lockKey 构造锁的键
func (r *RedisLock) lockKey(key string) string {
	return fmt.Sprintf("cleansing:lock:%s", key)
}

// TryLock 尝试获取锁
// 使用SET NX命令，只有当key不存在时才会设置成功
func (r *RedisLock) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := r.client.SetNX(ctx, r.lockKey(key), r.instanceID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("获取锁失败: %w", err)
	}

	if result {
		slog.Debug("分布式锁: 成功获取锁", "key", key, "ttl", ttl, "instance", r.instanceID)
	}
	return result, nil
}

// Unlock 释放锁
// Lua脚本确保只有锁的持有者才能释放
func (r *RedisLock) Unlock(ctx context.Context, key string) error {
	script := `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`
	result, err := r.client.Eval(ctx, script, []string{r.lockKey(key)}, r.instanceID).Result()
	if err != nil {
		return fmt.Errorf("释放锁失败: %w", err)
	}
	if result == int64(0) {
		slog.Warn("分布式锁: 当前实例不是锁的持有者，跳过释放", "key", key, "instance", r.instanceID)
	}
	return nil
}

// Refresh 刷新锁的过期时间，仅持有者可刷新
func (r *RedisLock) Refresh(ctx context.Context, key string, ttl time.Duration) error {
	script := `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("pexpire", KEYS[1], ARGV[2])
		else
			return 0
		end
	`
	_, err := r.client.Eval(ctx, script, []string{r.lockKey(key)}, r.instanceID, ttl.Milliseconds()).Result()
	if err != nil {
		return fmt.Errorf("刷新锁失败: %w", err)
	}
	return nil
}

// getEnvWithDefault 获取环境变量，不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
