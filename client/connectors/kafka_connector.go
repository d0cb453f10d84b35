/*
 * @module KafkaConnector
 * @description Kafka连接器，封装银层发布事件的生产者，通知下游金层视图重建
 * @architecture 适配器模式 - 封装第三方Kafka客户端
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 连接建立 -> 事件发送 -> 连接断开
 * @rules 未配置broker时连接器为禁用态，发布调用直接返回；事件发送失败只记录不回滚发布
 * @dependencies github.com/segmentio/kafka-go, encoding/json
 * @refs service/pipeline
 */
package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// 默认发布事件主题
const defaultPublishTopic = "silver.entity.published"

// PublishEvent 银层实体发布完成事件
type PublishEvent struct {
	RunID        string    `json:"run_id"`
	EntityType   string    `json:"entity_type"`
	CleansedRows int64     `json:"cleansed_rows"`
	PublishedAt  time.Time `json:"published_at"`
}

// KafkaNotifier 发布事件通知器
type KafkaNotifier struct {
	writer  *kafka.Writer
	enabled bool
}

// NewKafkaNotifierFromEnv 从环境变量创建通知器
// KAFKA_BROKERS为空时返回禁用态通知器，发布事件静默跳过
func NewKafkaNotifierFromEnv() *KafkaNotifier {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return &KafkaNotifier{enabled: false}
	}

	topic := os.Getenv("KAFKA_PUBLISH_TOPIC")
	if topic == "" {
		topic = defaultPublishTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 100 * time.Millisecond,
	}

	slog.Info("Kafka发布事件通知器已启用", "brokers", brokers, "topic", topic)
	return &KafkaNotifier{writer: writer, enabled: true}
}

// Enabled 通知器是否启用
func (n *KafkaNotifier) Enabled() bool {
	return n.enabled
}

// NotifyPublished 发送实体发布完成事件，键为实体类型以保证同实体事件有序
func (n *KafkaNotifier) NotifyPublished(ctx context.Context, event PublishEvent) error {
	if !n.enabled {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化发布事件失败: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EntityType),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("发送发布事件失败: %w", err)
	}
	return nil
}

// Close 关闭生产者连接
func (n *KafkaNotifier) Close() error {
	if !n.enabled {
		return nil
	}
	return n.writer.Close()
}
