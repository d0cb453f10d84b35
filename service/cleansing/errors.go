/*
 * @module service/cleansing/errors
 * @description 清洗缺陷分类定义：字段级缺陷降级处理，结构性缺陷终止实体运行
 * @architecture 分层架构 - 错误类型定义
 * @stateFlow 缺陷检测 -> 分类 -> 降级计数或终止上报
 * @rules 字段缺陷永不升级为错误；结构性缺陷携带实体与字段上下文供运维诊断
 * @refs service/cleansing/cleanser.go, service/pipeline
 */

package cleansing

import (
	"errors"
	"fmt"
)

// StructuralDefectError 结构性缺陷：原始批次整体缺失声明字段
// 该实体的清洗运行必须终止且不发布任何输出
type StructuralDefectError struct {
	EntityType string
	Field      string
}

// Error 实现error接口
func (e *StructuralDefectError) Error() string {
	return fmt.Sprintf("实体 %s 原始批次缺失声明字段 %s", e.EntityType, e.Field)
}

// NewStructuralDefect 创建结构性缺陷错误
func NewStructuralDefect(entityType, field string) *StructuralDefectError {
	return &StructuralDefectError{EntityType: entityType, Field: field}
}

// IsStructuralDefect 判断错误是否为结构性缺陷（含主键重复）
func IsStructuralDefect(err error) bool {
	var defect *StructuralDefectError
	if errors.As(err, &defect) {
		return true
	}
	var dup *DuplicateIDError
	return errors.As(err, &dup)
}

// DuplicateIDError 主键唯一性校验失败：同一非空id在原始批次中出现多次
// 与结构性缺陷同级，终止该实体的清洗运行
type DuplicateIDError struct {
	EntityType string
	ID         int64
}

// Error 实现error接口
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("实体 %s 原始批次中 id=%d 重复出现", e.EntityType, e.ID)
}
