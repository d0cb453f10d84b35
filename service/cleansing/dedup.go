/*
 * @module service/cleansing/dedup
 * @description 通用去重解析器，按自然键分组后保留比较时间戳最大的一条记录
 * @architecture 工具函数模式 - 泛型分组归并
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow 分组 -> 组内择优 -> 按键首现顺序输出
 * @rules 自然键为空的记录整体排除；时间戳并列时保留先遇到的一条，结果对相同输入顺序稳定
 * @dependencies time
 * @refs service/cleansing/customer_cleanser.go
 */

package cleansing

import "time"

// ResolveLatest 对共享自然键的记录序列执行保留最新策略
// keyFn返回记录的自然键及其是否有效（无效键的记录被排除，不报错）
// tsFn返回用于比较的时间戳，nil时间戳视为最小值
// 并列时间戳保留先遇到的记录；输出按自然键首次出现的顺序排列，O(n)完成
func ResolveLatest[T any](records []T, keyFn func(T) (string, bool), tsFn func(T) *time.Time) []T {
	type group struct {
		record T
		ts     *time.Time
	}

	groups := make(map[string]*group, len(records))
	keyOrder := make([]string, 0, len(records))

	for _, record := range records {
		key, ok := keyFn(record)
		if !ok {
			continue
		}

		ts := tsFn(record)
		existing, seen := groups[key]
		if !seen {
			groups[key] = &group{record: record, ts: ts}
			keyOrder = append(keyOrder, key)
			continue
		}

		// 严格更晚才替换，保证并列时先遇到的记录胜出
		if ts != nil && (existing.ts == nil || ts.After(*existing.ts)) {
			existing.record = record
			existing.ts = ts
		}
	}

	result := make([]T, 0, len(keyOrder))
	for _, key := range keyOrder {
		result = append(result, groups[key].record)
	}
	return result
}
