/*
 * @module service/cleansing/dedup_test
 * @description 主键去重保留最新记录的单元测试
 * @architecture 单元测试
 * @stateFlow 构造重复记录组 -> ResolveLatest -> 断言胜出记录与顺序
 * @rules 验证严格晚于才替换、首次出现顺序稳定、无键记录被排除
 * @dependencies testing, github.com/stretchr/testify
 * @refs dedup.go
 */

package cleansing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dedupRow struct {
	ID        *string
	Name      string
	CreatedAt *time.Time
}

func timePtr(t time.Time) *time.Time { return &t }

func resolveRows(rows []dedupRow) []dedupRow {
	return ResolveLatest(rows,
		func(r dedupRow) (string, bool) {
			if r.ID == nil {
				return "", false
			}
			return *r.ID, true
		},
		func(r dedupRow) *time.Time { return r.CreatedAt })
}

func TestResolveLatestKeepsNewest(t *testing.T) {
	early := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []dedupRow{
		{ID: strPtr("1"), Name: "old", CreatedAt: timePtr(early)},
		{ID: strPtr("1"), Name: "new", CreatedAt: timePtr(late)},
		{ID: strPtr("2"), Name: "only", CreatedAt: timePtr(early)},
	}

	result := resolveRows(rows)
	require.Len(t, result, 2)
	assert.Equal(t, "new", result[0].Name)
	assert.Equal(t, "only", result[1].Name)
}

func TestResolveLatestTieKeepsFirstSeen(t *testing.T) {
	ts := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []dedupRow{
		{ID: strPtr("1"), Name: "first", CreatedAt: timePtr(ts)},
		{ID: strPtr("1"), Name: "second", CreatedAt: timePtr(ts)},
	}

	result := resolveRows(rows)
	require.Len(t, result, 1)
	// 时间戳相等时不替换，保留先出现的记录
	assert.Equal(t, "first", result[0].Name)
}

func TestResolveLatestNilTimestamp(t *testing.T) {
	ts := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []dedupRow{
		{ID: strPtr("1"), Name: "dated", CreatedAt: timePtr(ts)},
		{ID: strPtr("1"), Name: "undated", CreatedAt: nil},
	}

	result := resolveRows(rows)
	require.Len(t, result, 1)
	assert.Equal(t, "dated", result[0].Name)
}

func TestResolveLatestDropsKeylessRows(t *testing.T) {
	rows := []dedupRow{
		{ID: nil, Name: "orphan"},
		{ID: strPtr("1"), Name: "kept"},
	}

	result := resolveRows(rows)
	require.Len(t, result, 1)
	assert.Equal(t, "kept", result[0].Name)
}

func TestResolveLatestPreservesFirstSeenOrder(t *testing.T) {
	ts := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []dedupRow{
		{ID: strPtr("3"), Name: "c", CreatedAt: timePtr(ts)},
		{ID: strPtr("1"), Name: "a", CreatedAt: timePtr(ts)},
		{ID: strPtr("2"), Name: "b", CreatedAt: timePtr(ts)},
		{ID: strPtr("1"), Name: "a2", CreatedAt: timePtr(ts.AddDate(1, 0, 0))},
	}

	result := resolveRows(rows)
	require.Len(t, result, 3)
	assert.Equal(t, "c", result[0].Name)
	assert.Equal(t, "a2", result[1].Name)
	assert.Equal(t, "b", result[2].Name)
}
