/*
 * @module service/sink/sink_test
 * @description GORM汇端整表替换语义测试
 * @architecture 集成测试 - 内存sqlite
 * @stateFlow 发布快照 -> 再次发布 -> 断言旧快照被完全取代
 * @dependencies testing, github.com/stretchr/testify, silver-service/testutil
 * @refs sink.go
 */

package sink

import (
	"context"
	"testing"

	"silver-service/service/meta"
	"silver-service/service/models"
	"silver-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReplacesSnapshot(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	s := NewGormCleansedSink(tdb.DB)
	ctx := context.Background()

	first := []models.CleansedERPCategory{
		{ID: "AC_HE", Category: "Accessories", Subcategory: "Helmets", MaintenanceFlag: "No"},
		{ID: "BI_MT", Category: "Bikes", Subcategory: "Mountain", MaintenanceFlag: "Yes"},
	}
	require.NoError(t, s.Publish(ctx, meta.EntityERPCategory, first))

	second := []models.CleansedERPCategory{
		{ID: "CL_GL", Category: "Clothing", Subcategory: "Gloves", MaintenanceFlag: "No"},
	}
	require.NoError(t, s.Publish(ctx, meta.EntityERPCategory, second))

	var rows []models.CleansedERPCategory
	require.NoError(t, tdb.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "CL_GL", rows[0].ID)
}

func TestPublishEmptySnapshotClearsTable(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	s := NewGormCleansedSink(tdb.DB)
	ctx := context.Background()

	require.NoError(t, s.Publish(ctx, meta.EntityERPLocation, []models.CleansedERPLocation{
		{CID: "AW00011000", Country: "Germany"},
	}))
	require.NoError(t, s.Publish(ctx, meta.EntityERPLocation, []models.CleansedERPLocation{}))

	var count int64
	tdb.DB.Model(&models.CleansedERPLocation{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPublishUnknownEntity(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	err := NewGormCleansedSink(tdb.DB).Publish(context.Background(), "bogus", []models.CleansedCustomer{})
	require.Error(t, err)
}

func TestPublishRejectsNonSlice(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	err := NewGormCleansedSink(tdb.DB).Publish(context.Background(),
		meta.EntityCRMCustomer, models.CleansedCustomer{})
	require.Error(t, err)
}
