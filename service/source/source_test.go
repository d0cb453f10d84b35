/*
 * @module service/source/source_test
 * @description GORM原始记录源读取测试
 * @architecture 集成测试 - 内存sqlite
 * @dependencies testing, github.com/stretchr/testify, silver-service/testutil
 * @refs source.go
 */

package source

import (
	"context"
	"testing"

	"silver-service/service/meta"
	"silver-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchReturnsDeclaredFields(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	tdb.CreateRawCustomer(11000, testutil.Date(2011, 1, 1))
	tdb.CreateRawCustomer(11001, testutil.Date(2011, 2, 1))

	rows, err := NewGormRawSource(tdb.DB).Fetch(context.Background(), meta.EntityCRMCustomer)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	schema, ok := meta.RawSchemaFor(meta.EntityCRMCustomer)
	require.True(t, ok)
	for _, field := range schema.Fields {
		_, exists := rows[0][field]
		assert.True(t, exists, "缺失字段 %s", field)
	}
}

func TestFetchEmptyTable(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	rows, err := NewGormRawSource(tdb.DB).Fetch(context.Background(), meta.EntityERPLocation)
	require.NoError(t, err)
	assert.Len(t, rows, 0)
}

func TestFetchUnknownEntity(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	_, err := NewGormRawSource(tdb.DB).Fetch(context.Background(), "bogus")
	require.Error(t, err)
}
