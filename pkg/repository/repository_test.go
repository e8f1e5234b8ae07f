package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type row struct {
	ID     int64  `gorm:"primaryKey"`
	Bucket string `gorm:"type:text;not null;index"`
	Value  string `gorm:"type:text"`
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:generic_store?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&row{}))
	t.Cleanup(func() {
		conn.Migrator().DropTable(&row{})
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}

func TestStore(t *testing.T) {
	conn := openDB(t)
	store := ProvideStore[row](conn)
	ctx := context.Background()

	require.NoError(t, store.BatchCreate(ctx, nil))
	require.NoError(t, store.BatchCreate(ctx, []row{
		{ID: 3, Bucket: "a", Value: "third"},
		{ID: 1, Bucket: "a", Value: "first"},
		{ID: 2, Bucket: "b", Value: "other"},
	}))

	got, err := store.FindBy(ctx, "bucket", "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Value)
	assert.Equal(t, "third", got[1].Value)

	require.NoError(t, store.DeleteBy(ctx, "bucket", "a"))
	got, err = store.FindBy(ctx, "bucket", "a")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.FindBy(ctx, "bucket", "b")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStoreWithTrxRollsBack(t *testing.T) {
	conn := openDB(t)
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := conn.Transaction(func(tx *gorm.DB) error {
		if err := ProvideStore[row](conn).WithTrx(tx).BatchCreate(ctx, []row{{ID: 1, Bucket: "tx"}}); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	got, err := ProvideStore[row](conn).FindBy(ctx, "bucket", "tx")
	require.NoError(t, err)
	assert.Empty(t, got)
}
