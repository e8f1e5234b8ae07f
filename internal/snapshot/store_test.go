package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	billingdomain "github.com/smallbiznis/planshift/internal/billing/domain"
	billingrepository "github.com/smallbiznis/planshift/internal/billing/repository"
	customerdomain "github.com/smallbiznis/planshift/internal/customer/domain"
	customerrepository "github.com/smallbiznis/planshift/internal/customer/repository"
	usagedomain "github.com/smallbiznis/planshift/internal/usage/domain"
	usagerepository "github.com/smallbiznis/planshift/internal/usage/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:snapshot_store?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	models := []any{&Meta{}, &customerdomain.Customer{}, &usagedomain.Record{}, &billingdomain.LineItem{}}
	require.NoError(t, conn.AutoMigrate(models...))
	t.Cleanup(func() {
		conn.Migrator().DropTable(models...)
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewStore(StoreParams{
		DB:           conn,
		Log:          zaptest.NewLogger(t),
		GenID:        node,
		CustomerRepo: customerrepository.Provide(),
		UsageRepo:    usagerepository.Provide(),
		BillingRepo:  billingrepository.Provide(),
	})
}

func TestStoreImportAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap, err := Load(fixtureDir)
	require.NoError(t, err)

	id, err := store.Import(ctx, snap)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, loaded.ID)
	assert.Equal(t, fixtureDir, loaded.Source)

	require.Len(t, loaded.Customers, 2)
	assert.Equal(t, "cust-1", loaded.Customers[0].ExternalID)
	assert.Equal(t, "cus_1", loaded.Customers[0].BillingRef())
	require.Len(t, loaded.Usage, 3)
	assert.Equal(t, []string{"gpt-4o", "chatgpt"}, []string(loaded.Usage[0].Capabilities))
	require.Len(t, loaded.LineItems, 2)
	assert.Equal(t, int64(24000), loaded.LineItems[0].MonthlyAmountCents)

	a := Inputs(snap)
	b := Inputs(loaded)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Customer.ExternalID, b[i].Customer.ExternalID)
		assert.Len(t, b[i].Usage, len(a[i].Usage))
		assert.Len(t, b[i].LineItems, len(a[i].LineItems))
	}
}

func TestStoreLoadLatest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx, "")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	snap, err := Load(fixtureDir)
	require.NoError(t, err)

	first, err := store.Import(ctx, snap)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := store.Import(ctx, snap)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	latest, err := store.Load(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, second, latest.ID)
	assert.Len(t, latest.Customers, 2)

	_, err = store.Load(ctx, "01J0000000000000000000000")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestStoreImportRejectsDuplicateCustomers(t *testing.T) {
	store := newTestStore(t)

	snap, err := Load(fixtureDir)
	require.NoError(t, err)
	snap.Customers = append(snap.Customers, snap.Customers[0])

	_, err = store.Import(context.Background(), snap)
	assert.ErrorIs(t, err, customerdomain.ErrDuplicateID)

	_, err = store.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
