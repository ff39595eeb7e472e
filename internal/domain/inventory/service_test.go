package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edr/internal/core/apperror"
	"edr/internal/core/tx"
	"edr/internal/domain/audit"
	"edr/internal/domain/inventory"
	"edr/internal/infrastructure/storage/memstore"
)

func newTestService() *inventory.Service {
	return inventory.NewService(memstore.NewInventoryRepo(), tx.NopManager{}, audit.NopTrail{})
}

func createItem(t *testing.T, svc *inventory.Service, name string, qty, minQty float64) *inventory.Item {
	t.Helper()
	item := inventory.NewItem(name)
	item.Quantity = qty
	item.MinQuantity = minQty
	require.NoError(t, svc.Create(context.Background(), item))
	return item
}

func TestCreate_DefaultsUnit(t *testing.T) {
	svc := newTestService()
	item := &inventory.Item{Name: "Disjoncteur 16A"}

	require.NoError(t, svc.Create(context.Background(), item))
	assert.Equal(t, "pièce", item.Unit)
}

func TestAdjustStock_PositiveDelta(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	item := createItem(t, svc, "Badge RFID", 100, 50)

	got, err := svc.AdjustStock(ctx, item.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.Quantity)

	stored, err := svc.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, stored.Quantity)
}

func TestAdjustStock_ExactDepletion(t *testing.T) {
	svc := newTestService()
	item := createItem(t, svc, "Câble RJ45", 6, 4)

	got, err := svc.AdjustStock(context.Background(), item.ID, -6)
	require.NoError(t, err)
	assert.Zero(t, got.Quantity)
}

func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	svc := newTestService()
	item := createItem(t, svc, "Caméra IP", 3, 5)

	_, err := svc.AdjustStock(context.Background(), item.ID, -4)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// quantity untouched after the rejection
	stored, err := svc.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, stored.Quantity)
}

func TestAdjustStock_ArchivedItemRejected(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	item := createItem(t, svc, "Ancien modèle", 10, 2)
	require.NoError(t, svc.Archive(ctx, item.ID))

	_, err := svc.AdjustStock(ctx, item.ID, 5)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeArchived, appErr.Code)
}

func TestLowStock_ThresholdIsInclusive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	createItem(t, svc, "Au-dessus", 10, 5)
	atThreshold := createItem(t, svc, "Au seuil", 5, 5)
	below := createItem(t, svc, "En dessous", 2, 5)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)

	require.Len(t, low, 2)
	ids := []int64{low[0].ID, low[1].ID}
	assert.Contains(t, ids, atThreshold.ID)
	assert.Contains(t, ids, below.ID)
}

func TestLowStock_IgnoresArchivedItems(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	item := createItem(t, svc, "Obsolète", 0, 5)
	require.NoError(t, svc.Archive(ctx, item.ID))

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)
}
