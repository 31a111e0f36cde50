package services

import (
	"testing"

	"gestion_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryServiceForTest(invRepo *fakeInventoryRepo) (InventoryService, *fakeMovementRepo) {
	movementRepo := &fakeMovementRepo{}
	svc := NewInventoryService(invRepo, movementRepo, fakeTxManager{})
	return svc, movementRepo
}

func TestCreateItemRecordsInitialStockMovement(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	svc, movementRepo := newInventoryServiceForTest(invRepo)

	item, err := svc.CreateItem(CreateInventoryItemRequest{
		Name:          "Tela algodon",
		Quantity:      15,
		PurchasePrice: 3000,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, item.Quantity)
	purchases := movementRepo.byType(MovementTypePurchase)
	require.Len(t, purchases, 1)
	assert.Equal(t, item.ID, purchases[0].InventoryItemID)
	assert.Equal(t, 15, purchases[0].QuantityChanged)
}

func TestCreateItemWithZeroQuantitySkipsMovement(t *testing.T) {
	svc, movementRepo := newInventoryServiceForTest(newFakeInventoryRepo())

	_, err := svc.CreateItem(CreateInventoryItemRequest{Name: "Hilo", Quantity: 0})
	require.NoError(t, err)

	assert.Empty(t, movementRepo.movements)
}

func TestUpdateItemRejectsNegativeQuantity(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Tela", Quantity: 5})
	svc, _ := newInventoryServiceForTest(invRepo)

	_, err := svc.UpdateItem(&models.InventoryItem{ID: 1, Name: "Tela", Quantity: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdjustStockPositiveDelta(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Tela", Quantity: 5})
	svc, movementRepo := newInventoryServiceForTest(invRepo)

	item, err := svc.AdjustStock(1, AdjustStockRequest{QuantityChange: 7, Reason: strPtr("Reposicion")}, nil)
	require.NoError(t, err)

	assert.Equal(t, 12, item.Quantity)
	adjustments := movementRepo.byType(MovementTypeAdjustment)
	require.Len(t, adjustments, 1)
	assert.Equal(t, 7, adjustments[0].QuantityChanged)
}

func TestAdjustStockNegativeDelta(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Tela", Quantity: 5})
	svc, _ := newInventoryServiceForTest(invRepo)

	item, err := svc.AdjustStock(1, AdjustStockRequest{QuantityChange: -3}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, item.Quantity)
}

func TestAdjustStockRejectsDriveBelowZero(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Tela", Quantity: 5})
	svc, movementRepo := newInventoryServiceForTest(invRepo)

	_, err := svc.AdjustStock(1, AdjustStockRequest{QuantityChange: -8}, nil)
	require.ErrorIs(t, err, ErrNegativeStock)

	assert.Equal(t, 5, invRepo.quantityOf(1))
	assert.Empty(t, movementRepo.movements)
}

func TestAdjustStockUnknownItem(t *testing.T) {
	svc, _ := newInventoryServiceForTest(newFakeInventoryRepo())

	_, err := svc.AdjustStock(9, AdjustStockRequest{QuantityChange: -1}, nil)
	assert.ErrorIs(t, err, ErrInventoryItemNotFound)
}
