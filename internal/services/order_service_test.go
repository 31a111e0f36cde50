package services

import (
	"testing"

	"gestion_backend/internal/models"
	"gestion_backend/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderServiceForTest(invRepo *fakeInventoryRepo) (OrderService, *fakeOrderRepo, *fakeMovementRepo) {
	orderRepo := newFakeOrderRepo()
	movementRepo := &fakeMovementRepo{}
	svc := NewOrderService(orderRepo, invRepo, movementRepo, fakeTxManager{}, pricing.NewCalculator(0.19))
	return svc, orderRepo, movementRepo
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestCreateOrderComputesTotalsAndReservesStock(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Polera blanca", Quantity: 10})
	svc, _, movementRepo := newOrderServiceForTest(invRepo)

	order, err := svc.CreateOrder(CreateOrderRequest{
		CustomerName: strPtr("Carla"),
		Items: []CreateOrderItemRequest{
			{ProductID: int64Ptr(1), ProductName: "Polera blanca", Quantity: 2, UnitPriceWithVat: 11900},
			{ProductName: "Bordado personalizado", Quantity: 1, UnitPriceWithVat: 5000},
		},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusReceived, order.Status)
	assert.Equal(t, int64(28800), order.TotalAmount)
	assert.Equal(t, int64(24202), order.TotalNetAmount)
	assert.Equal(t, int64(4598), order.TotalIvaAmount)

	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(10000), order.Items[0].NetUnitPrice)
	assert.Equal(t, int64(4202), order.Items[1].NetUnitPrice)

	// Only the line referencing an inventory item reserves stock.
	assert.Equal(t, 8, invRepo.quantityOf(1))
	sales := movementRepo.byType(MovementTypeSale)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(1), sales[0].InventoryItemID)
	assert.Equal(t, -2, sales[0].QuantityChanged)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Polera blanca", Quantity: 1})
	svc, orderRepo, movementRepo := newOrderServiceForTest(invRepo)

	_, err := svc.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ProductID: int64Ptr(1), ProductName: "Polera blanca", Quantity: 2, UnitPriceWithVat: 11900},
		},
	}, nil)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Stock insuficiente para Polera blanca")

	// Nothing was written.
	assert.Equal(t, 1, invRepo.quantityOf(1))
	assert.Empty(t, orderRepo.orders)
	assert.Empty(t, movementRepo.movements)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	svc, _, _ := newOrderServiceForTest(newFakeInventoryRepo())

	_, err := svc.CreateOrder(CreateOrderRequest{}, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCreateOrderRejectsInvalidInitialStatus(t *testing.T) {
	svc, _, _ := newOrderServiceForTest(newFakeInventoryRepo())

	_, err := svc.CreateOrder(CreateOrderRequest{
		Status: StatusCompleted,
		Items: []CreateOrderItemRequest{
			{ProductName: "Bordado", Quantity: 1, UnitPriceWithVat: 5000},
		},
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestCreateOrderRejectsUnknownInventoryReference(t *testing.T) {
	svc, _, _ := newOrderServiceForTest(newFakeInventoryRepo())

	_, err := svc.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ProductID: int64Ptr(99), ProductName: "Polera", Quantity: 1, UnitPriceWithVat: 11900},
		},
	}, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderQuotationReservesStock(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Polera blanca", Quantity: 5})
	svc, _, _ := newOrderServiceForTest(invRepo)

	order, err := svc.CreateOrder(CreateOrderRequest{
		Status: StatusQuotationSent,
		Items: []CreateOrderItemRequest{
			{ProductID: int64Ptr(1), ProductName: "Polera blanca", Quantity: 3, UnitPriceWithVat: 11900},
		},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusQuotationSent, order.Status)
	assert.Equal(t, 2, invRepo.quantityOf(1))
}

func TestUpdateOrderCancellingQuotationReleasesStock(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Polera blanca", Quantity: 5})
	svc, _, movementRepo := newOrderServiceForTest(invRepo)

	order, err := svc.CreateOrder(CreateOrderRequest{
		Status: StatusQuotationSent,
		Items: []CreateOrderItemRequest{
			{ProductID: int64Ptr(1), ProductName: "Polera blanca", Quantity: 3, UnitPriceWithVat: 11900},
		},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, invRepo.quantityOf(1))

	updated, err := svc.UpdateOrder(order.ID, UpdateOrderRequest{Status: strPtr(StatusCancelled)}, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, updated.Status)
	assert.Equal(t, 5, invRepo.quantityOf(1))
	returns := movementRepo.byType(MovementTypeReturnCancellation)
	require.Len(t, returns, 1)
	assert.Equal(t, 3, returns[0].QuantityChanged)
}

func TestUpdateOrderCompletionKeepsStock(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Polera blanca", Quantity: 5})
	svc, _, movementRepo := newOrderServiceForTest(invRepo)

	order, err := svc.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ProductID: int64Ptr(1), ProductName: "Polera blanca", Quantity: 2, UnitPriceWithVat: 11900},
		},
	}, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(order.ID, UpdateOrderRequest{Status: strPtr(StatusCompleted)}, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, 3, invRepo.quantityOf(1))
	assert.Empty(t, movementRepo.byType(MovementTypeReturnCancellation))
}

func TestUpdateOrderCancellingReceivedOrderKeepsStock(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Polera blanca", Quantity: 5})
	svc, _, movementRepo := newOrderServiceForTest(invRepo)

	order, err := svc.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ProductID: int64Ptr(1), ProductName: "Polera blanca", Quantity: 2, UnitPriceWithVat: 11900},
		},
	}, nil)
	require.NoError(t, err)

	// Stock release only applies to the quotation_sent -> cancelled transition.
	_, err = svc.UpdateOrder(order.ID, UpdateOrderRequest{Status: strPtr(StatusCancelled)}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, invRepo.quantityOf(1))
	assert.Empty(t, movementRepo.byType(MovementTypeReturnCancellation))
}

func TestUpdateOrderRejectsUnknownStatus(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	svc, orderRepo, _ := newOrderServiceForTest(invRepo)

	orderID, err := orderRepo.CreateOrder(nil, &models.Order{Status: StatusReceived})
	require.NoError(t, err)

	_, err = svc.UpdateOrder(orderID, UpdateOrderRequest{Status: strPtr("entregado")}, nil)
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestDeleteOrderQuotationRestoresStock(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Polera blanca", Quantity: 5})
	svc, orderRepo, movementRepo := newOrderServiceForTest(invRepo)

	order, err := svc.CreateOrder(CreateOrderRequest{
		Status: StatusQuotationSent,
		Items: []CreateOrderItemRequest{
			{ProductID: int64Ptr(1), ProductName: "Polera blanca", Quantity: 3, UnitPriceWithVat: 11900},
		},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, invRepo.quantityOf(1))

	err = svc.DeleteOrder(order.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, invRepo.quantityOf(1))
	assert.Empty(t, orderRepo.orders)
	assert.Empty(t, orderRepo.orderItems[order.ID])
	returns := movementRepo.byType(MovementTypeReturnDeletion)
	require.Len(t, returns, 1)
	assert.Equal(t, 3, returns[0].QuantityChanged)
}

func TestDeleteOrderCompletedLeavesStock(t *testing.T) {
	invRepo := newFakeInventoryRepo(models.InventoryItem{ID: 1, Name: "Polera blanca", Quantity: 5})
	svc, orderRepo, movementRepo := newOrderServiceForTest(invRepo)

	order, err := svc.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ProductID: int64Ptr(1), ProductName: "Polera blanca", Quantity: 2, UnitPriceWithVat: 11900},
		},
	}, nil)
	require.NoError(t, err)
	_, err = svc.UpdateOrder(order.ID, UpdateOrderRequest{Status: strPtr(StatusCompleted)}, nil)
	require.NoError(t, err)

	err = svc.DeleteOrder(order.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, invRepo.quantityOf(1))
	assert.Empty(t, orderRepo.orders)
	assert.Empty(t, movementRepo.byType(MovementTypeReturnDeletion))
}

func TestDeleteOrderNotFound(t *testing.T) {
	svc, _, _ := newOrderServiceForTest(newFakeInventoryRepo())

	err := svc.DeleteOrder(42, nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
