package services

import (
	"testing"

	"gestion_backend/internal/models"
	"gestion_backend/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductServiceForTest(invRepo *fakeInventoryRepo) (ProductService, *fakeProductRepo) {
	productRepo := newFakeProductRepo()
	svc := NewProductService(productRepo, invRepo, fakeTxManager{}, pricing.NewCalculator(0.19))
	return svc, productRepo
}

func TestCreateProductDerivesPricing(t *testing.T) {
	invRepo := newFakeInventoryRepo(
		models.InventoryItem{ID: 1, Name: "Tela algodon", PurchasePrice: 3000, Quantity: 20},
	)
	svc, _ := newProductServiceForTest(invRepo)

	product, err := svc.CreateProduct(SaveProductRequest{
		Name:                "Polera estampada",
		DesiredProfitMargin: 35,
		Components: []ProductComponentRequest{
			{InventoryItemID: int64Ptr(1), Quantity: 2},
			{ItemName: "Hilo", Quantity: 1, PurchasePrice: 1500},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7500), product.TotalComponentCost)
	assert.Equal(t, int64(11538), product.NetSalePrice)
	assert.Equal(t, int64(2192), product.IvaAmount)
	assert.Equal(t, int64(13730), product.FinalSalePrice)
	assert.Len(t, product.Components, 2)
}

func TestCreateProductFreezesComponentValuesFromInventory(t *testing.T) {
	invRepo := newFakeInventoryRepo(
		models.InventoryItem{ID: 1, Name: "Tela algodon", PurchasePrice: 3000, Quantity: 20},
	)
	svc, _ := newProductServiceForTest(invRepo)

	// Client-supplied name and price for a referenced component are ignored.
	product, err := svc.CreateProduct(SaveProductRequest{
		Name: "Polera estampada",
		Components: []ProductComponentRequest{
			{InventoryItemID: int64Ptr(1), ItemName: "wrong", PurchasePrice: 1, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, product.Components, 1)
	assert.Equal(t, "Tela algodon", product.Components[0].ItemName)
	assert.Equal(t, int64(3000), product.Components[0].PurchasePrice)
}

func TestCreateProductManualComponentRequiresName(t *testing.T) {
	svc, _ := newProductServiceForTest(newFakeInventoryRepo())

	_, err := svc.CreateProduct(SaveProductRequest{
		Name: "Polera estampada",
		Components: []ProductComponentRequest{
			{Quantity: 1, PurchasePrice: 1000},
		},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateProductUnknownComponentReference(t *testing.T) {
	svc, _ := newProductServiceForTest(newFakeInventoryRepo())

	_, err := svc.CreateProduct(SaveProductRequest{
		Name: "Polera estampada",
		Components: []ProductComponentRequest{
			{InventoryItemID: int64Ptr(77), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateProductOutOfRangeMarginFallsBackToCost(t *testing.T) {
	svc, _ := newProductServiceForTest(newFakeInventoryRepo())

	product, err := svc.CreateProduct(SaveProductRequest{
		Name:                "Servicio bordado",
		DesiredProfitMargin: 100,
		Components: []ProductComponentRequest{
			{ItemName: "Hilo", Quantity: 1, PurchasePrice: 5000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), product.TotalComponentCost)
	assert.Equal(t, int64(5000), product.NetSalePrice)
}

func TestUpdateProductReplacesComponentsAndRecomputes(t *testing.T) {
	svc, productRepo := newProductServiceForTest(newFakeInventoryRepo())

	product, err := svc.CreateProduct(SaveProductRequest{
		Name:                "Polera estampada",
		DesiredProfitMargin: 35,
		Components: []ProductComponentRequest{
			{ItemName: "Tela", Quantity: 2, PurchasePrice: 3000},
		},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(product.ID, SaveProductRequest{
		Name:                "Polera estampada XL",
		DesiredProfitMargin: 50,
		Components: []ProductComponentRequest{
			{ItemName: "Tela premium", Quantity: 1, PurchasePrice: 8000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Polera estampada XL", updated.Name)
	assert.Equal(t, int64(8000), updated.TotalComponentCost)
	assert.Equal(t, int64(16000), updated.NetSalePrice)
	assert.Equal(t, int64(3040), updated.IvaAmount)
	assert.Equal(t, int64(19040), updated.FinalSalePrice)

	require.Len(t, updated.Components, 1)
	assert.Equal(t, "Tela premium", updated.Components[0].ItemName)
	assert.Len(t, productRepo.components[product.ID], 1)
}

func TestDeleteProductRemovesComponents(t *testing.T) {
	svc, productRepo := newProductServiceForTest(newFakeInventoryRepo())

	product, err := svc.CreateProduct(SaveProductRequest{
		Name: "Polera estampada",
		Components: []ProductComponentRequest{
			{ItemName: "Tela", Quantity: 1, PurchasePrice: 3000},
		},
	})
	require.NoError(t, err)

	err = svc.DeleteProduct(product.ID)
	require.NoError(t, err)

	assert.Empty(t, productRepo.products)
	assert.Empty(t, productRepo.components[product.ID])
}

func TestGetProductByIDNotFound(t *testing.T) {
	svc, _ := newProductServiceForTest(newFakeInventoryRepo())

	_, err := svc.GetProductByID(9)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
