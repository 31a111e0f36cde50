package services

import (
	"errors"
	"fmt"

	"gestion_backend/internal/models"
	"gestion_backend/internal/pricing"
	"gestion_backend/internal/repositories"
)

var ErrProductNotFound = errors.New("sellable product not found")

// ProductComponentRequest is one component line of a sellable product. When
// InventoryItemID is set, item name and purchase price are resolved from the
// referenced inventory item at assembly time and frozen; otherwise both must
// be supplied manually.
type ProductComponentRequest struct {
	InventoryItemID *int64 `json:"inventory_item_id"`
	ItemName        string `json:"item_name"`
	Quantity        int    `json:"quantity" binding:"required,gt=0"`
	PurchasePrice   int64  `json:"purchase_price" binding:"gte=0"`
}

// SaveProductRequest is used for creating and for fully replacing a sellable
// product. Derived pricing fields are never accepted from the client; they
// are recomputed from the components and margin before persisting.
type SaveProductRequest struct {
	Name                string                    `json:"name" binding:"required"`
	Description         *string                   `json:"description"`
	DesiredProfitMargin float64                   `json:"desired_profit_margin"`
	Components          []ProductComponentRequest `json:"components" binding:"dive"`
}

// ProductService manages sellable products and their derived pricing.
type ProductService interface {
	CreateProduct(req SaveProductRequest) (*models.SellableProduct, error)
	GetProductByID(id int64) (*models.SellableProduct, error)
	GetProducts(page, pageSize int) ([]models.SellableProduct, int, error)
	UpdateProduct(id int64, req SaveProductRequest) (*models.SellableProduct, error)
	DeleteProduct(id int64) error
}

type productService struct {
	productRepo   repositories.ProductRepository
	inventoryRepo repositories.InventoryRepository
	tx            repositories.TxManager
	calc          pricing.Calculator
}

// NewProductService creates a new instance of ProductService.
func NewProductService(pr repositories.ProductRepository, ir repositories.InventoryRepository, tx repositories.TxManager, calc pricing.Calculator) ProductService {
	return &productService{productRepo: pr, inventoryRepo: ir, tx: tx, calc: calc}
}

// resolveComponents freezes each component's name and price: from the
// referenced inventory item when the weak reference is present, from the
// request otherwise.
func (s *productService) resolveComponents(reqs []ProductComponentRequest) ([]models.ProductComponent, error) {
	components := make([]models.ProductComponent, 0, len(reqs))
	for _, compReq := range reqs {
		component := models.ProductComponent{
			InventoryItemID: compReq.InventoryItemID,
			ItemName:        compReq.ItemName,
			Quantity:        compReq.Quantity,
			PurchasePrice:   compReq.PurchasePrice,
		}
		if compReq.InventoryItemID != nil {
			invItem, err := s.inventoryRepo.GetItemByID(*compReq.InventoryItemID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return nil, fmt.Errorf("%w: inventory item %d does not exist", ErrValidation, *compReq.InventoryItemID)
				}
				return nil, fmt.Errorf("failed to resolve component item %d: %w", *compReq.InventoryItemID, err)
			}
			component.ItemName = invItem.Name
			component.PurchasePrice = invItem.PurchasePrice
		} else if component.ItemName == "" {
			return nil, fmt.Errorf("%w: component item name is required when no inventory item is referenced", ErrValidation)
		}
		components = append(components, component)
	}
	return components, nil
}

func (s *productService) CreateProduct(req SaveProductRequest) (*models.SellableProduct, error) {
	components, err := s.resolveComponents(req.Components)
	if err != nil {
		return nil, err
	}

	derived := s.calc.ProductPricing(components, req.DesiredProfitMargin)
	product := models.SellableProduct{
		Name:                req.Name,
		Description:         req.Description,
		DesiredProfitMargin: req.DesiredProfitMargin,
		TotalComponentCost:  derived.TotalComponentCost,
		NetSalePrice:        derived.NetSalePrice,
		IvaAmount:           derived.IvaAmount,
		FinalSalePrice:      derived.FinalSalePrice,
	}

	err = s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		productID, repoErr := s.productRepo.CreateProduct(executor, &product)
		if repoErr != nil {
			return fmt.Errorf("failed to create product: %w", repoErr)
		}
		product.ID = productID
		for i := range components {
			components[i].ProductID = productID
			if _, repoErr := s.productRepo.CreateComponent(executor, &components[i]); repoErr != nil {
				return fmt.Errorf("failed to create product component %s: %w", components[i].ItemName, repoErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetProductByID(product.ID)
}

func (s *productService) GetProductByID(id int64) (*models.SellableProduct, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	components, err := s.productRepo.GetComponentsByProductID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product components: %w", err)
	}
	product.Components = components
	return product, nil
}

func (s *productService) GetProducts(page, pageSize int) ([]models.SellableProduct, int, error) {
	products, totalCount, err := s.productRepo.GetProducts(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	return products, totalCount, nil
}

func (s *productService) UpdateProduct(id int64, req SaveProductRequest) (*models.SellableProduct, error) {
	if _, err := s.GetProductByID(id); err != nil {
		return nil, err
	}

	components, err := s.resolveComponents(req.Components)
	if err != nil {
		return nil, err
	}

	derived := s.calc.ProductPricing(components, req.DesiredProfitMargin)
	product := models.SellableProduct{
		ID:                  id,
		Name:                req.Name,
		Description:         req.Description,
		DesiredProfitMargin: req.DesiredProfitMargin,
		TotalComponentCost:  derived.TotalComponentCost,
		NetSalePrice:        derived.NetSalePrice,
		IvaAmount:           derived.IvaAmount,
		FinalSalePrice:      derived.FinalSalePrice,
	}

	err = s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		if repoErr := s.productRepo.UpdateProduct(executor, &product); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("failed to update product: %w", repoErr)
		}
		// Components are replaced wholesale; they carry frozen values, so
		// there is nothing to merge.
		if _, repoErr := s.productRepo.DeleteComponentsByProductID(executor, id); repoErr != nil {
			return fmt.Errorf("failed to clear product components: %w", repoErr)
		}
		for i := range components {
			components[i].ProductID = id
			if _, repoErr := s.productRepo.CreateComponent(executor, &components[i]); repoErr != nil {
				return fmt.Errorf("failed to recreate product component %s: %w", components[i].ItemName, repoErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetProductByID(id)
}

func (s *productService) DeleteProduct(id int64) error {
	return s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		if _, repoErr := s.productRepo.DeleteComponentsByProductID(executor, id); repoErr != nil {
			return fmt.Errorf("failed to delete product components: %w", repoErr)
		}
		if repoErr := s.productRepo.DeleteProduct(executor, id); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("failed to delete product: %w", repoErr)
		}
		return nil
	})
}
