package services

import (
	"errors"
	"fmt"

	"gestion_backend/internal/models"
	"gestion_backend/internal/repositories"
)

var (
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrNegativeStock         = errors.New("stock adjustment would drive quantity below zero")
)

// Stock movement types.
const (
	MovementTypePurchase           = "purchase"
	MovementTypeSale               = "sale"
	MovementTypeAdjustment         = "adjustment"
	MovementTypeReturnCancellation = "return_cancellation"
	MovementTypeReturnDeletion     = "return_deletion"
)

// CreateInventoryItemRequest is used for creating a new inventory item.
type CreateInventoryItemRequest struct {
	Name          string  `json:"name" binding:"required"`
	Quantity      int     `json:"quantity" binding:"gte=0"`
	PurchasePrice int64   `json:"purchase_price" binding:"gte=0"`
	Description   *string `json:"description"`
	SKU           *string `json:"sku"`
	Supplier      *string `json:"supplier"`
	Size          *string `json:"size"`
}

// AdjustStockRequest changes an item's quantity by a signed delta.
type AdjustStockRequest struct {
	QuantityChange int     `json:"quantity_change" binding:"required"`
	Reason         *string `json:"reason"`
}

// InventoryService manages inventory items and manual stock adjustments.
type InventoryService interface {
	CreateItem(req CreateInventoryItemRequest) (*models.InventoryItem, error)
	GetItemByID(id int64) (*models.InventoryItem, error)
	GetItems(name *string, page, pageSize int) ([]models.InventoryItem, int, error)
	UpdateItem(item *models.InventoryItem) (*models.InventoryItem, error)
	DeleteItem(id int64) error
	AdjustStock(itemID int64, req AdjustStockRequest, userID *int64) (*models.InventoryItem, error)
	GetMovements(filters models.MovementFilters) ([]models.StockMovement, int, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	movementRepo  repositories.MovementRepository
	tx            repositories.TxManager
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(ir repositories.InventoryRepository, mr repositories.MovementRepository, tx repositories.TxManager) InventoryService {
	return &inventoryService{inventoryRepo: ir, movementRepo: mr, tx: tx}
}

func (s *inventoryService) CreateItem(req CreateInventoryItemRequest) (*models.InventoryItem, error) {
	item := models.InventoryItem{
		Name:          req.Name,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		Description:   req.Description,
		SKU:           req.SKU,
		Supplier:      req.Supplier,
		Size:          req.Size,
	}

	err := s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		itemID, repoErr := s.inventoryRepo.CreateItem(executor, &item)
		if repoErr != nil {
			return fmt.Errorf("failed to create inventory item: %w", repoErr)
		}
		item.ID = itemID
		if item.Quantity == 0 {
			return nil
		}
		movement := models.StockMovement{
			InventoryItemID: itemID,
			MovementType:    MovementTypePurchase,
			QuantityChanged: item.Quantity,
			Reason:          strPtr("Initial stock"),
		}
		if _, repoErr := s.movementRepo.CreateMovement(executor, &movement); repoErr != nil {
			return fmt.Errorf("failed to record initial stock movement: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetItemByID(item.ID)
}

func (s *inventoryService) GetItemByID(id int64) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItemByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) GetItems(name *string, page, pageSize int) ([]models.InventoryItem, int, error) {
	items, totalCount, err := s.inventoryRepo.GetItems(name, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get inventory items: %w", err)
	}
	return items, totalCount, nil
}

func (s *inventoryService) UpdateItem(item *models.InventoryItem) (*models.InventoryItem, error) {
	if item.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", ErrValidation)
	}
	if item.PurchasePrice < 0 {
		return nil, fmt.Errorf("%w: purchase price must be non-negative", ErrValidation)
	}

	err := s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		if repoErr := s.inventoryRepo.UpdateItem(executor, item); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return ErrInventoryItemNotFound
			}
			return fmt.Errorf("failed to update inventory item: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetItemByID(item.ID)
}

func (s *inventoryService) DeleteItem(id int64) error {
	return s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		if repoErr := s.inventoryRepo.DeleteItem(executor, id); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return ErrInventoryItemNotFound
			}
			return fmt.Errorf("failed to delete inventory item: %w", repoErr)
		}
		return nil
	})
}

func (s *inventoryService) AdjustStock(itemID int64, req AdjustStockRequest, userID *int64) (*models.InventoryItem, error) {
	err := s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		if req.QuantityChange < 0 {
			rows, repoErr := s.inventoryRepo.DecrementStock(executor, itemID, -req.QuantityChange)
			if repoErr != nil {
				return fmt.Errorf("failed to adjust stock: %w", repoErr)
			}
			if rows == 0 {
				if _, getErr := s.inventoryRepo.GetItemByID(itemID); errors.Is(getErr, repositories.ErrNotFound) {
					return ErrInventoryItemNotFound
				}
				return ErrNegativeStock
			}
		} else {
			if repoErr := s.inventoryRepo.IncrementStock(executor, itemID, req.QuantityChange); repoErr != nil {
				if errors.Is(repoErr, repositories.ErrNotFound) {
					return ErrInventoryItemNotFound
				}
				return fmt.Errorf("failed to adjust stock: %w", repoErr)
			}
		}

		movement := models.StockMovement{
			InventoryItemID: itemID,
			UserID:          userID,
			MovementType:    MovementTypeAdjustment,
			QuantityChanged: req.QuantityChange,
			Reason:          req.Reason,
		}
		if _, repoErr := s.movementRepo.CreateMovement(executor, &movement); repoErr != nil {
			return fmt.Errorf("failed to record stock adjustment: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetItemByID(itemID)
}

func (s *inventoryService) GetMovements(filters models.MovementFilters) ([]models.StockMovement, int, error) {
	movements, totalCount, err := s.movementRepo.GetMovements(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get stock movements: %w", err)
	}
	return movements, totalCount, nil
}
