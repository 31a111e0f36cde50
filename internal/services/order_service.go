package services

import (
	"errors"
	"fmt"
	"time"

	"gestion_backend/internal/models"
	"gestion_backend/internal/pricing"
	"gestion_backend/internal/repositories"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrEmptyOrder         = errors.New("order must contain at least one item")

	// ErrInsufficientStock is wrapped with the offending product name so the
	// handler can surface "Stock insuficiente para <producto>".
	ErrInsufficientStock = errors.New("Stock insuficiente")
)

// Canonical order status vocabulary. quotation_sent reserves stock on entry
// and releases it on cancellation or deletion; completed and cancelled are
// terminal.
const (
	StatusReceived      = "received"
	StatusInProgress    = "in_progress"
	StatusCompleted     = "completed"
	StatusCancelled     = "cancelled"
	StatusQuotationSent = "quotation_sent"
)

// CreateOrderItemRequest is one requested order line. ProductID is an
// optional weak reference to an inventory item; only referenced lines
// participate in stock reservation.
type CreateOrderItemRequest struct {
	ProductID        *int64 `json:"product_id"`
	ProductName      string `json:"product_name" binding:"required"`
	Quantity         int    `json:"quantity" binding:"required,gt=0"`
	UnitPriceWithVat int64  `json:"unit_price_with_vat" binding:"gte=0"`
}

// CreateOrderRequest is used for creating a new order or quotation.
// Totals are recomputed server-side from the items; any client-supplied
// totals are ignored.
type CreateOrderRequest struct {
	CustomerName *string                  `json:"customer_name"`
	Rut          *string                  `json:"rut"`
	Telefono     *string                  `json:"telefono"`
	Description  *string                  `json:"description"`
	Status       string                   `json:"status"`
	Items        []CreateOrderItemRequest `json:"items" binding:"required,dive"`
}

// UpdateOrderRequest carries a partial order update. Nil fields are left unchanged.
type UpdateOrderRequest struct {
	CustomerName *string `json:"customer_name"`
	Rut          *string `json:"rut"`
	Telefono     *string `json:"telefono"`
	Description  *string `json:"description"`
	Status       *string `json:"status"`
}

// OrderService drives the quotation/order lifecycle, including stock
// reservation and release.
type OrderService interface {
	CreateOrder(req CreateOrderRequest, userID *int64) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	UpdateOrder(orderID int64, req UpdateOrderRequest, userID *int64) (*models.Order, error)
	DeleteOrder(orderID int64, userID *int64) error
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	inventoryRepo repositories.InventoryRepository
	movementRepo  repositories.MovementRepository
	tx            repositories.TxManager
	calc          pricing.Calculator
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	ir repositories.InventoryRepository,
	mr repositories.MovementRepository,
	tx repositories.TxManager,
	calc pricing.Calculator,
) OrderService {
	return &orderService{
		orderRepo:     or,
		inventoryRepo: ir,
		movementRepo:  mr,
		tx:            tx,
		calc:          calc,
	}
}

func (s *orderService) CreateOrder(req CreateOrderRequest, userID *int64) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	status := req.Status
	if status == "" {
		status = StatusReceived
	}
	if status != StatusReceived && status != StatusQuotationSent {
		return nil, fmt.Errorf("%w: %s is not a valid initial status", ErrInvalidOrderStatus, status)
	}

	// Validation pass: every referenced inventory item must cover the
	// requested quantity before anything is written.
	for _, itemReq := range req.Items {
		if itemReq.ProductID == nil {
			continue
		}
		invItem, err := s.inventoryRepo.GetItemByID(*itemReq.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: inventory item %d for %s does not exist", ErrValidation, *itemReq.ProductID, itemReq.ProductName)
			}
			return nil, fmt.Errorf("failed to check stock for %s: %w", itemReq.ProductName, err)
		}
		if invItem.Quantity < itemReq.Quantity {
			return nil, fmt.Errorf("%w para %s", ErrInsufficientStock, itemReq.ProductName)
		}
	}

	var totalAmount int64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		netUnit, _ := s.calc.SplitGross(itemReq.UnitPriceWithVat)
		items = append(items, models.OrderItem{
			InventoryItemID:  itemReq.ProductID,
			ProductName:      itemReq.ProductName,
			Quantity:         itemReq.Quantity,
			UnitPriceWithVat: itemReq.UnitPriceWithVat,
			NetUnitPrice:     netUnit,
		})
		totalAmount += itemReq.UnitPriceWithVat * int64(itemReq.Quantity)
	}
	totalNet, totalIva := s.calc.SplitGross(totalAmount)

	order := models.Order{
		OrderDate:      time.Now(),
		CustomerName:   req.CustomerName,
		Rut:            req.Rut,
		Telefono:       req.Telefono,
		Status:         status,
		TotalNetAmount: totalNet,
		TotalIvaAmount: totalIva,
		TotalAmount:    totalAmount,
		Description:    req.Description,
	}

	err := s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		orderID, repoErr := s.orderRepo.CreateOrder(executor, &order)
		if repoErr != nil {
			return fmt.Errorf("failed to create order record: %w", repoErr)
		}
		order.ID = orderID

		for i := range items {
			items[i].OrderID = orderID
			if _, repoErr := s.orderRepo.CreateOrderItem(executor, &items[i]); repoErr != nil {
				return fmt.Errorf("failed to create order item %s: %w", items[i].ProductName, repoErr)
			}
			if items[i].InventoryItemID == nil {
				continue
			}
			// Conditional decrement: a concurrent reservation may have taken
			// the stock since the validation pass; zero rows means abort.
			rows, repoErr := s.inventoryRepo.DecrementStock(executor, *items[i].InventoryItemID, items[i].Quantity)
			if repoErr != nil {
				return fmt.Errorf("failed to reserve stock for %s: %w", items[i].ProductName, repoErr)
			}
			if rows == 0 {
				return fmt.Errorf("%w para %s", ErrInsufficientStock, items[i].ProductName)
			}
			movement := models.StockMovement{
				InventoryItemID: *items[i].InventoryItemID,
				UserID:          userID,
				MovementType:    MovementTypeSale,
				QuantityChanged: -items[i].Quantity,
				Reason:          strPtr("Order creation"),
			}
			if _, repoErr := s.movementRepo.CreateMovement(executor, &movement); repoErr != nil {
				return fmt.Errorf("failed to record stock movement for %s: %w", items[i].ProductName, repoErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrderByID(order.ID)
}

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders, totalCount, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID: %w", err)
	}

	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items for order %d: %w", orderID, err)
	}
	order.Items = items
	return order, nil
}

func (s *orderService) UpdateOrder(orderID int64, req UpdateOrderRequest, userID *int64) (*models.Order, error) {
	current, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for update: %w", err)
	}

	if req.CustomerName != nil {
		current.CustomerName = req.CustomerName
	}
	if req.Rut != nil {
		current.Rut = req.Rut
	}
	if req.Telefono != nil {
		current.Telefono = req.Telefono
	}
	if req.Description != nil {
		current.Description = req.Description
	}

	releaseStock := false
	if req.Status != nil {
		if !isValidOrderStatus(*req.Status) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, *req.Status)
		}
		// Only a quotation leaving its reserved state through cancellation
		// releases stock. Every other transition is a plain field update.
		releaseStock = current.Status == StatusQuotationSent && *req.Status == StatusCancelled
		current.Status = *req.Status
	}

	err = s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		if releaseStock {
			if restoreErr := s.restoreStock(executor, orderID, userID, MovementTypeReturnCancellation, fmt.Sprintf("Order %d cancelled", orderID)); restoreErr != nil {
				return restoreErr
			}
		}
		if repoErr := s.orderRepo.UpdateOrder(executor, current); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to update order: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrderByID(orderID)
}

func (s *orderService) DeleteOrder(orderID int64, userID *int64) error {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to fetch order for deletion: %w", err)
	}

	return s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		// Only reserved-but-unfulfilled stock comes back; completed or
		// cancelled orders have no outstanding reservation.
		if order.Status == StatusQuotationSent {
			if restoreErr := s.restoreStock(executor, orderID, userID, MovementTypeReturnDeletion, fmt.Sprintf("Order %d deleted", orderID)); restoreErr != nil {
				return restoreErr
			}
		}
		if _, repoErr := s.orderRepo.DeleteOrderItemsByOrderID(executor, orderID); repoErr != nil {
			return fmt.Errorf("failed to delete order items: %w", repoErr)
		}
		if _, repoErr := s.orderRepo.DeleteOrder(executor, orderID); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to delete order: %w", repoErr)
		}
		return nil
	})
}

// restoreStock increments stock for every order item carrying an inventory
// reference and records a return movement per item.
func (s *orderService) restoreStock(executor repositories.SQLExecutor, orderID int64, userID *int64, movementType, reason string) error {
	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order items for stock return: %w", err)
	}
	for _, item := range items {
		if item.InventoryItemID == nil {
			continue
		}
		if err := s.inventoryRepo.IncrementStock(executor, *item.InventoryItemID, item.Quantity); err != nil {
			return fmt.Errorf("failed to return stock for %s: %w", item.ProductName, err)
		}
		movement := models.StockMovement{
			InventoryItemID: *item.InventoryItemID,
			UserID:          userID,
			MovementType:    movementType,
			QuantityChanged: item.Quantity,
			Reason:          &reason,
		}
		if _, err := s.movementRepo.CreateMovement(executor, &movement); err != nil {
			return fmt.Errorf("failed to record stock return for %s: %w", item.ProductName, err)
		}
	}
	return nil
}

func isValidOrderStatus(status string) bool {
	switch status {
	case StatusReceived, StatusInProgress, StatusCompleted, StatusCancelled, StatusQuotationSent:
		return true
	default:
		return false
	}
}

func strPtr(s string) *string {
	return &s
}
