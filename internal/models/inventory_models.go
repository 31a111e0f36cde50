package models

import "time"

// InventoryItem represents a raw stock item. Quantity is mutated by the
// inventory CRUD, manual adjustments, and the order reservation workflow.
type InventoryItem struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" binding:"required"`
	Quantity      int       `json:"quantity" db:"quantity"`
	PurchasePrice int64     `json:"purchase_price" db:"purchase_price"`
	Description   *string   `json:"description,omitempty" db:"description"`
	SKU           *string   `json:"sku,omitempty" db:"sku"`
	Supplier      *string   `json:"supplier,omitempty" db:"supplier"`
	Size          *string   `json:"size,omitempty" db:"size"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// StockMovement is an audit record for a single change in an item's quantity.
type StockMovement struct {
	ID              int64          `json:"id" db:"id"`
	InventoryItemID int64          `json:"inventory_item_id" db:"inventory_item_id" binding:"required"`
	UserID          *int64         `json:"user_id,omitempty" db:"user_id"`
	MovementType    string         `json:"movement_type" db:"movement_type" binding:"required"` // e.g. purchase, sale, adjustment, return_cancellation, return_deletion
	QuantityChanged int            `json:"quantity_changed" db:"quantity_changed" binding:"required"`
	Reason          *string        `json:"reason,omitempty" db:"reason"`
	MovementDate    time.Time      `json:"movement_date" db:"movement_date"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
	InventoryItem   *InventoryItem `json:"inventory_item,omitempty"`
}

// MovementFilters defines the available filters for querying stock movements.
type MovementFilters struct {
	InventoryItemID *int64  `form:"inventory_item_id"`
	MovementType    *string `form:"movement_type"`
	Page            int     `form:"page"`
	PageSize        int     `form:"page_size"`
}
