package models

import "time"

// Order represents a customer order or quotation. Totals are derived from the
// items and recomputed whenever the items change. Customer identity fields are
// frozen copies, not live references.
type Order struct {
	ID             int64       `json:"id" db:"id"`
	OrderDate      time.Time   `json:"order_date" db:"order_date"`
	CustomerName   *string     `json:"customer_name,omitempty" db:"customer_name"`
	Rut            *string     `json:"rut,omitempty" db:"rut"`
	Telefono       *string     `json:"telefono,omitempty" db:"telefono"`
	Status         string      `json:"status" db:"status"`
	TotalNetAmount int64       `json:"total_net_amount" db:"total_net_amount"`
	TotalIvaAmount int64       `json:"total_iva_amount" db:"total_iva_amount"`
	TotalAmount    int64       `json:"total_amount" db:"total_amount"`
	Description    *string     `json:"description,omitempty" db:"description"`
	Items          []OrderItem `json:"items"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItem is one line of an order. InventoryItemID is an optional weak
// reference used by the stock reservation workflow; NetUnitPrice is derived
// from the user-entered VAT-inclusive unit price.
type OrderItem struct {
	ID               int64     `json:"id" db:"id"`
	OrderID          int64     `json:"order_id" db:"order_id"`
	InventoryItemID  *int64    `json:"product_id,omitempty" db:"inventory_item_id"`
	ProductName      string    `json:"product_name" db:"product_name"`
	Quantity         int       `json:"quantity" db:"quantity"`
	UnitPriceWithVat int64     `json:"unit_price_with_vat" db:"unit_price_with_vat"`
	NetUnitPrice     int64     `json:"net_unit_price" db:"net_unit_price"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// OrderFilters defines the available filters for querying orders.
type OrderFilters struct {
	Status       *string `form:"status"`
	CustomerName *string `form:"customer_name"`
	Date         *string `form:"date"` // Expected format YYYY-MM-DD
	Page         int     `form:"page"`
	PageSize     int     `form:"page_size"`
}
