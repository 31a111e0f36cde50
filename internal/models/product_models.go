package models

import "time"

// SellableProduct is a product assembled from inventory components and sold
// with a desired profit margin. The four derived monetary fields are always
// recomputed server-side from the components and margin; client-supplied
// values are ignored.
type SellableProduct struct {
	ID                  int64              `json:"id" db:"id"`
	Name                string             `json:"name" db:"name" binding:"required"`
	Description         *string            `json:"description,omitempty" db:"description"`
	DesiredProfitMargin float64            `json:"desired_profit_margin" db:"desired_profit_margin"`
	TotalComponentCost  int64              `json:"total_component_cost" db:"total_component_cost"`
	NetSalePrice        int64              `json:"net_sale_price" db:"net_sale_price"`
	IvaAmount           int64              `json:"iva_amount" db:"iva_amount"`
	FinalSalePrice      int64              `json:"final_sale_price" db:"final_sale_price"`
	Components          []ProductComponent `json:"components"`
	CreatedAt           time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" db:"updated_at"`
}

// ProductComponent describes how much of an inventory item (or a manually
// entered cost) goes into one sellable product. When InventoryItemID is set,
// name and price are resolved from the referenced item at assembly time and
// frozen; the reference is a lookup relation, not ownership.
type ProductComponent struct {
	ID              int64     `json:"id" db:"id"`
	ProductID       int64     `json:"product_id" db:"product_id"`
	InventoryItemID *int64    `json:"inventory_item_id,omitempty" db:"inventory_item_id"`
	ItemName        string    `json:"item_name" db:"item_name"`
	Quantity        int       `json:"quantity" db:"quantity" binding:"required,gt=0"`
	PurchasePrice   int64     `json:"purchase_price" db:"purchase_price"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
