package models

import "time"

// Ledger entry types.
const (
	LedgerIncome  = "income"
	LedgerExpense = "expense"
)

// LedgerEntry is a single income or expense record. Amount is the gross
// VAT-inclusive total; for income entries NetAmount and IvaAmount are derived
// server-side via the inverse tax split.
type LedgerEntry struct {
	ID          int64     `json:"id" db:"id"`
	EntryType   string    `json:"entry_type" db:"entry_type" binding:"required"`
	EntryDate   time.Time `json:"entry_date" db:"entry_date"`
	Description string    `json:"description" db:"description" binding:"required"`
	Amount      int64     `json:"amount" db:"amount"`
	NetAmount   *int64    `json:"net_amount,omitempty" db:"net_amount"`
	IvaAmount   *int64    `json:"iva_amount,omitempty" db:"iva_amount"`
	Category    *string   `json:"category,omitempty" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// LedgerFilters defines the available filters for querying ledger entries.
type LedgerFilters struct {
	EntryType *string `form:"entry_type"`
	From      *string `form:"from"` // Expected format YYYY-MM-DD
	To        *string `form:"to"`   // Expected format YYYY-MM-DD
	Page      int     `form:"page"`
	PageSize  int     `form:"page_size"`
}
