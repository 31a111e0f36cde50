package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gestion_backend/internal/models"

	"github.com/lib/pq"
)

// InventoryRepository defines the interface for inventory item database operations.
type InventoryRepository interface {
	CreateItem(executor SQLExecutor, item *models.InventoryItem) (int64, error)
	GetItemByID(id int64) (*models.InventoryItem, error)
	GetItems(name *string, page, pageSize int) ([]models.InventoryItem, int, error)
	UpdateItem(executor SQLExecutor, item *models.InventoryItem) error
	DeleteItem(executor SQLExecutor, id int64) error

	// DecrementStock conditionally subtracts quantity from an item. It returns
	// the number of rows affected: zero means the item either does not exist
	// or lacks sufficient stock, and nothing was changed.
	DecrementStock(executor SQLExecutor, itemID int64, quantity int) (int64, error)
	// IncrementStock adds quantity back to an item (stock restoration).
	IncrementStock(executor SQLExecutor, itemID int64, quantity int) error

	CountItems() (total int, outOfStock int, err error)
	GetLowStockItems(threshold int, limit int) ([]models.InventoryItem, error)
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CreateItem(executor SQLExecutor, item *models.InventoryItem) (int64, error) {
	query := `INSERT INTO inventory_items
	            (name, quantity, purchase_price, description, sku, supplier, size, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		item.Name, item.Quantity, item.PurchasePrice, item.Description, item.SKU,
		item.Supplier, item.Size, currentTime, currentTime,
	).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: creating inventory item (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating inventory item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *inventoryRepository) GetItemByID(id int64) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `SELECT id, name, quantity, purchase_price, description, sku, supplier, size, created_at, updated_at
	          FROM inventory_items WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&item.ID, &item.Name, &item.Quantity, &item.PurchasePrice, &item.Description,
		&item.SKU, &item.Supplier, &item.Size, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting inventory item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *inventoryRepository) GetItems(name *string, page, pageSize int) ([]models.InventoryItem, int, error) {
	items := []models.InventoryItem{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, quantity, purchase_price, description, sku, supplier, size,
	    created_at, updated_at, COUNT(*) OVER() AS total_count
	  FROM inventory_items`)

	var args []interface{}
	argCount := 1
	if name != nil && *name != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE name ILIKE $%d", argCount))
		args = append(args, "%"+*name+"%")
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY name")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting inventory items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Quantity, &item.PurchasePrice, &item.Description,
			&item.SKU, &item.Supplier, &item.Size, &item.CreatedAt, &item.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating inventory items: %v", ErrDatabaseError, err)
	}
	return items, totalCount, nil
}

func (r *inventoryRepository) UpdateItem(executor SQLExecutor, item *models.InventoryItem) error {
	query := `UPDATE inventory_items SET
	            name = $1, quantity = $2, purchase_price = $3, description = $4,
	            sku = $5, supplier = $6, size = $7, updated_at = $8
	          WHERE id = $9`
	result, err := executor.Exec(query,
		item.Name, item.Quantity, item.PurchasePrice, item.Description,
		item.SKU, item.Supplier, item.Size, time.Now(), item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating inventory item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) DeleteItem(executor SQLExecutor, id int64) error {
	query := `DELETE FROM inventory_items WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: inventory item ID %d is referenced by other records (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting inventory item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) DecrementStock(executor SQLExecutor, itemID int64, quantity int) (int64, error) {
	// Conditional decrement: the quantity check and the write happen in one
	// statement, so concurrent reservations cannot drive stock below zero.
	query := `UPDATE inventory_items
	          SET quantity = quantity - $1, updated_at = $2
	          WHERE id = $3 AND quantity >= $1`
	result, err := executor.Exec(query, quantity, time.Now(), itemID)
	if err != nil {
		return 0, fmt.Errorf("%w: decrementing stock for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for stock decrement of item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return rowsAffected, nil
}

func (r *inventoryRepository) IncrementStock(executor SQLExecutor, itemID int64, quantity int) error {
	query := `UPDATE inventory_items
	          SET quantity = quantity + $1, updated_at = $2
	          WHERE id = $3`
	result, err := executor.Exec(query, quantity, time.Now(), itemID)
	if err != nil {
		return fmt.Errorf("%w: incrementing stock for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) CountItems() (int, int, error) {
	var total, outOfStock int
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE quantity = 0) FROM inventory_items`
	if err := r.db.QueryRow(query).Scan(&total, &outOfStock); err != nil {
		return 0, 0, fmt.Errorf("%w: counting inventory items: %v", ErrDatabaseError, err)
	}
	return total, outOfStock, nil
}

func (r *inventoryRepository) GetLowStockItems(threshold int, limit int) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	query := `SELECT id, name, quantity, purchase_price, description, sku, supplier, size, created_at, updated_at
	          FROM inventory_items
	          WHERE quantity <= $1
	          ORDER BY quantity, name
	          LIMIT $2`
	rows, err := r.db.Query(query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: getting low stock items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Quantity, &item.PurchasePrice, &item.Description,
			&item.SKU, &item.Supplier, &item.Size, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning low stock item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating low stock items: %v", ErrDatabaseError, err)
	}
	return items, nil
}
