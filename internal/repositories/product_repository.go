package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gestion_backend/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the interface for sellable product database operations.
type ProductRepository interface {
	CreateProduct(executor SQLExecutor, product *models.SellableProduct) (int64, error)
	CreateComponent(executor SQLExecutor, component *models.ProductComponent) (int64, error)
	GetProductByID(id int64) (*models.SellableProduct, error)
	GetProducts(page, pageSize int) ([]models.SellableProduct, int, error)
	GetComponentsByProductID(productID int64) ([]models.ProductComponent, error)
	UpdateProduct(executor SQLExecutor, product *models.SellableProduct) error
	DeleteComponentsByProductID(executor SQLExecutor, productID int64) (int64, error)
	DeleteProduct(executor SQLExecutor, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.SellableProduct) (int64, error) {
	query := `INSERT INTO sellable_products
	            (name, description, desired_profit_margin, total_component_cost,
	             net_sale_price, iva_amount, final_sale_price, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		product.Name, product.Description, product.DesiredProfitMargin, product.TotalComponentCost,
		product.NetSalePrice, product.IvaAmount, product.FinalSalePrice, currentTime, currentTime,
	).Scan(&product.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating sellable product: %v", ErrDatabaseError, err)
	}
	return product.ID, nil
}

func (r *productRepository) CreateComponent(executor SQLExecutor, component *models.ProductComponent) (int64, error) {
	query := `INSERT INTO product_components
	            (product_id, inventory_item_id, item_name, quantity, purchase_price, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	currentTime := time.Now()

	var inventoryItemID sql.NullInt64
	if component.InventoryItemID != nil {
		inventoryItemID = sql.NullInt64{Int64: *component.InventoryItemID, Valid: true}
	}

	err := executor.QueryRow(query,
		component.ProductID, inventoryItemID, component.ItemName, component.Quantity,
		component.PurchasePrice, currentTime, currentTime,
	).Scan(&component.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%w: creating product component (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating product component: %v", ErrDatabaseError, err)
	}
	return component.ID, nil
}

func (r *productRepository) GetProductByID(id int64) (*models.SellableProduct, error) {
	product := &models.SellableProduct{}
	query := `SELECT id, name, description, desired_profit_margin, total_component_cost,
	                 net_sale_price, iva_amount, final_sale_price, created_at, updated_at
	          FROM sellable_products WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.DesiredProfitMargin, &product.TotalComponentCost,
		&product.NetSalePrice, &product.IvaAmount, &product.FinalSalePrice, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sellable product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

func (r *productRepository) GetProducts(page, pageSize int) ([]models.SellableProduct, int, error) {
	products := []models.SellableProduct{}
	totalCount := 0
	query := `SELECT id, name, description, desired_profit_margin, total_component_cost,
	                 net_sale_price, iva_amount, final_sale_price, created_at, updated_at,
	                 COUNT(*) OVER() AS total_count
	          FROM sellable_products
	          ORDER BY name
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting sellable products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var product models.SellableProduct
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.DesiredProfitMargin, &product.TotalComponentCost,
			&product.NetSalePrice, &product.IvaAmount, &product.FinalSalePrice, &product.CreatedAt, &product.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning sellable product: %v", ErrDatabaseError, err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating sellable products: %v", ErrDatabaseError, err)
	}
	return products, totalCount, nil
}

func (r *productRepository) GetComponentsByProductID(productID int64) ([]models.ProductComponent, error) {
	components := []models.ProductComponent{}
	query := `SELECT id, product_id, inventory_item_id, item_name, quantity, purchase_price, created_at, updated_at
	          FROM product_components
	          WHERE product_id = $1
	          ORDER BY id`
	rows, err := r.db.Query(query, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying components for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var component models.ProductComponent
		var inventoryItemID sql.NullInt64
		if err := rows.Scan(
			&component.ID, &component.ProductID, &inventoryItemID, &component.ItemName,
			&component.Quantity, &component.PurchasePrice, &component.CreatedAt, &component.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning product component: %v", ErrDatabaseError, err)
		}
		if inventoryItemID.Valid {
			component.InventoryItemID = &inventoryItemID.Int64
		}
		components = append(components, component)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product components: %v", ErrDatabaseError, err)
	}
	return components, nil
}

func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.SellableProduct) error {
	query := `UPDATE sellable_products SET
	            name = $1, description = $2, desired_profit_margin = $3, total_component_cost = $4,
	            net_sale_price = $5, iva_amount = $6, final_sale_price = $7, updated_at = $8
	          WHERE id = $9`
	result, err := executor.Exec(query,
		product.Name, product.Description, product.DesiredProfitMargin, product.TotalComponentCost,
		product.NetSalePrice, product.IvaAmount, product.FinalSalePrice, time.Now(), product.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating sellable product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) DeleteComponentsByProductID(executor SQLExecutor, productID int64) (int64, error) {
	query := `DELETE FROM product_components WHERE product_id = $1`
	result, err := executor.Exec(query, productID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting components for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for component deletion of product ID %d: %v", ErrDatabaseError, productID, err)
	}
	return rowsAffected, nil
}

func (r *productRepository) DeleteProduct(executor SQLExecutor, id int64) error {
	query := `DELETE FROM sellable_products WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting sellable product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
