package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gestion_backend/internal/models"
)

// MovementRepository defines the interface for stock movement database operations.
type MovementRepository interface {
	CreateMovement(executor SQLExecutor, movement *models.StockMovement) (int64, error)
	GetMovements(filters models.MovementFilters) ([]models.StockMovement, int, error)
}

type movementRepository struct {
	db *sql.DB
}

// NewMovementRepository creates a new instance of MovementRepository.
func NewMovementRepository(db *sql.DB) MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) CreateMovement(executor SQLExecutor, movement *models.StockMovement) (int64, error) {
	query := `INSERT INTO stock_movements
	          (inventory_item_id, user_id, movement_type, quantity_changed, reason, movement_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	if movement.MovementDate.IsZero() {
		movement.MovementDate = currentTime
	}

	var userID sql.NullInt64
	if movement.UserID != nil {
		userID = sql.NullInt64{Int64: *movement.UserID, Valid: true}
	}

	err := executor.QueryRow(query,
		movement.InventoryItemID, userID, movement.MovementType, movement.QuantityChanged,
		movement.Reason, movement.MovementDate, currentTime, currentTime,
	).Scan(&movement.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating stock movement: %v", ErrDatabaseError, err)
	}
	return movement.ID, nil
}

func (r *movementRepository) GetMovements(filters models.MovementFilters) ([]models.StockMovement, int, error) {
	movements := []models.StockMovement{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    sm.id, sm.inventory_item_id, sm.user_id, sm.movement_type, sm.quantity_changed,
	    sm.reason, sm.movement_date, sm.created_at, sm.updated_at,
	    ii.name AS item_name,
	    COUNT(*) OVER() AS total_count
	  FROM stock_movements sm
	  JOIN inventory_items ii ON sm.inventory_item_id = ii.id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.InventoryItemID != nil {
		conditions = append(conditions, fmt.Sprintf("sm.inventory_item_id = $%d", argCount))
		args = append(args, *filters.InventoryItemID)
		argCount++
	}
	if filters.MovementType != nil && *filters.MovementType != "" {
		conditions = append(conditions, fmt.Sprintf("sm.movement_type = $%d", argCount))
		args = append(args, *filters.MovementType)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY sm.movement_date DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying stock movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var movement models.StockMovement
		var userID sql.NullInt64
		var itemName string
		if err := rows.Scan(
			&movement.ID, &movement.InventoryItemID, &userID, &movement.MovementType, &movement.QuantityChanged,
			&movement.Reason, &movement.MovementDate, &movement.CreatedAt, &movement.UpdatedAt,
			&itemName, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning stock movement: %v", ErrDatabaseError, err)
		}
		if userID.Valid {
			movement.UserID = &userID.Int64
		}
		movement.InventoryItem = &models.InventoryItem{ID: movement.InventoryItemID, Name: itemName}
		movements = append(movements, movement)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating stock movements: %v", ErrDatabaseError, err)
	}
	return movements, totalCount, nil
}
