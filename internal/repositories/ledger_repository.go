package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gestion_backend/internal/models"
)

// LedgerRepository defines the interface for income/expense ledger database operations.
type LedgerRepository interface {
	CreateEntry(executor SQLExecutor, entry *models.LedgerEntry) (int64, error)
	GetEntryByID(id int64) (*models.LedgerEntry, error)
	GetEntries(filters models.LedgerFilters) ([]models.LedgerEntry, int, error)
	UpdateEntry(executor SQLExecutor, entry *models.LedgerEntry) error
	DeleteEntry(executor SQLExecutor, id int64) error

	// SumByType returns the total gross amount per entry type within [from, to).
	SumByType(from, to time.Time) (map[string]int64, error)
}

type ledgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new instance of LedgerRepository.
func NewLedgerRepository(db *sql.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateEntry(executor SQLExecutor, entry *models.LedgerEntry) (int64, error) {
	query := `INSERT INTO ledger_entries
	            (entry_type, entry_date, description, amount, net_amount, iva_amount, category, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	currentTime := time.Now()
	if entry.EntryDate.IsZero() {
		entry.EntryDate = currentTime
	}
	err := executor.QueryRow(query,
		entry.EntryType, entry.EntryDate, entry.Description, entry.Amount,
		entry.NetAmount, entry.IvaAmount, entry.Category, currentTime, currentTime,
	).Scan(&entry.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating ledger entry: %v", ErrDatabaseError, err)
	}
	return entry.ID, nil
}

func (r *ledgerRepository) GetEntryByID(id int64) (*models.LedgerEntry, error) {
	entry := &models.LedgerEntry{}
	query := `SELECT id, entry_type, entry_date, description, amount, net_amount, iva_amount, category, created_at, updated_at
	          FROM ledger_entries WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&entry.ID, &entry.EntryType, &entry.EntryDate, &entry.Description, &entry.Amount,
		&entry.NetAmount, &entry.IvaAmount, &entry.Category, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting ledger entry by ID %d: %v", ErrDatabaseError, id, err)
	}
	return entry, nil
}

func (r *ledgerRepository) GetEntries(filters models.LedgerFilters) ([]models.LedgerEntry, int, error) {
	entries := []models.LedgerEntry{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, entry_type, entry_date, description, amount, net_amount, iva_amount,
	    category, created_at, updated_at, COUNT(*) OVER() AS total_count
	  FROM ledger_entries`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.EntryType != nil && *filters.EntryType != "" {
		conditions = append(conditions, fmt.Sprintf("entry_type = $%d", argCount))
		args = append(args, *filters.EntryType)
		argCount++
	}
	if filters.From != nil && *filters.From != "" {
		if fromDate, err := time.Parse("2006-01-02", *filters.From); err == nil {
			conditions = append(conditions, fmt.Sprintf("entry_date >= $%d", argCount))
			args = append(args, fromDate)
			argCount++
		}
	}
	if filters.To != nil && *filters.To != "" {
		if toDate, err := time.Parse("2006-01-02", *filters.To); err == nil {
			conditions = append(conditions, fmt.Sprintf("entry_date < $%d", argCount))
			args = append(args, toDate.AddDate(0, 0, 1))
			argCount++
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY entry_date DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying ledger entries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.LedgerEntry
		if err := rows.Scan(
			&entry.ID, &entry.EntryType, &entry.EntryDate, &entry.Description, &entry.Amount,
			&entry.NetAmount, &entry.IvaAmount, &entry.Category, &entry.CreatedAt, &entry.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning ledger entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating ledger entries: %v", ErrDatabaseError, err)
	}
	return entries, totalCount, nil
}

func (r *ledgerRepository) UpdateEntry(executor SQLExecutor, entry *models.LedgerEntry) error {
	query := `UPDATE ledger_entries SET
	            entry_type = $1, entry_date = $2, description = $3, amount = $4,
	            net_amount = $5, iva_amount = $6, category = $7, updated_at = $8
	          WHERE id = $9`
	result, err := executor.Exec(query,
		entry.EntryType, entry.EntryDate, entry.Description, entry.Amount,
		entry.NetAmount, entry.IvaAmount, entry.Category, time.Now(), entry.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating ledger entry ID %d: %v", ErrDatabaseError, entry.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ledgerRepository) DeleteEntry(executor SQLExecutor, id int64) error {
	query := `DELETE FROM ledger_entries WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting ledger entry ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ledgerRepository) SumByType(from, to time.Time) (map[string]int64, error) {
	totals := map[string]int64{}
	query := `SELECT entry_type, COALESCE(SUM(amount), 0)
	          FROM ledger_entries
	          WHERE entry_date >= $1 AND entry_date < $2
	          GROUP BY entry_type`
	rows, err := r.db.Query(query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: summing ledger entries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entryType string
		var total int64
		if err := rows.Scan(&entryType, &total); err != nil {
			return nil, fmt.Errorf("%w: scanning ledger sum: %v", ErrDatabaseError, err)
		}
		totals[entryType] = total
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating ledger sums: %v", ErrDatabaseError, err)
	}
	return totals, nil
}
