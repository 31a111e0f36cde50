package services

import (
	"errors"
	"fmt"
	"time"

	"gestion_backend/internal/models"
	"gestion_backend/internal/pricing"
	"gestion_backend/internal/repositories"
	"gestion_backend/pkg/utils"
)

var ErrLedgerEntryNotFound = errors.New("ledger entry not found")

// SaveLedgerEntryRequest is used for creating and updating ledger entries.
// Amount is the gross VAT-inclusive total; net/IVA are derived server-side
// for income entries.
type SaveLedgerEntryRequest struct {
	EntryType   string     `json:"entry_type" binding:"required"`
	EntryDate   *time.Time `json:"entry_date"`
	Description string     `json:"description" binding:"required"`
	Amount      int64      `json:"amount" binding:"gte=0"`
	Category    *string    `json:"category"`
}

// LedgerService manages the income/expense ledger.
type LedgerService interface {
	CreateEntry(req SaveLedgerEntryRequest) (*models.LedgerEntry, error)
	GetEntryByID(id int64) (*models.LedgerEntry, error)
	GetEntries(filters models.LedgerFilters) ([]models.LedgerEntry, int, error)
	UpdateEntry(id int64, req SaveLedgerEntryRequest) (*models.LedgerEntry, error)
	DeleteEntry(id int64) error
}

type ledgerService struct {
	ledgerRepo repositories.LedgerRepository
	tx         repositories.TxManager
	calc       pricing.Calculator
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(lr repositories.LedgerRepository, tx repositories.TxManager, calc pricing.Calculator) LedgerService {
	return &ledgerService{ledgerRepo: lr, tx: tx, calc: calc}
}

// buildEntry validates the request and derives the net/IVA split for income
// entries. Expense entries carry only the gross amount.
func (s *ledgerService) buildEntry(req SaveLedgerEntryRequest) (*models.LedgerEntry, error) {
	if req.EntryType != models.LedgerIncome && req.EntryType != models.LedgerExpense {
		return nil, fmt.Errorf("%w: entry_type must be %q or %q", ErrValidation, models.LedgerIncome, models.LedgerExpense)
	}
	if utils.IsEmpty(req.Description) {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	entry := &models.LedgerEntry{
		EntryType:   req.EntryType,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	}
	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.EntryType == models.LedgerIncome {
		net, iva := s.calc.SplitGross(req.Amount)
		entry.NetAmount = &net
		entry.IvaAmount = &iva
	}
	return entry, nil
}

func (s *ledgerService) CreateEntry(req SaveLedgerEntryRequest) (*models.LedgerEntry, error) {
	entry, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}
	err = s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		id, repoErr := s.ledgerRepo.CreateEntry(executor, entry)
		if repoErr != nil {
			return fmt.Errorf("failed to create ledger entry: %w", repoErr)
		}
		entry.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) GetEntryByID(id int64) (*models.LedgerEntry, error) {
	entry, err := s.ledgerRepo.GetEntryByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLedgerEntryNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return entry, nil
}

func (s *ledgerService) GetEntries(filters models.LedgerFilters) ([]models.LedgerEntry, int, error) {
	entries, totalCount, err := s.ledgerRepo.GetEntries(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	return entries, totalCount, nil
}

func (s *ledgerService) UpdateEntry(id int64, req SaveLedgerEntryRequest) (*models.LedgerEntry, error) {
	existing, err := s.GetEntryByID(id)
	if err != nil {
		return nil, err
	}

	entry, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	if req.EntryDate == nil {
		entry.EntryDate = existing.EntryDate
	}

	err = s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		if repoErr := s.ledgerRepo.UpdateEntry(executor, entry); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return ErrLedgerEntryNotFound
			}
			return fmt.Errorf("failed to update ledger entry: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetEntryByID(id)
}

func (s *ledgerService) DeleteEntry(id int64) error {
	return s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		if repoErr := s.ledgerRepo.DeleteEntry(executor, id); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return ErrLedgerEntryNotFound
			}
			return fmt.Errorf("failed to delete ledger entry: %w", repoErr)
		}
		return nil
	})
}
