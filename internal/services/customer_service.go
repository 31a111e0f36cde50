package services

import (
	"errors"
	"fmt"

	"gestion_backend/internal/models"
	"gestion_backend/internal/repositories"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrDuplicateCustomer = errors.New("customer with this rut already exists")
)

// SaveCustomerRequest is used for creating and updating customers.
type SaveCustomerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Rut      *string `json:"rut"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
}

// CustomerService manages the customer directory.
type CustomerService interface {
	CreateCustomer(req SaveCustomerRequest) (*models.Customer, error)
	GetCustomerByID(id int64) (*models.Customer, error)
	GetCustomers(search *string, page, pageSize int) ([]models.Customer, int, error)
	UpdateCustomer(id int64, req SaveCustomerRequest) (*models.Customer, error)
	DeleteCustomer(id int64) error
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	tx           repositories.TxManager
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(cr repositories.CustomerRepository, tx repositories.TxManager) CustomerService {
	return &customerService{customerRepo: cr, tx: tx}
}

func (s *customerService) CreateCustomer(req SaveCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		Name:     req.Name,
		Rut:      req.Rut,
		Telefono: req.Telefono,
		Email:    req.Email,
		Address:  req.Address,
		Notes:    req.Notes,
	}
	err := s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		id, repoErr := s.customerRepo.CreateCustomer(executor, customer)
		if repoErr != nil {
			if errors.Is(repoErr, repositories.ErrDuplicateKey) {
				return ErrDuplicateCustomer
			}
			return fmt.Errorf("failed to create customer: %w", repoErr)
		}
		customer.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCustomerByID(customer.ID)
}

func (s *customerService) GetCustomerByID(id int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetCustomers(search *string, page, pageSize int) ([]models.Customer, int, error) {
	customers, totalCount, err := s.customerRepo.GetCustomers(search, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, totalCount, nil
}

func (s *customerService) UpdateCustomer(id int64, req SaveCustomerRequest) (*models.Customer, error) {
	if _, err := s.GetCustomerByID(id); err != nil {
		return nil, err
	}
	customer := &models.Customer{
		ID:       id,
		Name:     req.Name,
		Rut:      req.Rut,
		Telefono: req.Telefono,
		Email:    req.Email,
		Address:  req.Address,
		Notes:    req.Notes,
	}
	err := s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		if repoErr := s.customerRepo.UpdateCustomer(executor, customer); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrDuplicateKey) {
				return ErrDuplicateCustomer
			}
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("failed to update customer: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCustomerByID(id)
}

func (s *customerService) DeleteCustomer(id int64) error {
	return s.tx.WithinTx(func(executor repositories.SQLExecutor) error {
		if repoErr := s.customerRepo.DeleteCustomer(executor, id); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("failed to delete customer: %w", repoErr)
		}
		return nil
	})
}
