package services

import (
	"context"
	"errors"
	"fmt"

	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/repositories"

	"github.com/google/uuid"
)

// CustomerService manages customer accounts.
type CustomerService struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error) {
	if existing, err := s.customerRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.New("email already registered")
	}

	customer := &models.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, errors.New("invalid customer ID")
	}
	return s.customerRepo.GetByID(ctx, id)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req *UpdateCustomerRequest) (*models.Customer, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, errors.New("invalid customer ID")
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return errors.New("invalid customer ID")
	}
	return s.customerRepo.Delete(ctx, id)
}

func (s *CustomerService) GetCustomers(ctx context.Context, limit, offset int) ([]models.Customer, error) {
	return s.customerRepo.GetAll(ctx, limit, offset)
}
