package services

import (
	"context"
	"errors"
	"fmt"

	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/repositories"

	"github.com/google/uuid"
)

// AddressService manages customer delivery addresses. Every lookup is scoped
// to the owning customer; an address id from another customer behaves like a
// missing one.
type AddressService struct {
	addressRepo  repositories.AddressRepository
	customerRepo repositories.CustomerRepository
}

func NewAddressService(addressRepo repositories.AddressRepository, customerRepo repositories.CustomerRepository) *AddressService {
	return &AddressService{
		addressRepo:  addressRepo,
		customerRepo: customerRepo,
	}
}

type CreateAddressRequest struct {
	Street         string `json:"street" binding:"required"`
	City           string `json:"city" binding:"required"`
	State          string `json:"state" binding:"required"`
	PostalCode     string `json:"postal_code" binding:"required"`
	AdditionalInfo string `json:"additional_info"`
	IsDefault      bool   `json:"is_default"`
}

type UpdateAddressRequest struct {
	Street         *string `json:"street"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	PostalCode     *string `json:"postal_code"`
	AdditionalInfo *string `json:"additional_info"`
	IsDefault      *bool   `json:"is_default"`
}

type AddressListResponse struct {
	Addresses []models.Address `json:"addresses"`
	Total     int64            `json:"total"`
	Page      int              `json:"page"`
	Limit     int              `json:"limit"`
}

func (s *AddressService) CreateAddress(ctx context.Context, customerID string, req *CreateAddressRequest) (*models.Address, error) {
	cid, err := uuid.Parse(customerID)
	if err != nil {
		return nil, errors.New("invalid customer ID")
	}

	if _, err := s.customerRepo.GetByID(ctx, cid); err != nil {
		return nil, errors.New("customer not found")
	}

	if req.IsDefault {
		if err := s.addressRepo.UnsetDefaultAddresses(ctx, cid); err != nil {
			return nil, fmt.Errorf("failed to unset default addresses: %w", err)
		}
	}

	address := &models.Address{
		CustomerID:     cid,
		Street:         req.Street,
		City:           req.City,
		State:          req.State,
		PostalCode:     req.PostalCode,
		AdditionalInfo: req.AdditionalInfo,
		IsDefault:      req.IsDefault,
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

func (s *AddressService) GetAddresses(ctx context.Context, customerID string, page, limit int) (*AddressListResponse, error) {
	cid, err := uuid.Parse(customerID)
	if err != nil {
		return nil, errors.New("invalid customer ID")
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	addresses, total, err := s.addressRepo.GetByCustomerID(ctx, cid, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	return &AddressListResponse{
		Addresses: addresses,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

func (s *AddressService) GetAddressByID(ctx context.Context, customerID, addressID string) (*models.Address, error) {
	cid, err := uuid.Parse(customerID)
	if err != nil {
		return nil, errors.New("invalid customer ID")
	}
	aid, err := uuid.Parse(addressID)
	if err != nil {
		return nil, errors.New("invalid address ID")
	}

	address, err := s.addressRepo.GetByID(ctx, aid)
	if err != nil {
		return nil, errors.New("address not found")
	}
	if address.CustomerID != cid {
		return nil, errors.New("address not found")
	}
	return address, nil
}

func (s *AddressService) UpdateAddress(ctx context.Context, customerID, addressID string, req *UpdateAddressRequest) (*models.Address, error) {
	address, err := s.GetAddressByID(ctx, customerID, addressID)
	if err != nil {
		return nil, err
	}

	if req.Street != nil {
		address.Street = *req.Street
	}
	if req.City != nil {
		address.City = *req.City
	}
	if req.State != nil {
		address.State = *req.State
	}
	if req.PostalCode != nil {
		address.PostalCode = *req.PostalCode
	}
	if req.AdditionalInfo != nil {
		address.AdditionalInfo = *req.AdditionalInfo
	}
	if req.IsDefault != nil {
		if *req.IsDefault && !address.IsDefault {
			if err := s.addressRepo.UnsetDefaultAddresses(ctx, address.CustomerID); err != nil {
				return nil, fmt.Errorf("failed to unset default addresses: %w", err)
			}
		}
		address.IsDefault = *req.IsDefault
	}

	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return address, nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, customerID, addressID string) error {
	address, err := s.GetAddressByID(ctx, customerID, addressID)
	if err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, address.ID)
}
