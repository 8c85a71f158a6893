package handlers

import (
	"context"

	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/services"

	"github.com/google/uuid"
)

// CheckoutServiceInterface defines the checkout operations used by handlers
type CheckoutServiceInterface interface {
	ValidateCart(lines []models.CartLine) services.CartValidation
	Checkout(ctx context.Context, store *services.CartStore, customerID uuid.UUID, selector services.AddressSelector, confirmer services.Confirmer) (*services.CheckoutResult, error)
}

// ConfirmationServiceInterface defines the confirmation operations used by handlers
type ConfirmationServiceInterface interface {
	ConsumeConfirmation(ctx context.Context, customerID uuid.UUID) (*services.CheckoutResult, error)
}
