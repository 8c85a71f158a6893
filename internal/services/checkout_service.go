package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"quickdeliver-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrCheckoutCancelled means the customer backed out at address
	// selection or final confirmation. Nothing was created.
	ErrCheckoutCancelled = errors.New("checkout cancelled")

	// ErrInvalidCart means the cart failed pre-checkout validation.
	ErrInvalidCart = errors.New("invalid cart")
)

// CartValidation is the outcome of pre-checkout cart validation.
type CartValidation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// CheckoutResult summarizes a completed checkout for the confirmation screen.
type CheckoutResult struct {
	OrderCount   int        `json:"order_count"`
	TotalAmount  float64    `json:"total_amount"`
	FirstOrderID *uuid.UUID `json:"first_order_id,omitempty"`
}

// ConfirmationPrompt is what the customer is asked to approve before any
// order is created.
type ConfirmationPrompt struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// AddressSelector resolves the delivery address for a checkout. Returning a
// nil address with a nil error means the customer cancelled.
type AddressSelector interface {
	SelectAddress(ctx context.Context) (*models.Address, error)
}

// Confirmer asks the customer for a final yes or no.
type Confirmer interface {
	Confirm(ctx context.Context, prompt ConfirmationPrompt) (bool, error)
}

// OrderPlacer creates and rolls back orders on behalf of the checkout flow.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

// DriverAssigner hands out drivers and controls their delivery tracking.
type DriverAssigner interface {
	AssignRandom(ctx context.Context) (*models.Driver, error)
	Release(ctx context.Context, driverID uuid.UUID) error
	StartTracking(ctx context.Context, plate string) error
}

// CheckoutNotifier pushes outcome notifications to the customer.
type CheckoutNotifier interface {
	NotifySuccess(ctx context.Context, customerID uuid.UUID, message string)
	NotifyError(ctx context.Context, customerID uuid.UUID, message string)
}

// ConfirmationPresenter records the checkout result for the confirmation
// screen to pick up.
type ConfirmationPresenter interface {
	PresentConfirmation(ctx context.Context, customerID uuid.UUID, result *CheckoutResult) error
}

// CheckoutService drives the full checkout flow: validate, pick an address,
// confirm, assign a driver, create one order per cart line, then run the
// post-success side effects.
type CheckoutService struct {
	orders    OrderPlacer
	fleet     DriverAssigner
	notifier  CheckoutNotifier
	presenter ConfirmationPresenter
}

func NewCheckoutService(orders OrderPlacer, fleet DriverAssigner, notifier CheckoutNotifier, presenter ConfirmationPresenter) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		fleet:     fleet,
		notifier:  notifier,
		presenter: presenter,
	}
}

// ValidateCart checks that the cart is non-empty and every line has a
// positive price and quantity.
func (s *CheckoutService) ValidateCart(lines []models.CartLine) CartValidation {
	if len(lines) == 0 {
		return CartValidation{Valid: false, Message: "Your cart is empty"}
	}
	for _, line := range lines {
		if line.Price <= 0 {
			return CartValidation{Valid: false, Message: "Some items have invalid prices"}
		}
		if line.Quantity <= 0 {
			return CartValidation{Valid: false, Message: "Some items have invalid quantities"}
		}
	}
	return CartValidation{Valid: true}
}

// Checkout runs the whole flow against the given cart store. Cancellation at
// either interactive step returns ErrCheckoutCancelled with no orders
// created. If any order creation fails, every order already created in the
// same batch is rolled back and the assigned driver released.
func (s *CheckoutService) Checkout(ctx context.Context, store *CartStore, customerID uuid.UUID, selector AddressSelector, confirmer Confirmer) (*CheckoutResult, error) {
	lines := store.Lines()

	if validation := s.ValidateCart(lines); !validation.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCart, validation.Message)
	}

	address, err := selector.SelectAddress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to select delivery address: %w", err)
	}
	if address == nil {
		return nil, ErrCheckoutCancelled
	}

	total := 0.0
	for _, line := range lines {
		total += line.Subtotal
	}

	prompt := ConfirmationPrompt{
		Title: "Confirm your order",
		Message: fmt.Sprintf("%d item(s) for a total of $%.2f, delivered to %s, %s. Place the order?",
			len(lines), total, address.Street, address.City),
	}
	confirmed, err := confirmer.Confirm(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}
	if !confirmed {
		return nil, ErrCheckoutCancelled
	}

	// Driver assignment is best-effort. With no driver available the orders
	// are still created, just unassigned and untracked.
	driver, err := s.fleet.AssignRandom(ctx)
	if err != nil {
		log.Printf("Warning: driver assignment failed, creating orders unassigned: %v", err)
		driver = nil
	}

	var driverID *uuid.UUID
	if driver != nil {
		id := driver.ID
		driverID = &id
	}
	addressID := address.ID

	created := make([]*models.Order, len(lines))
	var group errgroup.Group
	for i, line := range lines {
		i, line := i, line
		group.Go(func() error {
			order := &models.Order{
				CustomerID:   customerID,
				MenuID:       line.MenuID,
				RestaurantID: line.RestaurantID,
				DriverID:     driverID,
				AddressID:    &addressID,
				Quantity:     line.Quantity,
				TotalPrice:   line.Subtotal,
				Status:       models.OrderStatusPending,
			}
			placed, err := s.orders.CreateOrder(ctx, order)
			if err != nil {
				return fmt.Errorf("failed to create order for %s: %w", line.ProductName, err)
			}
			created[i] = placed
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		s.rollback(ctx, created, driver)
		s.notifier.NotifyError(ctx, customerID, "We could not place your order. Please try again.")
		return nil, err
	}

	if driver != nil {
		if driver.Motorcycle != nil {
			if err := s.fleet.StartTracking(ctx, driver.Motorcycle.LicensePlate); err != nil {
				log.Printf("Warning: failed to start tracking for plate %s: %v", driver.Motorcycle.LicensePlate, err)
			}
		}
		s.notifier.NotifySuccess(ctx, customerID, fmt.Sprintf("%s is on the way with your order", driver.Name))
	}

	store.ClearCart(ctx)
	store.CloseSidebar()

	result := &CheckoutResult{
		OrderCount:  len(created),
		TotalAmount: total,
	}
	if len(created) > 0 && created[0] != nil {
		id := created[0].ID
		result.FirstOrderID = &id
	}
	if err := s.presenter.PresentConfirmation(ctx, customerID, result); err != nil {
		log.Printf("Warning: failed to present checkout confirmation for customer %s: %v", customerID, err)
	}

	return result, nil
}

// rollback undoes a partially created batch: every order that made it is
// deleted and the driver, if any, put back in the available pool. Each
// failure is logged and the rest of the rollback continues.
func (s *CheckoutService) rollback(ctx context.Context, created []*models.Order, driver *models.Driver) {
	for _, order := range created {
		if order == nil {
			continue
		}
		if err := s.orders.DeleteOrder(ctx, order.ID); err != nil {
			log.Printf("Warning: failed to roll back order %s: %v", order.ID, err)
		}
	}
	if driver != nil {
		if err := s.fleet.Release(ctx, driver.ID); err != nil {
			log.Printf("Warning: failed to release driver %s: %v", driver.ID, err)
		}
	}
}

// RequestAddressSelector resolves the address chosen in a checkout request.
// An absent address id is the customer's cancellation signal.
type RequestAddressSelector struct {
	addresses  *AddressService
	customerID uuid.UUID
	addressID  *uuid.UUID
}

func NewRequestAddressSelector(addresses *AddressService, customerID uuid.UUID, addressID *uuid.UUID) *RequestAddressSelector {
	return &RequestAddressSelector{
		addresses:  addresses,
		customerID: customerID,
		addressID:  addressID,
	}
}

func (s *RequestAddressSelector) SelectAddress(ctx context.Context) (*models.Address, error) {
	if s.addressID == nil {
		return nil, nil
	}
	return s.addresses.GetAddressByID(ctx, s.customerID.String(), s.addressID.String())
}

// RequestConfirmer answers the confirmation prompt with the decision already
// carried by the checkout request.
type RequestConfirmer struct {
	Confirmed bool
}

func (c *RequestConfirmer) Confirm(ctx context.Context, prompt ConfirmationPrompt) (bool, error) {
	return c.Confirmed, nil
}
