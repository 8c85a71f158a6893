package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/repositories"
	"quickdeliver-backend/pkg/messaging"

	"github.com/google/uuid"
)

// TrackingControl switches delivery tracking for a motorcycle plate.
type TrackingControl interface {
	StartTracking(ctx context.Context, plate string) error
	StopTracking(ctx context.Context, plate string) error
}

var validStatusTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusInProgress, models.OrderStatusCancelled},
	models.OrderStatusInProgress: {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

// OrderService owns the order lifecycle. Status changes drive tracking: a
// driver assignment starts it, a terminal status stops it.
type OrderService struct {
	orderRepo         repositories.OrderRepository
	driverRepo        repositories.DriverRepository
	tracking          TrackingControl
	kafkaProducer     *messaging.KafkaProducer
	kafkaBrokers      []string
	orderTopic        string
	notificationTopic string
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	driverRepo repositories.DriverRepository,
	tracking TrackingControl,
	kafkaProducer *messaging.KafkaProducer,
	kafkaBrokers []string,
	orderTopic string,
	notificationTopic string,
) *OrderService {
	return &OrderService{
		orderRepo:         orderRepo,
		driverRepo:        driverRepo,
		tracking:          tracking,
		kafkaProducer:     kafkaProducer,
		kafkaBrokers:      kafkaBrokers,
		orderTopic:        orderTopic,
		notificationTopic: notificationTopic,
	}
}

// CreateOrder persists a new order and announces it. Tracking is not started
// here; the checkout flow decides when tracking begins.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.Quantity <= 0 {
		return nil, errors.New("order quantity must be positive")
	}
	if order.TotalPrice <= 0 {
		return nil, errors.New("order total must be positive")
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.OrderLogs == nil {
		order.OrderLogs = models.JSONB{
			"created_at": time.Now().Format(time.RFC3339),
			"status":     order.Status,
		}
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publish(s.orderTopic, order.ID.String(), messaging.OrderEvent{
		Type:       "order_created",
		OrderID:    order.ID.String(),
		CustomerID: order.CustomerID.String(),
		Data: map[string]interface{}{
			"status":      order.Status,
			"total_price": order.TotalPrice,
		},
	})

	return order, nil
}

type UpdateOrderRequest struct {
	Status   *string    `json:"status"`
	DriverID *uuid.UUID `json:"driver_id"`
}

// UpdateOrder applies a driver assignment and/or a status transition.
// Assigning a driver to an unassigned order starts tracking for the driver's
// plate; moving to delivered or cancelled stops it. Tracking and event
// failures are logged, never fatal.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, req *UpdateOrderRequest) (*models.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, errors.New("invalid order ID")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}

	assigned := false
	if req.DriverID != nil && order.DriverID == nil {
		if _, err := s.driverRepo.GetByID(ctx, *req.DriverID); err != nil {
			return nil, errors.New("driver not found")
		}
		order.DriverID = req.DriverID
		assigned = true
	}

	if req.Status != nil && *req.Status != order.Status {
		if !isValidStatusTransition(order.Status, *req.Status) {
			return nil, fmt.Errorf("invalid status transition from %s to %s", order.Status, *req.Status)
		}
		order.Status = *req.Status
		if order.OrderLogs == nil {
			order.OrderLogs = models.JSONB{}
		}
		order.OrderLogs[*req.Status+"_at"] = time.Now().Format(time.RFC3339)
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if assigned {
		if plate := s.resolvePlate(ctx, *order.DriverID); plate != "" {
			if err := s.tracking.StartTracking(ctx, plate); err != nil {
				log.Printf("Warning: failed to start tracking for order %s: %v", order.ID, err)
			}
		}
	}
	if order.Status == models.OrderStatusDelivered || order.Status == models.OrderStatusCancelled {
		if order.DriverID != nil {
			if plate := s.resolvePlate(ctx, *order.DriverID); plate != "" {
				if err := s.tracking.StopTracking(ctx, plate); err != nil {
					log.Printf("Warning: failed to stop tracking for order %s: %v", order.ID, err)
				}
			}
		}
	}

	s.publish(s.orderTopic, order.ID.String(), messaging.OrderEvent{
		Type:       "order_updated",
		OrderID:    order.ID.String(),
		CustomerID: order.CustomerID.String(),
		Data: map[string]interface{}{
			"status": order.Status,
		},
	})
	s.publish(s.notificationTopic, order.CustomerID.String(), messaging.NotificationEvent{
		Type:       "order_status",
		CustomerID: order.CustomerID.String(),
		Title:      "Order update",
		Message:    fmt.Sprintf("Your order is now %s", order.Status),
	})

	return order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, errors.New("invalid order ID")
	}
	return s.orderRepo.GetByID(ctx, id)
}

// DeleteOrder removes an order outright. Used by checkout rollback and by
// admin tooling.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.orderRepo.Delete(ctx, id)
}

func (s *OrderService) GetCustomerOrders(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]models.Order, error) {
	return s.orderRepo.GetByCustomerID(ctx, customerID, limit, offset)
}

func (s *OrderService) GetRestaurantOrders(ctx context.Context, restaurantID string, limit, offset int) ([]models.Order, error) {
	id, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, errors.New("invalid restaurant ID")
	}
	return s.orderRepo.GetByRestaurantID(ctx, id, limit, offset)
}

func (s *OrderService) GetDriverOrders(ctx context.Context, driverID string, limit, offset int) ([]models.Order, error) {
	id, err := uuid.Parse(driverID)
	if err != nil {
		return nil, errors.New("invalid driver ID")
	}
	return s.orderRepo.GetByDriverID(ctx, id, limit, offset)
}

func (s *OrderService) GetOrdersByStatus(ctx context.Context, status string, limit, offset int) ([]models.Order, error) {
	if _, ok := validStatusTransitions[status]; !ok {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}
	return s.orderRepo.GetByStatus(ctx, status, limit, offset)
}

func (s *OrderService) resolvePlate(ctx context.Context, driverID uuid.UUID) string {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		log.Printf("Warning: failed to load driver %s: %v", driverID, err)
		return ""
	}
	if driver.Motorcycle == nil {
		return ""
	}
	return driver.Motorcycle.LicensePlate
}

func (s *OrderService) publish(topic, key string, value interface{}) {
	if s.kafkaProducer == nil {
		return
	}
	if err := s.kafkaProducer.SendMessage(topic, s.kafkaBrokers, key, value); err != nil {
		log.Printf("Warning: failed to publish event to %s: %v", topic, err)
	}
}

func isValidStatusTransition(from, to string) bool {
	for _, allowed := range validStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
