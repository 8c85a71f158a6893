package services

import (
	"context"
	"log"

	"quickdeliver-backend/pkg/messaging"

	"github.com/google/uuid"
)

// NotificationService publishes customer-facing notifications to the
// notification topic, where delivery channels (push, sms, email) consume
// them. Publishing is fire-and-forget; a broker failure is logged only.
type NotificationService struct {
	kafkaProducer *messaging.KafkaProducer
	kafkaBrokers  []string
	topic         string
}

func NewNotificationService(kafkaProducer *messaging.KafkaProducer, kafkaBrokers []string, topic string) *NotificationService {
	return &NotificationService{
		kafkaProducer: kafkaProducer,
		kafkaBrokers:  kafkaBrokers,
		topic:         topic,
	}
}

func (s *NotificationService) NotifySuccess(ctx context.Context, customerID uuid.UUID, message string) {
	s.send(customerID, "success", "Order placed", message)
}

func (s *NotificationService) NotifyError(ctx context.Context, customerID uuid.UUID, message string) {
	s.send(customerID, "error", "Order failed", message)
}

func (s *NotificationService) NotifyInfo(ctx context.Context, customerID uuid.UUID, title, message string) {
	s.send(customerID, "info", title, message)
}

func (s *NotificationService) send(customerID uuid.UUID, eventType, title, message string) {
	if s.kafkaProducer == nil {
		log.Printf("Notification for %s dropped, messaging disabled: %s", customerID, message)
		return
	}

	event := messaging.NotificationEvent{
		Type:       eventType,
		CustomerID: customerID.String(),
		Title:      title,
		Message:    message,
	}
	if err := s.kafkaProducer.SendMessage(s.topic, s.kafkaBrokers, customerID.String(), event); err != nil {
		log.Printf("Warning: failed to publish notification for %s: %v", customerID, err)
	}
}
