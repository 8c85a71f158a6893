package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/repositories"
	"quickdeliver-backend/pkg/cache"
	"quickdeliver-backend/pkg/messaging"

	"github.com/google/uuid"
)

const trackingKeyPrefix = "tracking:"

// FleetService manages drivers and their motorcycles: CRUD, random
// assignment for deliveries and delivery tracking activation.
type FleetService struct {
	driverRepo     repositories.DriverRepository
	motorcycleRepo repositories.MotorcycleRepository
	cache          *cache.RedisCache
	kafkaProducer  *messaging.KafkaProducer
	kafkaBrokers   []string
	trackingTopic  string
}

func NewFleetService(
	driverRepo repositories.DriverRepository,
	motorcycleRepo repositories.MotorcycleRepository,
	cache *cache.RedisCache,
	kafkaProducer *messaging.KafkaProducer,
	kafkaBrokers []string,
	trackingTopic string,
) *FleetService {
	return &FleetService{
		driverRepo:     driverRepo,
		motorcycleRepo: motorcycleRepo,
		cache:          cache,
		kafkaProducer:  kafkaProducer,
		kafkaBrokers:   kafkaBrokers,
		trackingTopic:  trackingTopic,
	}
}

// ListAvailableDrivers returns every driver currently in the available pool,
// with their motorcycles preloaded.
func (s *FleetService) ListAvailableDrivers(ctx context.Context) ([]models.Driver, error) {
	return s.driverRepo.GetByStatus(ctx, models.DriverStatusAvailable)
}

// AssignRandom picks a random available driver, moves them on shift and marks
// their motorcycle in use. With an empty pool it returns (nil, nil): the
// caller proceeds without a driver.
func (s *FleetService) AssignRandom(ctx context.Context) (*models.Driver, error) {
	drivers, err := s.driverRepo.GetByStatus(ctx, models.DriverStatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to list available drivers: %w", err)
	}
	if len(drivers) == 0 {
		return nil, nil
	}

	driver := drivers[rand.Intn(len(drivers))]
	driver.Status = models.DriverStatusOnShift
	if err := s.driverRepo.Update(ctx, &driver); err != nil {
		return nil, fmt.Errorf("failed to assign driver: %w", err)
	}

	if driver.Motorcycle != nil {
		driver.Motorcycle.Status = models.MotorcycleStatusInUse
		if err := s.motorcycleRepo.Update(ctx, driver.Motorcycle); err != nil {
			log.Printf("Warning: failed to mark motorcycle %s in use: %v", driver.Motorcycle.LicensePlate, err)
		}
	}

	return &driver, nil
}

// Release puts a driver back in the available pool and frees their
// motorcycle.
func (s *FleetService) Release(ctx context.Context, driverID uuid.UUID) error {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return fmt.Errorf("driver not found: %w", err)
	}

	driver.Status = models.DriverStatusAvailable
	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return fmt.Errorf("failed to release driver: %w", err)
	}

	if driver.Motorcycle != nil {
		driver.Motorcycle.Status = models.MotorcycleStatusAvailable
		if err := s.motorcycleRepo.Update(ctx, driver.Motorcycle); err != nil {
			log.Printf("Warning: failed to free motorcycle %s: %v", driver.Motorcycle.LicensePlate, err)
		}
	}

	return nil
}

// StartTracking flags the plate as actively tracked and announces it on the
// tracking topic. Location updates for untracked plates are dropped by the
// tracking consumer.
func (s *FleetService) StartTracking(ctx context.Context, plate string) error {
	if err := s.cache.SetString(ctx, trackingKeyPrefix+plate, "1"); err != nil {
		return fmt.Errorf("failed to activate tracking: %w", err)
	}

	event := messaging.TrackingEvent{Type: "tracking_started", Plate: plate}
	if err := s.publishTracking(plate, event); err != nil {
		log.Printf("Warning: failed to publish tracking start for %s: %v", plate, err)
	}
	return nil
}

// StopTracking clears the tracked flag and the last known location.
func (s *FleetService) StopTracking(ctx context.Context, plate string) error {
	if err := s.cache.Delete(ctx, trackingKeyPrefix+plate); err != nil {
		return fmt.Errorf("failed to deactivate tracking: %w", err)
	}
	if err := s.cache.Delete(ctx, locationKeyPrefix+plate); err != nil {
		log.Printf("Warning: failed to clear last location for %s: %v", plate, err)
	}

	event := messaging.TrackingEvent{Type: "tracking_stopped", Plate: plate}
	if err := s.publishTracking(plate, event); err != nil {
		log.Printf("Warning: failed to publish tracking stop for %s: %v", plate, err)
	}
	return nil
}

// IsTracked reports whether the plate currently has tracking active.
func (s *FleetService) IsTracked(ctx context.Context, plate string) (bool, error) {
	return s.cache.Exists(ctx, trackingKeyPrefix+plate)
}

func (s *FleetService) publishTracking(plate string, event messaging.TrackingEvent) error {
	if s.kafkaProducer == nil {
		return nil
	}
	return s.kafkaProducer.SendMessage(s.trackingTopic, s.kafkaBrokers, plate, event)
}

// Driver CRUD

type CreateDriverRequest struct {
	Name          string     `json:"name" binding:"required"`
	LicenseNumber string     `json:"license_number" binding:"required"`
	Phone         string     `json:"phone" binding:"required"`
	Email         string     `json:"email"`
	MotorcycleID  *uuid.UUID `json:"motorcycle_id"`
}

type UpdateDriverRequest struct {
	Name         *string    `json:"name"`
	Phone        *string    `json:"phone"`
	Email        *string    `json:"email"`
	Status       *string    `json:"status"`
	MotorcycleID *uuid.UUID `json:"motorcycle_id"`
}

func (s *FleetService) CreateDriver(ctx context.Context, req *CreateDriverRequest) (*models.Driver, error) {
	if req.MotorcycleID != nil {
		if _, err := s.motorcycleRepo.GetByID(ctx, *req.MotorcycleID); err != nil {
			return nil, errors.New("motorcycle not found")
		}
	}

	driver := &models.Driver{
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		Phone:         req.Phone,
		Email:         req.Email,
		Status:        models.DriverStatusAvailable,
		MotorcycleID:  req.MotorcycleID,
	}
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}
	return driver, nil
}

func (s *FleetService) GetDriver(ctx context.Context, driverID string) (*models.Driver, error) {
	id, err := uuid.Parse(driverID)
	if err != nil {
		return nil, errors.New("invalid driver ID")
	}
	return s.driverRepo.GetByID(ctx, id)
}

func (s *FleetService) UpdateDriver(ctx context.Context, driverID string, req *UpdateDriverRequest) (*models.Driver, error) {
	id, err := uuid.Parse(driverID)
	if err != nil {
		return nil, errors.New("invalid driver ID")
	}

	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("driver not found")
	}

	if req.Name != nil {
		driver.Name = *req.Name
	}
	if req.Phone != nil {
		driver.Phone = *req.Phone
	}
	if req.Email != nil {
		driver.Email = *req.Email
	}
	if req.Status != nil {
		switch *req.Status {
		case models.DriverStatusAvailable, models.DriverStatusOnShift, models.DriverStatusUnavailable:
			driver.Status = *req.Status
		default:
			return nil, fmt.Errorf("invalid driver status: %s", *req.Status)
		}
	}
	if req.MotorcycleID != nil {
		if _, err := s.motorcycleRepo.GetByID(ctx, *req.MotorcycleID); err != nil {
			return nil, errors.New("motorcycle not found")
		}
		driver.MotorcycleID = req.MotorcycleID
	}

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}
	return driver, nil
}

func (s *FleetService) DeleteDriver(ctx context.Context, driverID string) error {
	id, err := uuid.Parse(driverID)
	if err != nil {
		return errors.New("invalid driver ID")
	}
	return s.driverRepo.Delete(ctx, id)
}

func (s *FleetService) GetDrivers(ctx context.Context, limit, offset int) ([]models.Driver, error) {
	return s.driverRepo.GetAll(ctx, limit, offset)
}

// Motorcycle CRUD

type CreateMotorcycleRequest struct {
	LicensePlate string `json:"license_plate" binding:"required"`
	Brand        string `json:"brand"`
	Year         int    `json:"year"`
}

type UpdateMotorcycleRequest struct {
	Brand  *string `json:"brand"`
	Year   *int    `json:"year"`
	Status *string `json:"status"`
}

func (s *FleetService) CreateMotorcycle(ctx context.Context, req *CreateMotorcycleRequest) (*models.Motorcycle, error) {
	motorcycle := &models.Motorcycle{
		LicensePlate: req.LicensePlate,
		Brand:        req.Brand,
		Year:         req.Year,
		Status:       models.MotorcycleStatusAvailable,
	}
	if err := s.motorcycleRepo.Create(ctx, motorcycle); err != nil {
		return nil, fmt.Errorf("failed to create motorcycle: %w", err)
	}
	return motorcycle, nil
}

func (s *FleetService) GetMotorcycle(ctx context.Context, motorcycleID string) (*models.Motorcycle, error) {
	id, err := uuid.Parse(motorcycleID)
	if err != nil {
		return nil, errors.New("invalid motorcycle ID")
	}
	return s.motorcycleRepo.GetByID(ctx, id)
}

func (s *FleetService) UpdateMotorcycle(ctx context.Context, motorcycleID string, req *UpdateMotorcycleRequest) (*models.Motorcycle, error) {
	id, err := uuid.Parse(motorcycleID)
	if err != nil {
		return nil, errors.New("invalid motorcycle ID")
	}

	motorcycle, err := s.motorcycleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("motorcycle not found")
	}

	if req.Brand != nil {
		motorcycle.Brand = *req.Brand
	}
	if req.Year != nil {
		motorcycle.Year = *req.Year
	}
	if req.Status != nil {
		switch *req.Status {
		case models.MotorcycleStatusAvailable, models.MotorcycleStatusInUse, models.MotorcycleStatusMaintenance:
			motorcycle.Status = *req.Status
		default:
			return nil, fmt.Errorf("invalid motorcycle status: %s", *req.Status)
		}
	}

	if err := s.motorcycleRepo.Update(ctx, motorcycle); err != nil {
		return nil, fmt.Errorf("failed to update motorcycle: %w", err)
	}
	return motorcycle, nil
}

func (s *FleetService) DeleteMotorcycle(ctx context.Context, motorcycleID string) error {
	id, err := uuid.Parse(motorcycleID)
	if err != nil {
		return errors.New("invalid motorcycle ID")
	}
	return s.motorcycleRepo.Delete(ctx, id)
}

func (s *FleetService) GetMotorcycles(ctx context.Context, limit, offset int) ([]models.Motorcycle, error) {
	return s.motorcycleRepo.GetAll(ctx, limit, offset)
}
