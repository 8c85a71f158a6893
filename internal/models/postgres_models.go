package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, j)
}

// StringArray type for PostgreSQL arrays
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, s)
}

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Driver statuses
const (
	DriverStatusAvailable   = "available"
	DriverStatusOnShift     = "on_shift"
	DriverStatusUnavailable = "unavailable"
)

// Motorcycle statuses
const (
	MotorcycleStatusAvailable   = "available"
	MotorcycleStatusInUse       = "in_use"
	MotorcycleStatusMaintenance = "maintenance"
)

// Customer model - PostgreSQL
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Restaurant model - PostgreSQL
type Restaurant struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string      `gorm:"not null" json:"name"`
	Address      string      `json:"address"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email"`
	ImageURL     string      `json:"image_url"`
	CuisineTypes StringArray `gorm:"type:jsonb" json:"cuisine_types"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Menu model - PostgreSQL. A menu is a priced, orderable association between
// a restaurant and a catalog product (the product itself lives in MongoDB).
type Menu struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	ProductID    string     `gorm:"not null" json:"product_id"` // MongoDB reference
	Price        float64    `gorm:"not null" json:"price"`
	Availability bool       `gorm:"default:true" json:"availability"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Motorcycle model - PostgreSQL
type Motorcycle struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LicensePlate string    `gorm:"uniqueIndex;not null" json:"license_plate"`
	Brand        string    `json:"brand"`
	Year         int       `json:"year"`
	Status       string    `gorm:"default:available" json:"status"` // available, in_use, maintenance
	CreatedAt    time.Time `json:"created_at"`
}

// Driver model - PostgreSQL
type Driver struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string      `gorm:"not null" json:"name"`
	LicenseNumber string      `gorm:"uniqueIndex;not null" json:"license_number"`
	Phone         string      `gorm:"not null" json:"phone"`
	Email         string      `json:"email"`
	Status        string      `gorm:"default:available" json:"status"` // available, on_shift, unavailable
	MotorcycleID  *uuid.UUID  `gorm:"type:uuid" json:"motorcycle_id"`
	Motorcycle    *Motorcycle `gorm:"foreignKey:MotorcycleID" json:"motorcycle,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Address model - PostgreSQL (customer delivery addresses)
type Address struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null" json:"customer_id"`
	Customer       Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Street         string    `gorm:"not null" json:"street"`
	City           string    `gorm:"not null" json:"city"`
	State          string    `gorm:"not null" json:"state"`
	PostalCode     string    `gorm:"not null" json:"postal_code"`
	AdditionalInfo string    `json:"additional_info"`
	IsDefault      bool      `gorm:"default:false" json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

// Order model - PostgreSQL (critical transactional data). One order per cart
// line: it references a single menu offering with a quantity.
type Order struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null" json:"customer_id"`
	Customer     Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	MenuID       uuid.UUID  `gorm:"type:uuid;not null" json:"menu_id"`
	Menu         Menu       `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	DriverID     *uuid.UUID `gorm:"type:uuid" json:"driver_id"`
	Driver       *Driver    `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	AddressID    *uuid.UUID `gorm:"type:uuid" json:"address_id"`
	Address      *Address   `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Quantity     int        `gorm:"not null" json:"quantity"`
	TotalPrice   float64    `gorm:"not null" json:"total_price"`
	Status       string     `gorm:"default:pending" json:"status"` // pending, in_progress, delivered, cancelled
	OrderLogs    JSONB      `gorm:"type:jsonb" json:"order_logs"`
	CreatedAt    time.Time  `json:"created_at"`
}
