package repositories

import (
	"context"
	"quickdeliver-backend/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerRepository interface for PostgreSQL customer operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, limit, offset int) ([]models.Customer, error)
}

// RestaurantRepository interface for PostgreSQL restaurant operations
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, limit, offset int) ([]models.Restaurant, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.Restaurant, error)
}

// MenuRepository interface for PostgreSQL menu operations
type MenuRepository interface {
	Create(ctx context.Context, menu *models.Menu) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Menu, error)
	Update(ctx context.Context, menu *models.Menu) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByRestaurantID(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]models.Menu, error)
	GetAvailableByRestaurantID(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]models.Menu, error)
}

// DriverRepository interface for PostgreSQL driver operations
type DriverRepository interface {
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	Update(ctx context.Context, driver *models.Driver) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, limit, offset int) ([]models.Driver, error)
	GetByStatus(ctx context.Context, status string) ([]models.Driver, error)
}

// MotorcycleRepository interface for PostgreSQL motorcycle operations
type MotorcycleRepository interface {
	Create(ctx context.Context, motorcycle *models.Motorcycle) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Motorcycle, error)
	GetByPlate(ctx context.Context, plate string) (*models.Motorcycle, error)
	Update(ctx context.Context, motorcycle *models.Motorcycle) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, limit, offset int) ([]models.Motorcycle, error)
	GetByStatus(ctx context.Context, status string) ([]models.Motorcycle, error)
}

// AddressRepository interface for PostgreSQL address operations
type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	GetByCustomerID(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]models.Address, int64, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
	UnsetDefaultAddresses(ctx context.Context, customerID uuid.UUID) error
}

// OrderRepository interface for PostgreSQL order operations
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]models.Order, error)
	GetByRestaurantID(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]models.Order, error)
	GetByDriverID(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]models.Order, error)
	GetByStatus(ctx context.Context, status string, limit, offset int) ([]models.Order, error)
}

// ProductRepository interface for MongoDB product operations
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetAll(ctx context.Context, limit, offset int) ([]models.Product, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.Product, error)
}
