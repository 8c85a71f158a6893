package repositories

import (
	"context"
	"quickdeliver-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, id).Error
}

func (r *customerRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&customers).Error
	return customers, err
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

func (r *restaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Restaurant{}, id).Error
}

func (r *restaurantRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&restaurants).Error
	return restaurants, err
}

func (r *restaurantRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	searchQuery := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR address ILIKE ?", searchQuery, searchQuery).
		Limit(limit).Offset(offset).
		Find(&restaurants).Error
	return restaurants, err
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *menuRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Menu, error) {
	var menu models.Menu
	err := r.db.WithContext(ctx).Preload("Restaurant").Where("id = ?", id).First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) Update(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Save(menu).Error
}

func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Menu{}, id).Error
}

func (r *menuRepository) GetByRestaurantID(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]models.Menu, error) {
	var menus []models.Menu
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Limit(limit).Offset(offset).
		Find(&menus).Error
	return menus, err
}

func (r *menuRepository) GetAvailableByRestaurantID(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]models.Menu, error) {
	var menus []models.Menu
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND availability = ?", restaurantID, true).
		Limit(limit).Offset(offset).
		Find(&menus).Error
	return menus, err
}

type driverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, driver *models.Driver) error {
	return r.db.WithContext(ctx).Create(driver).Error
}

func (r *driverRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.WithContext(ctx).Preload("Motorcycle").Where("id = ?", id).First(&driver).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) Update(ctx context.Context, driver *models.Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

func (r *driverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Driver{}, id).Error
}

func (r *driverRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Driver, error) {
	var drivers []models.Driver
	err := r.db.WithContext(ctx).Preload("Motorcycle").Limit(limit).Offset(offset).Find(&drivers).Error
	return drivers, err
}

func (r *driverRepository) GetByStatus(ctx context.Context, status string) ([]models.Driver, error) {
	var drivers []models.Driver
	err := r.db.WithContext(ctx).Preload("Motorcycle").Where("status = ?", status).Find(&drivers).Error
	return drivers, err
}

type motorcycleRepository struct {
	db *gorm.DB
}

func NewMotorcycleRepository(db *gorm.DB) MotorcycleRepository {
	return &motorcycleRepository{db: db}
}

func (r *motorcycleRepository) Create(ctx context.Context, motorcycle *models.Motorcycle) error {
	return r.db.WithContext(ctx).Create(motorcycle).Error
}

func (r *motorcycleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Motorcycle, error) {
	var motorcycle models.Motorcycle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&motorcycle).Error
	if err != nil {
		return nil, err
	}
	return &motorcycle, nil
}

func (r *motorcycleRepository) GetByPlate(ctx context.Context, plate string) (*models.Motorcycle, error) {
	var motorcycle models.Motorcycle
	err := r.db.WithContext(ctx).Where("license_plate = ?", plate).First(&motorcycle).Error
	if err != nil {
		return nil, err
	}
	return &motorcycle, nil
}

func (r *motorcycleRepository) Update(ctx context.Context, motorcycle *models.Motorcycle) error {
	return r.db.WithContext(ctx).Save(motorcycle).Error
}

func (r *motorcycleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Motorcycle{}, id).Error
}

func (r *motorcycleRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Motorcycle, error) {
	var motorcycles []models.Motorcycle
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&motorcycles).Error
	return motorcycles, err
}

func (r *motorcycleRepository) GetByStatus(ctx context.Context, status string) ([]models.Motorcycle, error) {
	var motorcycles []models.Motorcycle
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&motorcycles).Error
	return motorcycles, err
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]models.Address, int64, error) {
	var addresses []models.Address
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Address{}).
		Where("customer_id = ?", customerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("is_default DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&addresses).Error
	return addresses, total, err
}

func (r *addressRepository) Update(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *addressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Address{}, id).Error
}

func (r *addressRepository) UnsetDefaultAddresses(ctx context.Context, customerID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Address{}).
		Where("customer_id = ?", customerID).
		Update("is_default", false).Error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Driver").Preload("Driver.Motorcycle").Preload("Address").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Order{}, id).Error
}

func (r *orderRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByRestaurantID(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByDriverID(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByStatus(ctx context.Context, status string, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}
