package services

import (
	"context"
	"errors"
	"sync"

	"quickdeliver-backend/internal/models"

	"github.com/google/uuid"
)

// memorySnapshotStorage is an in-memory SnapshotStorage for tests.
type memorySnapshotStorage struct {
	mu      sync.Mutex
	data    map[string]string
	failSet bool
	failGet bool
}

func newMemorySnapshotStorage() *memorySnapshotStorage {
	return &memorySnapshotStorage{data: make(map[string]string)}
}

func (m *memorySnapshotStorage) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return "", false, errors.New("storage unavailable")
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memorySnapshotStorage) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("storage unavailable")
	}
	m.data[key] = value
	return nil
}

func (m *memorySnapshotStorage) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memorySnapshotStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// mockOrderPlacer records created orders and can fail selectively.
type mockOrderPlacer struct {
	mu      sync.Mutex
	created []*models.Order
	deleted []uuid.UUID
	failOn  func(*models.Order) bool
}

func (m *mockOrderPlacer) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failOn != nil && m.failOn(order) {
		return nil, errors.New("order service unavailable")
	}

	placed := *order
	placed.ID = uuid.New()
	m.created = append(m.created, &placed)
	return &placed, nil
}

func (m *mockOrderPlacer) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockOrderPlacer) createdOrders() []*models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := make([]*models.Order, len(m.created))
	copy(orders, m.created)
	return orders
}

func (m *mockOrderPlacer) deletedIDs() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uuid.UUID, len(m.deleted))
	copy(ids, m.deleted)
	return ids
}

// mockDriverAssigner hands out a fixed driver, or none.
type mockDriverAssigner struct {
	driver        *models.Driver
	assignErr     error
	assignCalls   int
	released      []uuid.UUID
	trackedPlates []string
}

func (m *mockDriverAssigner) AssignRandom(ctx context.Context) (*models.Driver, error) {
	m.assignCalls++
	if m.assignErr != nil {
		return nil, m.assignErr
	}
	return m.driver, nil
}

func (m *mockDriverAssigner) Release(ctx context.Context, driverID uuid.UUID) error {
	m.released = append(m.released, driverID)
	return nil
}

func (m *mockDriverAssigner) StartTracking(ctx context.Context, plate string) error {
	m.trackedPlates = append(m.trackedPlates, plate)
	return nil
}

// mockNotifier records customer notifications.
type mockNotifier struct {
	successes []string
	errors    []string
}

func (m *mockNotifier) NotifySuccess(ctx context.Context, customerID uuid.UUID, message string) {
	m.successes = append(m.successes, message)
}

func (m *mockNotifier) NotifyError(ctx context.Context, customerID uuid.UUID, message string) {
	m.errors = append(m.errors, message)
}

// mockPresenter records presented checkout results.
type mockPresenter struct {
	results []*CheckoutResult
}

func (m *mockPresenter) PresentConfirmation(ctx context.Context, customerID uuid.UUID, result *CheckoutResult) error {
	m.results = append(m.results, result)
	return nil
}

// mockAddressSelector returns a fixed address, nil for cancellation.
type mockAddressSelector struct {
	address *models.Address
	err     error
	calls   int
}

func (m *mockAddressSelector) SelectAddress(ctx context.Context) (*models.Address, error) {
	m.calls++
	return m.address, m.err
}

// mockConfirmer answers the confirmation prompt with a fixed decision.
type mockConfirmer struct {
	confirmed bool
	err       error
	calls     int
	prompt    ConfirmationPrompt
}

func (m *mockConfirmer) Confirm(ctx context.Context, prompt ConfirmationPrompt) (bool, error) {
	m.calls++
	m.prompt = prompt
	return m.confirmed, m.err
}

// mockDriverRepository implements repositories.DriverRepository.
type mockDriverRepository struct {
	drivers map[uuid.UUID]*models.Driver
	updated []*models.Driver
}

func newMockDriverRepository(drivers ...*models.Driver) *mockDriverRepository {
	repo := &mockDriverRepository{drivers: make(map[uuid.UUID]*models.Driver)}
	for _, driver := range drivers {
		repo.drivers[driver.ID] = driver
	}
	return repo
}

func (m *mockDriverRepository) Create(ctx context.Context, driver *models.Driver) error {
	if driver.ID == uuid.Nil {
		driver.ID = uuid.New()
	}
	m.drivers[driver.ID] = driver
	return nil
}

func (m *mockDriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	driver, ok := m.drivers[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return driver, nil
}

func (m *mockDriverRepository) Update(ctx context.Context, driver *models.Driver) error {
	m.drivers[driver.ID] = driver
	m.updated = append(m.updated, driver)
	return nil
}

func (m *mockDriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.drivers, id)
	return nil
}

func (m *mockDriverRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Driver, error) {
	var drivers []models.Driver
	for _, driver := range m.drivers {
		drivers = append(drivers, *driver)
	}
	return drivers, nil
}

func (m *mockDriverRepository) GetByStatus(ctx context.Context, status string) ([]models.Driver, error) {
	var drivers []models.Driver
	for _, driver := range m.drivers {
		if driver.Status == status {
			drivers = append(drivers, *driver)
		}
	}
	return drivers, nil
}

// mockMotorcycleRepository implements repositories.MotorcycleRepository.
type mockMotorcycleRepository struct {
	motorcycles map[uuid.UUID]*models.Motorcycle
}

func newMockMotorcycleRepository(motorcycles ...*models.Motorcycle) *mockMotorcycleRepository {
	repo := &mockMotorcycleRepository{motorcycles: make(map[uuid.UUID]*models.Motorcycle)}
	for _, motorcycle := range motorcycles {
		repo.motorcycles[motorcycle.ID] = motorcycle
	}
	return repo
}

func (m *mockMotorcycleRepository) Create(ctx context.Context, motorcycle *models.Motorcycle) error {
	if motorcycle.ID == uuid.Nil {
		motorcycle.ID = uuid.New()
	}
	m.motorcycles[motorcycle.ID] = motorcycle
	return nil
}

func (m *mockMotorcycleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Motorcycle, error) {
	motorcycle, ok := m.motorcycles[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return motorcycle, nil
}

func (m *mockMotorcycleRepository) GetByPlate(ctx context.Context, plate string) (*models.Motorcycle, error) {
	for _, motorcycle := range m.motorcycles {
		if motorcycle.LicensePlate == plate {
			return motorcycle, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockMotorcycleRepository) Update(ctx context.Context, motorcycle *models.Motorcycle) error {
	m.motorcycles[motorcycle.ID] = motorcycle
	return nil
}

func (m *mockMotorcycleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.motorcycles, id)
	return nil
}

func (m *mockMotorcycleRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Motorcycle, error) {
	var motorcycles []models.Motorcycle
	for _, motorcycle := range m.motorcycles {
		motorcycles = append(motorcycles, *motorcycle)
	}
	return motorcycles, nil
}

func (m *mockMotorcycleRepository) GetByStatus(ctx context.Context, status string) ([]models.Motorcycle, error) {
	var motorcycles []models.Motorcycle
	for _, motorcycle := range m.motorcycles {
		if motorcycle.Status == status {
			motorcycles = append(motorcycles, *motorcycle)
		}
	}
	return motorcycles, nil
}

// mockOrderRepository implements repositories.OrderRepository.
type mockOrderRepository struct {
	orders    map[uuid.UUID]*models.Order
	createErr error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*models.Order)}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return order, nil
}

func (m *mockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range m.orders {
		if order.CustomerID == customerID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepository) GetByRestaurantID(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range m.orders {
		if order.RestaurantID == restaurantID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepository) GetByDriverID(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range m.orders {
		if order.DriverID != nil && *order.DriverID == driverID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepository) GetByStatus(ctx context.Context, status string, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range m.orders {
		if order.Status == status {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

// mockTrackingControl records tracking switches.
type mockTrackingControl struct {
	started []string
	stopped []string
}

func (m *mockTrackingControl) StartTracking(ctx context.Context, plate string) error {
	m.started = append(m.started, plate)
	return nil
}

func (m *mockTrackingControl) StopTracking(ctx context.Context, plate string) error {
	m.stopped = append(m.stopped, plate)
	return nil
}
