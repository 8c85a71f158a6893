package services

import (
	"context"
	"errors"
	"testing"

	"quickdeliver-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutFixture(t *testing.T) (*CartStore, *memorySnapshotStorage) {
	t.Helper()
	storage := newMemorySnapshotStorage()
	store := NewCartStore(context.Background(), storage, "cart:checkout")
	return store, storage
}

func fillCart(ctx context.Context, store *CartStore) {
	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 10.0, 2))
	payload := testPayload(uuid.New(), uuid.New(), 5.0, 1)
	payload.ProductName = "Garlic Bread"
	store.AddItem(ctx, payload)
}

func testDriver(withMotorcycle bool) *models.Driver {
	driver := &models.Driver{
		ID:     uuid.New(),
		Name:   "Marco",
		Status: models.DriverStatusOnShift,
	}
	if withMotorcycle {
		driver.Motorcycle = &models.Motorcycle{
			ID:           uuid.New(),
			LicensePlate: "ABC-123",
			Status:       models.MotorcycleStatusInUse,
		}
	}
	return driver
}

func testAddress() *models.Address {
	return &models.Address{
		ID:     uuid.New(),
		Street: "42 Main St",
		City:   "Springfield",
	}
}

func TestValidateCart(t *testing.T) {
	service := NewCheckoutService(nil, nil, nil, nil)

	validation := service.ValidateCart(nil)
	assert.False(t, validation.Valid)
	assert.NotEmpty(t, validation.Message)

	validation = service.ValidateCart([]models.CartLine{{Price: 10, Quantity: 1}})
	assert.True(t, validation.Valid)
	assert.Empty(t, validation.Message)

	validation = service.ValidateCart([]models.CartLine{{Price: 0, Quantity: 1}})
	assert.False(t, validation.Valid)

	validation = service.ValidateCart([]models.CartLine{{Price: 10, Quantity: 0}})
	assert.False(t, validation.Valid)
}

func TestCheckoutCreatesOneOrderPerLine(t *testing.T) {
	ctx := context.Background()
	store, storage := checkoutFixture(t)
	fillCart(ctx, store)
	store.OpenSidebar()

	orders := &mockOrderPlacer{}
	driver := testDriver(true)
	fleet := &mockDriverAssigner{driver: driver}
	notifier := &mockNotifier{}
	presenter := &mockPresenter{}
	service := NewCheckoutService(orders, fleet, notifier, presenter)

	customerID := uuid.New()
	address := testAddress()
	result, err := service.Checkout(ctx, store, customerID, &mockAddressSelector{address: address}, &mockConfirmer{confirmed: true})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.OrderCount)
	assert.Equal(t, 25.0, result.TotalAmount)
	require.NotNil(t, result.FirstOrderID)

	created := orders.createdOrders()
	require.Len(t, created, 2)
	for _, order := range created {
		assert.Equal(t, customerID, order.CustomerID)
		require.NotNil(t, order.DriverID)
		assert.Equal(t, driver.ID, *order.DriverID)
		require.NotNil(t, order.AddressID)
		assert.Equal(t, address.ID, *order.AddressID)
		assert.Equal(t, models.OrderStatusPending, order.Status)
	}

	// Post-success side effects
	assert.Equal(t, []string{"ABC-123"}, fleet.trackedPlates)
	require.Len(t, notifier.successes, 1)
	assert.Contains(t, notifier.successes[0], "Marco")
	require.Len(t, presenter.results, 1)
	assert.Equal(t, result, presenter.results[0])
	assert.True(t, store.IsEmpty())
	assert.False(t, store.IsSidebarOpen())
	assert.False(t, storage.has("cart:checkout"))
}

func TestCheckoutEmptyCartCallsNoCollaborators(t *testing.T) {
	ctx := context.Background()
	store, _ := checkoutFixture(t)

	orders := &mockOrderPlacer{}
	fleet := &mockDriverAssigner{}
	notifier := &mockNotifier{}
	presenter := &mockPresenter{}
	selector := &mockAddressSelector{address: testAddress()}
	confirmer := &mockConfirmer{confirmed: true}
	service := NewCheckoutService(orders, fleet, notifier, presenter)

	result, err := service.Checkout(ctx, store, uuid.New(), selector, confirmer)

	require.ErrorIs(t, err, ErrInvalidCart)
	assert.Nil(t, result)
	assert.Equal(t, 0, selector.calls)
	assert.Equal(t, 0, confirmer.calls)
	assert.Equal(t, 0, fleet.assignCalls)
	assert.Empty(t, orders.createdOrders())
	assert.Empty(t, notifier.errors)
	assert.Empty(t, presenter.results)
}

func TestCheckoutCancelledAtAddressSelection(t *testing.T) {
	ctx := context.Background()
	store, _ := checkoutFixture(t)
	fillCart(ctx, store)

	orders := &mockOrderPlacer{}
	fleet := &mockDriverAssigner{driver: testDriver(true)}
	confirmer := &mockConfirmer{confirmed: true}
	service := NewCheckoutService(orders, fleet, &mockNotifier{}, &mockPresenter{})

	result, err := service.Checkout(ctx, store, uuid.New(), &mockAddressSelector{address: nil}, confirmer)

	require.ErrorIs(t, err, ErrCheckoutCancelled)
	assert.Nil(t, result)
	assert.Equal(t, 0, confirmer.calls)
	assert.Equal(t, 0, fleet.assignCalls)
	assert.Empty(t, orders.createdOrders())
	assert.Len(t, store.Lines(), 2)
}

func TestCheckoutCancelledAtConfirmation(t *testing.T) {
	ctx := context.Background()
	store, _ := checkoutFixture(t)
	fillCart(ctx, store)

	orders := &mockOrderPlacer{}
	fleet := &mockDriverAssigner{driver: testDriver(true)}
	service := NewCheckoutService(orders, fleet, &mockNotifier{}, &mockPresenter{})

	confirmer := &mockConfirmer{confirmed: false}
	result, err := service.Checkout(ctx, store, uuid.New(), &mockAddressSelector{address: testAddress()}, confirmer)

	require.ErrorIs(t, err, ErrCheckoutCancelled)
	assert.Nil(t, result)
	assert.Equal(t, 1, confirmer.calls)
	assert.NotEmpty(t, confirmer.prompt.Message)
	assert.Equal(t, 0, fleet.assignCalls)
	assert.Empty(t, orders.createdOrders())
	assert.Len(t, store.Lines(), 2)
}

func TestCheckoutWithoutAvailableDriver(t *testing.T) {
	ctx := context.Background()
	store, _ := checkoutFixture(t)
	fillCart(ctx, store)

	orders := &mockOrderPlacer{}
	fleet := &mockDriverAssigner{driver: nil}
	notifier := &mockNotifier{}
	presenter := &mockPresenter{}
	service := NewCheckoutService(orders, fleet, notifier, presenter)

	result, err := service.Checkout(ctx, store, uuid.New(), &mockAddressSelector{address: testAddress()}, &mockConfirmer{confirmed: true})

	require.NoError(t, err)
	assert.Equal(t, 2, result.OrderCount)

	for _, order := range orders.createdOrders() {
		assert.Nil(t, order.DriverID)
	}
	assert.Empty(t, fleet.trackedPlates)
	assert.Empty(t, notifier.successes)
	require.Len(t, presenter.results, 1)
	assert.True(t, store.IsEmpty())
}

func TestCheckoutDriverAssignmentErrorDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	store, _ := checkoutFixture(t)
	fillCart(ctx, store)

	orders := &mockOrderPlacer{}
	fleet := &mockDriverAssigner{assignErr: errors.New("fleet service down")}
	service := NewCheckoutService(orders, fleet, &mockNotifier{}, &mockPresenter{})

	result, err := service.Checkout(ctx, store, uuid.New(), &mockAddressSelector{address: testAddress()}, &mockConfirmer{confirmed: true})

	require.NoError(t, err)
	assert.Equal(t, 2, result.OrderCount)
	for _, order := range orders.createdOrders() {
		assert.Nil(t, order.DriverID)
	}
}

func TestCheckoutPartialFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	store, storage := checkoutFixture(t)
	fillCart(ctx, store)

	driver := testDriver(true)
	orders := &mockOrderPlacer{
		failOn: func(order *models.Order) bool {
			return order.TotalPrice == 5.0 // the Garlic Bread line
		},
	}
	fleet := &mockDriverAssigner{driver: driver}
	notifier := &mockNotifier{}
	presenter := &mockPresenter{}
	service := NewCheckoutService(orders, fleet, notifier, presenter)

	result, err := service.Checkout(ctx, store, uuid.New(), &mockAddressSelector{address: testAddress()}, &mockConfirmer{confirmed: true})

	require.Error(t, err)
	assert.Nil(t, result)

	// Every order that made it was rolled back and the driver released
	created := orders.createdOrders()
	require.Len(t, created, 1)
	require.Len(t, orders.deletedIDs(), 1)
	assert.Equal(t, created[0].ID, orders.deletedIDs()[0])
	assert.Equal(t, []uuid.UUID{driver.ID}, fleet.released)

	// No success side effects, cart untouched
	assert.Empty(t, fleet.trackedPlates)
	assert.Empty(t, notifier.successes)
	require.Len(t, notifier.errors, 1)
	assert.Empty(t, presenter.results)
	assert.Len(t, store.Lines(), 2)
	assert.True(t, storage.has("cart:checkout"))
}

func TestCheckoutSelectorFailure(t *testing.T) {
	ctx := context.Background()
	store, _ := checkoutFixture(t)
	fillCart(ctx, store)

	orders := &mockOrderPlacer{}
	service := NewCheckoutService(orders, &mockDriverAssigner{}, &mockNotifier{}, &mockPresenter{})

	selector := &mockAddressSelector{err: errors.New("address service down")}
	result, err := service.Checkout(ctx, store, uuid.New(), selector, &mockConfirmer{confirmed: true})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCheckoutCancelled)
	assert.Nil(t, result)
	assert.Empty(t, orders.createdOrders())
	assert.Len(t, store.Lines(), 2)
}

func TestCheckoutDriverWithoutMotorcycleSkipsTracking(t *testing.T) {
	ctx := context.Background()
	store, _ := checkoutFixture(t)
	fillCart(ctx, store)

	driver := testDriver(false)
	fleet := &mockDriverAssigner{driver: driver}
	notifier := &mockNotifier{}
	service := NewCheckoutService(&mockOrderPlacer{}, fleet, notifier, &mockPresenter{})

	result, err := service.Checkout(ctx, store, uuid.New(), &mockAddressSelector{address: testAddress()}, &mockConfirmer{confirmed: true})

	require.NoError(t, err)
	assert.Equal(t, 2, result.OrderCount)
	assert.Empty(t, fleet.trackedPlates)
	require.Len(t, notifier.successes, 1)
}
