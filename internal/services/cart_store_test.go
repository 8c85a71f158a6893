package services

import (
	"context"
	"testing"

	"quickdeliver-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload(menuID, restaurantID uuid.UUID, price float64, quantity int) models.AddToCartPayload {
	return models.AddToCartPayload{
		MenuID:         menuID,
		RestaurantID:   restaurantID,
		ProductID:      "64f1c0ffee0ddba11ca70001",
		ProductName:    "Margherita Pizza",
		RestaurantName: "Mama Rosa",
		Price:          price,
		Quantity:       quantity,
	}
}

func TestCartStoreAddItem(t *testing.T) {
	ctx := context.Background()
	storage := newMemorySnapshotStorage()
	store := NewCartStore(ctx, storage, "cart:test")

	menuA := uuid.New()
	menuB := uuid.New()
	restaurant := uuid.New()

	store.AddItem(ctx, testPayload(menuA, restaurant, 10.0, 2))
	store.AddItem(ctx, testPayload(menuB, restaurant, 5.0, 1))

	lines := store.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, menuA, lines[0].MenuID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 20.0, lines[0].Subtotal)
	assert.NotEmpty(t, lines[0].ID)
	assert.NotEqual(t, lines[0].ID, lines[1].ID)
	assert.True(t, storage.has("cart:test"))
}

func TestCartStoreAddItemMergesDuplicateMenu(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemorySnapshotStorage(), "cart:test")

	menuID := uuid.New()
	restaurant := uuid.New()

	store.AddItem(ctx, testPayload(menuID, restaurant, 10.0, 1))
	store.AddItem(ctx, testPayload(menuID, restaurant, 10.0, 2))

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 30.0, lines[0].Subtotal)
}

func TestCartStoreAddItemDefaultsQuantityToOne(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemorySnapshotStorage(), "cart:test")

	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 10.0, 0))

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 10.0, lines[0].Subtotal)
}

func TestCartStoreAddItemIgnoresNegativeQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemorySnapshotStorage(), "cart:test")

	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 10.0, -3))

	assert.True(t, store.IsEmpty())
}

func TestCartStoreUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemorySnapshotStorage(), "cart:test")

	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 4.0, 2))
	lineID := store.Lines()[0].ID

	store.UpdateQuantity(ctx, lineID, 5)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 20.0, lines[0].Subtotal)
}

func TestCartStoreUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemorySnapshotStorage(), "cart:test")

	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 4.0, 2))
	lineID := store.Lines()[0].ID

	store.UpdateQuantity(ctx, lineID, 0)

	assert.True(t, store.IsEmpty())
}

func TestCartStoreUpdateQuantityUnknownLineIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemorySnapshotStorage(), "cart:test")

	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 4.0, 2))
	store.UpdateQuantity(ctx, "nonexistent", 7)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCartStoreRemoveItem(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemorySnapshotStorage(), "cart:test")

	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 4.0, 1))
	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 6.0, 1))
	lineID := store.Lines()[0].ID

	store.RemoveItem(ctx, lineID)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.NotEqual(t, lineID, lines[0].ID)
}

func TestCartStoreClearCartRemovesStorageKey(t *testing.T) {
	ctx := context.Background()
	storage := newMemorySnapshotStorage()
	store := NewCartStore(ctx, storage, "cart:test")

	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 4.0, 1))
	require.True(t, storage.has("cart:test"))

	store.ClearCart(ctx)

	assert.True(t, store.IsEmpty())
	assert.False(t, storage.has("cart:test"))
}

func TestCartStoreClearRestaurantItems(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemorySnapshotStorage(), "cart:test")

	restaurantA := uuid.New()
	restaurantB := uuid.New()
	store.AddItem(ctx, testPayload(uuid.New(), restaurantA, 4.0, 1))
	store.AddItem(ctx, testPayload(uuid.New(), restaurantA, 6.0, 1))
	store.AddItem(ctx, testPayload(uuid.New(), restaurantB, 8.0, 1))

	store.ClearRestaurantItems(ctx, restaurantA)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, restaurantB, lines[0].RestaurantID)
}

func TestCartStoreAggregates(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemorySnapshotStorage(), "cart:test")

	restaurantA := uuid.New()
	restaurantB := uuid.New()
	menuA := uuid.New()

	assert.True(t, store.IsEmpty())
	assert.Equal(t, 0, store.ItemCount())
	assert.Equal(t, 0.0, store.Total())
	assert.False(t, store.HasMultipleRestaurants())

	store.AddItem(ctx, testPayload(menuA, restaurantA, 10.0, 2))
	store.AddItem(ctx, testPayload(uuid.New(), restaurantB, 5.0, 3))

	assert.False(t, store.IsEmpty())
	assert.Equal(t, 5, store.ItemCount())
	assert.Equal(t, 35.0, store.Total())
	assert.Equal(t, []uuid.UUID{restaurantA, restaurantB}, store.RestaurantIDs())
	assert.True(t, store.HasMultipleRestaurants())

	assert.True(t, store.IsInCart(menuA))
	assert.Equal(t, 2, store.GetMenuQuantity(menuA))
	line, found := store.GetItemByMenuID(menuA)
	require.True(t, found)
	assert.Equal(t, menuA, line.MenuID)

	missing := uuid.New()
	assert.False(t, store.IsInCart(missing))
	assert.Equal(t, 0, store.GetMenuQuantity(missing))
	_, found = store.GetItemByMenuID(missing)
	assert.False(t, found)

	// Total always equals the sum of line subtotals
	sum := 0.0
	for _, l := range store.Lines() {
		sum += l.Subtotal
	}
	assert.Equal(t, sum, store.Total())
}

func TestCartStoreHydration(t *testing.T) {
	ctx := context.Background()
	storage := newMemorySnapshotStorage()

	first := NewCartStore(ctx, storage, "cart:test")
	first.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 12.5, 2))

	second := NewCartStore(ctx, storage, "cart:test")

	require.Len(t, second.Lines(), 1)
	assert.Equal(t, first.Lines()[0].ID, second.Lines()[0].ID)
	assert.Equal(t, 25.0, second.Total())
}

func TestCartStoreHydrationCorruptSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	storage := newMemorySnapshotStorage()
	storage.data["cart:test"] = "{not json"

	store := NewCartStore(ctx, storage, "cart:test")

	assert.True(t, store.IsEmpty())
}

func TestCartStoreHydrationStorageFailureStartsEmpty(t *testing.T) {
	ctx := context.Background()
	storage := newMemorySnapshotStorage()
	storage.failGet = true

	store := NewCartStore(ctx, storage, "cart:test")

	assert.True(t, store.IsEmpty())
}

func TestCartStorePersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	storage := newMemorySnapshotStorage()
	storage.failSet = true

	store := NewCartStore(ctx, storage, "cart:test")
	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 10.0, 1))

	require.Len(t, store.Lines(), 1)
	assert.False(t, storage.has("cart:test"))
}

func TestCartStoreReload(t *testing.T) {
	ctx := context.Background()
	storage := newMemorySnapshotStorage()
	store := NewCartStore(ctx, storage, "cart:test")

	store.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 10.0, 1))

	// External writer replaces the snapshot
	other := NewCartStore(ctx, storage, "cart:test")
	other.ClearCart(ctx)

	store.Reload(ctx)
	assert.True(t, store.IsEmpty())
}

func TestCartStoreSidebar(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemorySnapshotStorage(), "cart:test")

	assert.False(t, store.IsSidebarOpen())
	store.OpenSidebar()
	assert.True(t, store.IsSidebarOpen())
	store.ToggleSidebar()
	assert.False(t, store.IsSidebarOpen())
	store.ToggleSidebar()
	store.CloseSidebar()
	assert.False(t, store.IsSidebarOpen())
}

func TestCartManagerReusesStorePerCustomer(t *testing.T) {
	ctx := context.Background()
	manager := NewCartManager(newMemorySnapshotStorage(), "quickdeliver_cart")

	customerA := uuid.New()
	customerB := uuid.New()

	storeA := manager.Store(ctx, customerA)
	storeA.AddItem(ctx, testPayload(uuid.New(), uuid.New(), 10.0, 1))

	assert.Same(t, storeA, manager.Store(ctx, customerA))
	assert.True(t, manager.Store(ctx, customerB).IsEmpty())
}
