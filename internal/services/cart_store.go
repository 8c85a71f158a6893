package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/pkg/cache"

	"github.com/google/uuid"
)

// SnapshotStorage is the durable key-value mirror for cart snapshots. The
// stored value is the JSON encoding of []models.CartLine. A missing key is
// reported through the ok flag, not as an error.
type SnapshotStorage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type redisSnapshotStorage struct {
	cache *cache.RedisCache
}

// NewRedisSnapshotStorage backs cart snapshots with Redis.
func NewRedisSnapshotStorage(c *cache.RedisCache) SnapshotStorage {
	return &redisSnapshotStorage{cache: c}
}

func (s *redisSnapshotStorage) Get(ctx context.Context, key string) (string, bool, error) {
	return s.cache.GetString(ctx, key)
}

func (s *redisSnapshotStorage) Set(ctx context.Context, key, value string) error {
	return s.cache.SetString(ctx, key, value)
}

func (s *redisSnapshotStorage) Remove(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, key)
}

// CartStore is the sole authority over one customer's cart contents and
// sidebar visibility. Every successful mutation synchronously re-persists the
// full snapshot, so the durable copy never diverges from memory. Persistence
// is best-effort: the backend order, not the cart, is the system of record.
type CartStore struct {
	mu          sync.Mutex
	storage     SnapshotStorage
	key         string
	lines       []models.CartLine
	sidebarOpen bool
}

// NewCartStore hydrates the store from durable storage. A read failure yields
// an empty cart rather than an error.
func NewCartStore(ctx context.Context, storage SnapshotStorage, key string) *CartStore {
	s := &CartStore{
		storage: storage,
		key:     key,
	}
	s.load(ctx)
	return s
}

func (s *CartStore) load(ctx context.Context) {
	value, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		log.Printf("Failed to load cart %s, starting empty: %v", s.key, err)
		s.lines = nil
		return
	}
	if !ok {
		s.lines = nil
		return
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(value), &lines); err != nil {
		log.Printf("Failed to decode cart %s, starting empty: %v", s.key, err)
		s.lines = nil
		return
	}
	s.lines = lines
}

func (s *CartStore) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		log.Printf("Failed to encode cart %s: %v", s.key, err)
		return
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		log.Printf("Failed to persist cart %s: %v", s.key, err)
	}
}

// AddItem appends a new line, or merges quantity into the existing line for
// the same menu id. A resolved quantity of zero or less is a logged no-op.
func (s *CartStore) AddItem(ctx context.Context, payload models.AddToCartPayload) {
	quantity := payload.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		log.Printf("Ignoring add to cart with invalid quantity %d", quantity)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.lines {
		if line.MenuID == payload.MenuID {
			s.updateQuantityLocked(ctx, line.ID, line.Quantity+quantity)
			return
		}
	}

	line := models.CartLine{
		ID:                 uuid.NewString(),
		MenuID:             payload.MenuID,
		RestaurantID:       payload.RestaurantID,
		ProductID:          payload.ProductID,
		ProductName:        payload.ProductName,
		ProductDescription: payload.ProductDescription,
		ProductImage:       payload.ProductImage,
		RestaurantName:     payload.RestaurantName,
		Price:              payload.Price,
		Quantity:           quantity,
		Subtotal:           payload.Price * float64(quantity),
		CreatedAt:          time.Now(),
	}
	s.lines = append(s.lines, line)
	s.persistLocked(ctx)
}

// UpdateQuantity replaces the quantity of the matching line and recomputes
// its subtotal. A quantity of zero or less removes the line; an unmatched id
// is a no-op.
func (s *CartStore) UpdateQuantity(ctx context.Context, lineID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateQuantityLocked(ctx, lineID, quantity)
}

func (s *CartStore) updateQuantityLocked(ctx context.Context, lineID string, quantity int) {
	if quantity <= 0 {
		s.removeItemLocked(ctx, lineID)
		return
	}

	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines[i].Quantity = quantity
			s.lines[i].Subtotal = s.lines[i].Price * float64(quantity)
			break
		}
	}
	s.persistLocked(ctx)
}

// RemoveItem deletes the matching line; a no-op if absent.
func (s *CartStore) RemoveItem(ctx context.Context, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeItemLocked(ctx, lineID)
}

func (s *CartStore) removeItemLocked(ctx context.Context, lineID string) {
	filtered := s.lines[:0]
	for _, line := range s.lines {
		if line.ID != lineID {
			filtered = append(filtered, line)
		}
	}
	s.lines = filtered
	s.persistLocked(ctx)
}

// ClearCart empties the cart and removes the storage key entirely, so a
// later hydration starts clean.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	if err := s.storage.Remove(ctx, s.key); err != nil {
		log.Printf("Failed to remove cart %s from storage: %v", s.key, err)
	}
}

// ClearRestaurantItems removes every line belonging to the restaurant.
func (s *CartStore) ClearRestaurantItems(ctx context.Context, restaurantID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.lines[:0]
	for _, line := range s.lines {
		if line.RestaurantID != restaurantID {
			filtered = append(filtered, line)
		}
	}
	s.lines = filtered
	s.persistLocked(ctx)
}

// Reload re-hydrates the store from durable storage, discarding the
// in-memory snapshot.
func (s *CartStore) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)
}

// Lines returns a copy of the current snapshot in insertion order.
func (s *CartStore) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

func (s *CartStore) IsInCart(menuID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.lines {
		if line.MenuID == menuID {
			return true
		}
	}
	return false
}

func (s *CartStore) GetMenuQuantity(menuID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.lines {
		if line.MenuID == menuID {
			return line.Quantity
		}
	}
	return 0
}

func (s *CartStore) GetItemByMenuID(menuID uuid.UUID) (models.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.lines {
		if line.MenuID == menuID {
			return line, true
		}
	}
	return models.CartLine{}, false
}

func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *CartStore) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, line := range s.lines {
		total += line.Subtotal
	}
	return total
}

func (s *CartStore) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// RestaurantIDs returns the deduplicated restaurant ids across all lines,
// in first-seen order.
func (s *CartStore) RestaurantIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, line := range s.lines {
		if !seen[line.RestaurantID] {
			seen[line.RestaurantID] = true
			ids = append(ids, line.RestaurantID)
		}
	}
	return ids
}

func (s *CartStore) HasMultipleRestaurants() bool {
	return len(s.RestaurantIDs()) > 1
}

// Sidebar state is ephemeral and process-local; it is never persisted.

func (s *CartStore) OpenSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = true
}

func (s *CartStore) CloseSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = false
}

func (s *CartStore) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = !s.sidebarOpen
}

func (s *CartStore) IsSidebarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarOpen
}

// CartManager owns the per-customer cart stores for the life of the process.
// Stores are hydrated lazily on first access.
type CartManager struct {
	mu        sync.Mutex
	storage   SnapshotStorage
	keyPrefix string
	stores    map[uuid.UUID]*CartStore
}

func NewCartManager(storage SnapshotStorage, keyPrefix string) *CartManager {
	return &CartManager{
		storage:   storage,
		keyPrefix: keyPrefix,
		stores:    make(map[uuid.UUID]*CartStore),
	}
}

func (m *CartManager) Store(ctx context.Context, customerID uuid.UUID) *CartStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, exists := m.stores[customerID]; exists {
		return store
	}

	store := NewCartStore(ctx, m.storage, m.keyPrefix+":"+customerID.String())
	m.stores[customerID] = store
	return store
}
