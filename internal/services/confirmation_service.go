package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"quickdeliver-backend/pkg/cache"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const confirmationKeyPrefix = "checkout_confirmation:"

// ConfirmationService stores checkout results in Redis for the confirmation
// screen. Results are consume-once and expire if never fetched.
type ConfirmationService struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

func NewConfirmationService(cache *cache.RedisCache, ttl time.Duration) *ConfirmationService {
	return &ConfirmationService{cache: cache, ttl: ttl}
}

func (s *ConfirmationService) PresentConfirmation(ctx context.Context, customerID uuid.UUID, result *CheckoutResult) error {
	key := confirmationKeyPrefix + customerID.String()
	if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
		return fmt.Errorf("failed to store checkout confirmation: %w", err)
	}
	return nil
}

// ConsumeConfirmation returns and removes the customer's pending checkout
// result. Returns (nil, nil) when none is pending.
func (s *ConfirmationService) ConsumeConfirmation(ctx context.Context, customerID uuid.UUID) (*CheckoutResult, error) {
	key := confirmationKeyPrefix + customerID.String()

	var result CheckoutResult
	if err := s.cache.Get(ctx, key, &result); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load checkout confirmation: %w", err)
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("Warning: failed to clear checkout confirmation for %s: %v", customerID, err)
	}
	return &result, nil
}
