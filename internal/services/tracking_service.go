package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quickdeliver-backend/pkg/cache"
	"quickdeliver-backend/pkg/messaging"

	"github.com/go-redis/redis/v8"
)

const (
	locationKeyPrefix = "location:"
	locationTTL       = 5 * time.Minute
)

// Coordinates is the last known position of a motorcycle.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TrackingService consumes the real-time location feed and keeps the last
// known position per tracked plate in Redis. Updates for plates without
// active tracking are dropped.
type TrackingService struct {
	cache    *cache.RedisCache
	consumer *messaging.KafkaConsumer
	brokers  []string
	topic    string
	groupID  string
}

func NewTrackingService(cache *cache.RedisCache, consumer *messaging.KafkaConsumer, brokers []string, topic, groupID string) *TrackingService {
	return &TrackingService{
		cache:    cache,
		consumer: consumer,
		brokers:  brokers,
		topic:    topic,
		groupID:  groupID,
	}
}

// Run consumes the location topic until the process exits. Meant to run in
// its own goroutine.
func (s *TrackingService) Run() {
	s.consumer.ConsumeMessages(s.topic, s.brokers, s.groupID, s.HandleLocationUpdate)
}

func (s *TrackingService) HandleLocationUpdate(payload []byte) error {
	var update messaging.LocationUpdate
	if err := json.Unmarshal(payload, &update); err != nil {
		return fmt.Errorf("malformed location update: %w", err)
	}
	if update.Plate == "" {
		return fmt.Errorf("location update without plate")
	}

	ctx := context.Background()
	tracked, err := s.cache.Exists(ctx, trackingKeyPrefix+update.Plate)
	if err != nil {
		return fmt.Errorf("failed to check tracking state for %s: %w", update.Plate, err)
	}
	if !tracked {
		return nil
	}

	coords := Coordinates{Lat: update.Lat, Lng: update.Lng}
	return s.cache.Set(ctx, locationKeyPrefix+update.Plate, coords, locationTTL)
}

// GetLastLocation returns the last stored position for a plate, or
// (nil, nil) when none is known.
func (s *TrackingService) GetLastLocation(ctx context.Context, plate string) (*Coordinates, error) {
	var coords Coordinates
	if err := s.cache.Get(ctx, locationKeyPrefix+plate, &coords); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load location for %s: %w", plate, err)
	}
	return &coords, nil
}
