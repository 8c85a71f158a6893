package services

import (
	"context"
	"errors"
	"fmt"

	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/repositories"

	"github.com/google/uuid"
)

// RestaurantService manages restaurants.
type RestaurantService struct {
	restaurantRepo repositories.RestaurantRepository
}

func NewRestaurantService(restaurantRepo repositories.RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurantRepo: restaurantRepo}
}

type CreateRestaurantRequest struct {
	Name         string   `json:"name" binding:"required"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	ImageURL     string   `json:"image_url"`
	CuisineTypes []string `json:"cuisine_types"`
}

type UpdateRestaurantRequest struct {
	Name         *string   `json:"name"`
	Address      *string   `json:"address"`
	Phone        *string   `json:"phone"`
	Email        *string   `json:"email"`
	ImageURL     *string   `json:"image_url"`
	CuisineTypes *[]string `json:"cuisine_types"`
}

func (s *RestaurantService) CreateRestaurant(ctx context.Context, req *CreateRestaurantRequest) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		ImageURL:     req.ImageURL,
		CuisineTypes: req.CuisineTypes,
	}
	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	id, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, errors.New("invalid restaurant ID")
	}
	return s.restaurantRepo.GetByID(ctx, id)
}

func (s *RestaurantService) UpdateRestaurant(ctx context.Context, restaurantID string, req *UpdateRestaurantRequest) (*models.Restaurant, error) {
	id, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, errors.New("invalid restaurant ID")
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("restaurant not found")
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.Phone != nil {
		restaurant.Phone = *req.Phone
	}
	if req.Email != nil {
		restaurant.Email = *req.Email
	}
	if req.ImageURL != nil {
		restaurant.ImageURL = *req.ImageURL
	}
	if req.CuisineTypes != nil {
		restaurant.CuisineTypes = *req.CuisineTypes
	}

	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *RestaurantService) DeleteRestaurant(ctx context.Context, restaurantID string) error {
	id, err := uuid.Parse(restaurantID)
	if err != nil {
		return errors.New("invalid restaurant ID")
	}
	return s.restaurantRepo.Delete(ctx, id)
}

func (s *RestaurantService) GetRestaurants(ctx context.Context, limit, offset int) ([]models.Restaurant, error) {
	return s.restaurantRepo.GetAll(ctx, limit, offset)
}

func (s *RestaurantService) SearchRestaurants(ctx context.Context, query string, limit, offset int) ([]models.Restaurant, error) {
	if query == "" {
		return s.restaurantRepo.GetAll(ctx, limit, offset)
	}
	return s.restaurantRepo.Search(ctx, query, limit, offset)
}
