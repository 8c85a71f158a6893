package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/repositories"
	"quickdeliver-backend/pkg/cache"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const menuCacheTTL = 10 * time.Minute

// MenuItemResponse is a menu entry enriched with its catalog product, the
// shape the storefront renders and feeds into add-to-cart.
type MenuItemResponse struct {
	ID                 uuid.UUID `json:"id"`
	RestaurantID       uuid.UUID `json:"restaurant_id"`
	RestaurantName     string    `json:"restaurant_name"`
	ProductID          string    `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductDescription string    `json:"product_description,omitempty"`
	ProductImage       string    `json:"product_image,omitempty"`
	Price              float64   `json:"price"`
	Availability       bool      `json:"availability"`
}

// MenuService manages menu entries and joins them with their MongoDB catalog
// products for the browse surface. Restaurant menus are cached briefly.
type MenuService struct {
	menuRepo       repositories.MenuRepository
	restaurantRepo repositories.RestaurantRepository
	productRepo    repositories.ProductRepository
	cache          *cache.RedisCache
}

func NewMenuService(
	menuRepo repositories.MenuRepository,
	restaurantRepo repositories.RestaurantRepository,
	productRepo repositories.ProductRepository,
	cache *cache.RedisCache,
) *MenuService {
	return &MenuService{
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
		productRepo:    productRepo,
		cache:          cache,
	}
}

type CreateMenuRequest struct {
	RestaurantID uuid.UUID `json:"restaurant_id" binding:"required"`
	ProductID    string    `json:"product_id" binding:"required"`
	Price        float64   `json:"price" binding:"required,gt=0"`
	Availability *bool     `json:"availability"`
}

type UpdateMenuRequest struct {
	Price        *float64 `json:"price"`
	Availability *bool    `json:"availability"`
}

func (s *MenuService) CreateMenu(ctx context.Context, req *CreateMenuRequest) (*models.Menu, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, errors.New("restaurant not found")
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, errors.New("invalid product ID")
	}
	if s.productRepo != nil {
		if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
			return nil, errors.New("product not found")
		}
	}

	menu := &models.Menu{
		RestaurantID: restaurant.ID,
		ProductID:    req.ProductID,
		Price:        req.Price,
		Availability: true,
	}
	if req.Availability != nil {
		menu.Availability = *req.Availability
	}
	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}

	s.invalidateMenuCache(ctx, restaurant.ID)
	return menu, nil
}

func (s *MenuService) GetMenu(ctx context.Context, menuID string) (*models.Menu, error) {
	id, err := uuid.Parse(menuID)
	if err != nil {
		return nil, errors.New("invalid menu ID")
	}
	return s.menuRepo.GetByID(ctx, id)
}

// GetRestaurantMenu returns the available menu of a restaurant, enriched with
// product details from the catalog. Entries whose product cannot be loaded
// fall back to the bare menu fields.
func (s *MenuService) GetRestaurantMenu(ctx context.Context, restaurantID string, page, limit int) ([]MenuItemResponse, error) {
	rid, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, errors.New("invalid restaurant ID")
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	cacheKey := fmt.Sprintf("menu:%s:%d:%d", rid, page, limit)
	if s.cache != nil {
		var cached []MenuItemResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, rid)
	if err != nil {
		return nil, errors.New("restaurant not found")
	}

	menus, err := s.menuRepo.GetAvailableByRestaurantID(ctx, rid, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	items := make([]MenuItemResponse, 0, len(menus))
	for _, menu := range menus {
		item := MenuItemResponse{
			ID:             menu.ID,
			RestaurantID:   menu.RestaurantID,
			RestaurantName: restaurant.Name,
			ProductID:      menu.ProductID,
			Price:          menu.Price,
			Availability:   menu.Availability,
		}
		s.enrichWithProduct(ctx, &item)
		items = append(items, item)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, items, menuCacheTTL); err != nil {
			log.Printf("Warning: failed to cache menu for restaurant %s: %v", rid, err)
		}
	}
	return items, nil
}

func (s *MenuService) enrichWithProduct(ctx context.Context, item *MenuItemResponse) {
	if s.productRepo == nil {
		return
	}
	productID, err := primitive.ObjectIDFromHex(item.ProductID)
	if err != nil {
		return
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		log.Printf("Warning: failed to load product %s: %v", item.ProductID, err)
		return
	}
	item.ProductName = product.Name
	item.ProductDescription = product.Description
	item.ProductImage = product.ImageURL
}

func (s *MenuService) UpdateMenu(ctx context.Context, menuID string, req *UpdateMenuRequest) (*models.Menu, error) {
	id, err := uuid.Parse(menuID)
	if err != nil {
		return nil, errors.New("invalid menu ID")
	}

	menu, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("menu not found")
	}

	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, errors.New("price must be positive")
		}
		menu.Price = *req.Price
	}
	if req.Availability != nil {
		menu.Availability = *req.Availability
	}

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to update menu: %w", err)
	}

	s.invalidateMenuCache(ctx, menu.RestaurantID)
	return menu, nil
}

func (s *MenuService) DeleteMenu(ctx context.Context, menuID string) error {
	id, err := uuid.Parse(menuID)
	if err != nil {
		return errors.New("invalid menu ID")
	}

	menu, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return errors.New("menu not found")
	}

	if err := s.menuRepo.Delete(ctx, menu.ID); err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}

	s.invalidateMenuCache(ctx, menu.RestaurantID)
	return nil
}

// invalidateMenuCache drops the first page of the restaurant's cached menu,
// the one the storefront actually hits. Deeper pages age out on TTL.
func (s *MenuService) invalidateMenuCache(ctx context.Context, restaurantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	cacheKey := fmt.Sprintf("menu:%s:%d:%d", restaurantID, 1, 20)
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		log.Printf("Warning: failed to invalidate menu cache for %s: %v", restaurantID, err)
	}
}
