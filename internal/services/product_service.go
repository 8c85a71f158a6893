package services

import (
	"context"
	"errors"
	"fmt"

	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService manages the MongoDB product catalog.
type ProductService struct {
	productRepo repositories.ProductRepository
}

func NewProductService(productRepo repositories.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Price       *float64  `json:"price"`
	ImageURL    *string   `json:"image_url"`
	IsAvailable *bool     `json:"is_available"`
	Tags        *[]string `json:"tags"`
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
		Tags:        req.Tags,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, errors.New("invalid product ID")
	}
	return s.productRepo.GetByID(ctx, id)
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req *UpdateProductRequest) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, errors.New("invalid product ID")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, errors.New("price must be positive")
		}
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.Tags != nil {
		product.Tags = *req.Tags
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return errors.New("invalid product ID")
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) GetProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	return s.productRepo.GetAll(ctx, limit, offset)
}

func (s *ProductService) SearchProducts(ctx context.Context, query string, limit, offset int) ([]models.Product, error) {
	if query == "" {
		return s.productRepo.GetAll(ctx, limit, offset)
	}
	return s.productRepo.Search(ctx, query, limit, offset)
}
