package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one entry in a customer's shopping cart: a quantity of a single
// menu offering, with display fields denormalized at add-time. The line id is
// session-scoped and never a backend key.
type CartLine struct {
	ID                 string    `json:"id"`
	MenuID             uuid.UUID `json:"menu_id"`
	RestaurantID       uuid.UUID `json:"restaurant_id"`
	ProductID          string    `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductDescription string    `json:"product_description,omitempty"`
	ProductImage       string    `json:"product_image,omitempty"`
	RestaurantName     string    `json:"restaurant_name"`
	Price              float64   `json:"price"`
	Quantity           int       `json:"quantity"`
	Subtotal           float64   `json:"subtotal"` // price * quantity
	CreatedAt          time.Time `json:"created_at"`
}

// AddToCartPayload carries everything needed to append a line to the cart.
// Quantity defaults to 1 when zero.
type AddToCartPayload struct {
	MenuID             uuid.UUID `json:"menu_id" binding:"required"`
	RestaurantID       uuid.UUID `json:"restaurant_id" binding:"required"`
	ProductID          string    `json:"product_id" binding:"required"`
	ProductName        string    `json:"product_name" binding:"required"`
	ProductDescription string    `json:"product_description"`
	ProductImage       string    `json:"product_image"`
	RestaurantName     string    `json:"restaurant_name" binding:"required"`
	Price              float64   `json:"price" binding:"required"`
	Quantity           int       `json:"quantity"`
}
