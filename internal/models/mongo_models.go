package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product model - MongoDB (flexible catalog data). Menus in PostgreSQL
// reference products by hex object id.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url"`
	IsAvailable bool               `bson:"is_available" json:"is_available"`
	Tags        []string           `bson:"tags,omitempty" json:"tags"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
