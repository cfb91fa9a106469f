package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Vehicle is a rentable car in the catalog.
type Vehicle struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string        `json:"name" bson:"name" binding:"required,min=2,max=200"`
	Brand        string        `json:"brand" bson:"brand" binding:"required"`
	Seats        int           `json:"seats" bson:"seats" binding:"required,gte=2,lte=16"`
	Transmission string        `json:"transmission" bson:"transmission" binding:"required,oneof=manual automatic"`
	FuelType     string        `json:"fuel_type" bson:"fuel_type" binding:"required,oneof=gasoline diesel electric hybrid"`
	PricePerDay  float64       `json:"price_per_day" bson:"price_per_day" binding:"required,gt=0"`
	Images       []string      `json:"images" bson:"images"`
	DealerID     string        `json:"dealer_id" bson:"dealer_id" binding:"required"`
	Status       string        `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// SetTimestamps sets created_at on first call and always updates updated_at.
func (v *Vehicle) SetTimestamps() {
	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
}

// IsAvailable reports whether the vehicle can be booked.
func (v *Vehicle) IsAvailable() bool {
	return v.Status == "active"
}
