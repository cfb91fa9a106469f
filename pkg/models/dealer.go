package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Dealer is a pickup location shown on the map selector.
type Dealer struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string        `json:"name" bson:"name" binding:"required,min=2,max=200"`
	Address   string        `json:"address" bson:"address" binding:"required"`
	Latitude  float64       `json:"latitude" bson:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude float64       `json:"longitude" bson:"longitude" binding:"required,gte=-180,lte=180"`
	Phone     string        `json:"phone" bson:"phone"`
	Active    bool          `json:"active" bson:"active"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// SetTimestamps sets created_at on first call and always updates updated_at.
func (d *Dealer) SetTimestamps() {
	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}
