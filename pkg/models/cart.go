package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Cart lifetime before a fresh one is created on next access.
const CartTTL = 7 * 24 * time.Hour

// TaxRate applied to the cart subtotal.
const TaxRate = 0.10

// Cart holds a customer's pre-checkout line items together with the
// derived pricing breakdown. The derived fields are recomputed on every
// mutation; a cart is never persisted with stale totals.
type Cart struct {
	ID         bson.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerID string        `json:"customer_id" bson:"customer_id"`
	Items      []CartItem    `json:"items" bson:"items"`
	Subtotal   float64       `json:"subtotal" bson:"subtotal"`
	Tax        float64       `json:"tax" bson:"tax"`
	Discount   float64       `json:"discount" bson:"discount"`
	Total      float64       `json:"total" bson:"total"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" bson:"updated_at"`
	ExpiresAt  time.Time     `json:"expires_at" bson:"expires_at"`
}

// RoundVND rounds to the nearest whole dong. VND is a zero-decimal
// currency, so every derived monetary value goes through this.
func RoundVND(amount float64) float64 {
	return math.Round(amount)
}

// ApplyTax derives the tax and the final total from a pre-tax subtotal,
// rounded to whole dong. Tax is applied exactly once.
func ApplyTax(subtotal float64) (tax, total float64) {
	tax = RoundVND(subtotal * TaxRate)
	total = RoundVND(subtotal + tax)
	return tax, total
}

// CalculateTotals recomputes subtotal, tax and total from the item list.
// Discount stays as set (currently always zero).
func (c *Cart) CalculateTotals() {
	var subtotal float64
	for i := range c.Items {
		subtotal += c.Items[i].LineTotal()
	}
	c.Subtotal = RoundVND(subtotal)
	c.Tax = RoundVND(c.Subtotal * TaxRate)
	c.Total = RoundVND(c.Subtotal + c.Tax - c.Discount)
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// IsExpired reports whether the cart has passed its expiry stamp.
func (c *Cart) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// FindItem returns the index of the item with the given id, or -1.
func (c *Cart) FindItem(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// SetQuantity sets an item's quantity, removing it when quantity drops to
// zero or below. Unknown ids are a no-op. Totals are recomputed either way.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	idx := c.FindItem(itemID)
	if idx >= 0 {
		if quantity <= 0 {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		} else {
			c.Items[idx].Quantity = quantity
		}
	}
	c.CalculateTotals()
}

// RemoveItem filters out the item with the given id. Absent ids are a no-op.
func (c *Cart) RemoveItem(itemID string) {
	c.SetQuantity(itemID, 0)
}

// Clear empties the cart and zeroes every monetary field.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Subtotal = 0
	c.Tax = 0
	c.Discount = 0
	c.Total = 0
}

// NewCart returns an empty cart for the customer with zeroed totals and a
// 7-day expiry stamped from now.
func NewCart(customerID string, now time.Time) *Cart {
	return &Cart{
		CustomerID: customerID,
		Items:      []CartItem{},
		Subtotal:   0,
		Tax:        0,
		Discount:   0,
		Total:      0,
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(CartTTL),
	}
}
