package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrEmptyCart is returned by CheckoutCart when the cart has no items;
// nothing is written or mutated in that case.
var ErrEmptyCart = errors.New("cart is empty")

// Order statuses. The coarse order status is a projection of the
// per-item fulfillment state and is never edited directly.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Per-item statuses.
const (
	ItemStatusPending    = "pending"
	ItemStatusConfirmed  = "confirmed"
	ItemStatusProcessing = "processing"
	ItemStatusCompleted  = "completed"
	ItemStatusCancelled  = "cancelled"
)

// Fulfillment states derived from item statuses.
const (
	FulfillmentPending   = "pending"
	FulfillmentPartial   = "partial"
	FulfillmentFulfilled = "fulfilled"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Order sources, stamped from the creating user's role.
const (
	SourceWebsite = "website"
	SourcePhone   = "phone"
	SourceEmail   = "email"
)

// OrderItem is a cart line item frozen at checkout plus its own
// fulfillment status.
type OrderItem struct {
	CartItem `bson:",inline"`
	Status   string `json:"status" bson:"status"`
}

// CustomerInfo is the contact snapshot collected at checkout or booking.
type CustomerInfo struct {
	Name    string `json:"name" bson:"name" binding:"required"`
	Email   string `json:"email" bson:"email" binding:"required,email"`
	Phone   string `json:"phone" bson:"phone" binding:"required"`
	Address string `json:"address" bson:"address,omitempty"`
	Notes   string `json:"notes" bson:"notes,omitempty"`
}

// BookingDetails carries the flattened single-vehicle fields of the legacy
// order shape. Multi-item orders leave it nil.
type BookingDetails struct {
	VehicleID      string    `json:"vehicle_id" bson:"vehicle_id"`
	VehicleName    string    `json:"vehicle_name" bson:"vehicle_name"`
	DealerID       string    `json:"dealer_id" bson:"dealer_id"`
	DealerName     string    `json:"dealer_name" bson:"dealer_name"`
	PickupDate     time.Time `json:"pickup_date" bson:"pickup_date"`
	ReturnDate     time.Time `json:"return_date" bson:"return_date"`
	PickupLocation string    `json:"pickup_location" bson:"pickup_location"`
}

// Order is a checked-out cart or a direct booking. Immutable after
// creation except for item-status transitions, assignment and notes.
// Orders are never deleted; lifecycle is tracked through status fields.
type Order struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderNumber string        `json:"order_number" bson:"order_number"`

	CustomerID    string `json:"customer_id" bson:"customer_id"`
	CustomerName  string `json:"customer_name" bson:"customer_name"`
	CustomerEmail string `json:"customer_email" bson:"customer_email"`
	CustomerPhone string `json:"customer_phone" bson:"customer_phone"`

	// Legacy single-booking shape; nil for cart checkouts.
	Booking *BookingDetails `json:"booking,omitempty" bson:"booking,omitempty"`

	// Multi-item shape; empty for legacy direct bookings.
	Items []OrderItem `json:"items,omitempty" bson:"items,omitempty"`

	Subtotal float64 `json:"subtotal" bson:"subtotal"`
	Tax      float64 `json:"tax" bson:"tax"`
	Discount float64 `json:"discount" bson:"discount"`
	Total    float64 `json:"total" bson:"total"`

	ItemStatusSummary map[string]int `json:"item_status_summary,omitempty" bson:"item_status_summary,omitempty"`
	FulfillmentStatus string         `json:"fulfillment_status,omitempty" bson:"fulfillment_status,omitempty"`

	Status        string `json:"status" bson:"status"`
	PaymentStatus string `json:"payment_status" bson:"payment_status"`

	CreatedBy     string `json:"created_by" bson:"created_by"`
	CreatedByRole string `json:"created_by_role" bson:"created_by_role"`
	Source        string `json:"source" bson:"source"`

	AssignedTo string `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	Notes      string `json:"notes,omitempty" bson:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// GenerateOrderNumber builds the human-readable order label:
// ORD-YYYYMMDD-<last six digits of the epoch-millisecond timestamp>.
// It is a display label, not a primary key; the store id is the true
// identifier.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%06d", now.Format("20060102"), now.UnixMilli()%1000000)
}

// RecalculateFulfillment recomputes the per-status item counts, the derived
// fulfillment status, and projects it onto the coarse order status:
// fulfilled -> completed, partial -> in_progress, otherwise unchanged.
func (o *Order) RecalculateFulfillment() {
	if len(o.Items) == 0 {
		return
	}

	summary := make(map[string]int, len(o.Items))
	completed := 0
	for i := range o.Items {
		summary[o.Items[i].Status]++
		if o.Items[i].Status == ItemStatusCompleted {
			completed++
		}
	}
	o.ItemStatusSummary = summary

	switch {
	case completed == len(o.Items):
		o.FulfillmentStatus = FulfillmentFulfilled
	case completed > 0:
		o.FulfillmentStatus = FulfillmentPartial
	default:
		o.FulfillmentStatus = FulfillmentPending
	}

	switch o.FulfillmentStatus {
	case FulfillmentFulfilled:
		o.Status = OrderStatusCompleted
	case FulfillmentPartial:
		o.Status = OrderStatusInProgress
	}
}

// SetItemStatus transitions a single item and re-derives the fulfillment
// fields. Returns false when the item id is not present.
func (o *Order) SetItemStatus(itemID, status string) bool {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].Status = status
			o.RecalculateFulfillment()
			o.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// SetTimestamps sets created_at on first call and always updates updated_at.
func (o *Order) SetTimestamps() {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

// BuildOrderFromCart snapshots a non-empty cart into a new pending order,
// stamping provenance from the acting user's role. The cart itself is not
// touched. The caller is responsible for rejecting empty carts first.
func BuildOrderFromCart(cart *Cart, info CustomerInfo, createdByRole string, source string, now time.Time) *Order {
	items := make([]OrderItem, len(cart.Items))
	for i, ci := range cart.Items {
		items[i] = OrderItem{CartItem: ci, Status: ItemStatusPending}
	}

	order := &Order{
		OrderNumber:   GenerateOrderNumber(now),
		CustomerID:    cart.CustomerID,
		CustomerName:  info.Name,
		CustomerEmail: info.Email,
		CustomerPhone: info.Phone,
		Items:         items,
		Subtotal:      cart.Subtotal,
		Tax:           cart.Tax,
		Discount:      cart.Discount,
		Total:         cart.Total,
		Status:        OrderStatusPending,
		PaymentStatus: PaymentStatusPending,
		CreatedBy:     cart.CustomerID,
		CreatedByRole: createdByRole,
		Source:        source,
		Notes:         info.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	order.RecalculateFulfillment()
	return order
}

// CheckoutCart converts a cart into a pending order and clears the cart.
// An empty cart is rejected with ErrEmptyCart before the cart is touched.
// The caller persists both sides; this only covers the in-memory
// transition, so it stays testable without a store.
func CheckoutCart(cart *Cart, info CustomerInfo, createdByRole string, source string, now time.Time) (*Order, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	order := BuildOrderFromCart(cart, info, createdByRole, source, now)
	cart.Clear()
	return order, nil
}

// CanBeCancelled reports whether the order may still be cancelled.
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}
