package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemType discriminates the kinds of line items a cart can hold.
type ItemType string

const (
	ItemVehicleRental       ItemType = "vehicle_rental"
	ItemAddonService        ItemType = "addon_service"
	ItemCarCare             ItemType = "car_care"
	ItemChargingVoucher     ItemType = "charging_voucher"
	ItemPrepaid             ItemType = "prepaid_item"
	ItemPostpaid            ItemType = "postpaid_item"
	ItemSubscriptionService ItemType = "subscription_service"
)

// AllItemTypes lists every supported line-item kind.
var AllItemTypes = []ItemType{
	ItemVehicleRental,
	ItemAddonService,
	ItemCarCare,
	ItemChargingVoucher,
	ItemPrepaid,
	ItemPostpaid,
	ItemSubscriptionService,
}

type VehicleRentalDetails struct {
	VehicleID      string    `json:"vehicle_id" bson:"vehicle_id" binding:"required"`
	DealerID       string    `json:"dealer_id" bson:"dealer_id" binding:"required"`
	DealerName     string    `json:"dealer_name" bson:"dealer_name"`
	PickupDate     time.Time `json:"pickup_date" bson:"pickup_date" binding:"required"`
	ReturnDate     time.Time `json:"return_date" bson:"return_date" binding:"required"`
	PickupLocation string    `json:"pickup_location" bson:"pickup_location"`
}

type AddonServiceDetails struct {
	ServiceID string `json:"service_id" bson:"service_id" binding:"required"`
	Duration  string `json:"duration" bson:"duration"`
	Notes     string `json:"notes" bson:"notes,omitempty"`
}

type CarCareDetails struct {
	ServiceType  string    `json:"service_type" bson:"service_type" binding:"required"`
	ScheduledAt  time.Time `json:"scheduled_at" bson:"scheduled_at"`
	VehiclePlate string    `json:"vehicle_plate" bson:"vehicle_plate"`
}

type ChargingVoucherDetails struct {
	EnergyKWh  float64   `json:"energy_kwh" bson:"energy_kwh" binding:"required,gt=0"`
	Provider   string    `json:"provider" bson:"provider"`
	ValidUntil time.Time `json:"valid_until" bson:"valid_until"`
}

type PrepaidItemDetails struct {
	BillingCycle string `json:"billing_cycle" bson:"billing_cycle"`
	Description  string `json:"description" bson:"description"`
}

type PostpaidItemDetails struct {
	BillingCycle string `json:"billing_cycle" bson:"billing_cycle"`
	Description  string `json:"description" bson:"description"`
}

type SubscriptionServiceDetails struct {
	PlanID string `json:"plan_id" bson:"plan_id" binding:"required"`
	Months int    `json:"months" bson:"months" binding:"required,gte=1"`
}

// CartItem is a tagged union: Type selects exactly one of the detail
// pointers, all others must be nil.
type CartItem struct {
	ID       string   `json:"id" bson:"id"`
	Type     ItemType `json:"type" bson:"type" binding:"required"`
	Name     string   `json:"name" bson:"name" binding:"required"`
	Price    float64  `json:"price" bson:"price" binding:"gte=0"`
	Quantity int      `json:"quantity" bson:"quantity" binding:"required,gte=1"`
	Images   []string `json:"images,omitempty" bson:"images,omitempty"`

	VehicleRental   *VehicleRentalDetails       `json:"vehicle_rental,omitempty" bson:"vehicle_rental,omitempty"`
	AddonService    *AddonServiceDetails        `json:"addon_service,omitempty" bson:"addon_service,omitempty"`
	CarCare         *CarCareDetails             `json:"car_care,omitempty" bson:"car_care,omitempty"`
	ChargingVoucher *ChargingVoucherDetails     `json:"charging_voucher,omitempty" bson:"charging_voucher,omitempty"`
	Prepaid         *PrepaidItemDetails         `json:"prepaid_item,omitempty" bson:"prepaid_item,omitempty"`
	Postpaid        *PostpaidItemDetails        `json:"postpaid_item,omitempty" bson:"postpaid_item,omitempty"`
	Subscription    *SubscriptionServiceDetails `json:"subscription_service,omitempty" bson:"subscription_service,omitempty"`

	AddedAt time.Time `json:"added_at" bson:"added_at"`
}

// NewCartItemID returns a fresh line-item identifier.
func NewCartItemID() string {
	return uuid.NewString()
}

// payloadSet reports which detail pointers are populated.
func (ci *CartItem) payloadSet() map[ItemType]bool {
	return map[ItemType]bool{
		ItemVehicleRental:       ci.VehicleRental != nil,
		ItemAddonService:        ci.AddonService != nil,
		ItemCarCare:             ci.CarCare != nil,
		ItemChargingVoucher:     ci.ChargingVoucher != nil,
		ItemPrepaid:             ci.Prepaid != nil,
		ItemPostpaid:            ci.Postpaid != nil,
		ItemSubscriptionService: ci.Subscription != nil,
	}
}

// Validate checks the union invariant: the payload present must be the one
// named by Type, and no other payload may be set.
func (ci *CartItem) Validate() error {
	if ci.Name == "" {
		return fmt.Errorf("cart item name is required")
	}
	if ci.Price < 0 {
		return fmt.Errorf("cart item price must be non-negative")
	}
	if ci.Quantity < 1 {
		return fmt.Errorf("cart item quantity must be at least 1")
	}

	set := ci.payloadSet()

	switch ci.Type {
	case ItemVehicleRental, ItemAddonService, ItemCarCare, ItemChargingVoucher,
		ItemPrepaid, ItemPostpaid, ItemSubscriptionService:
		// known kind
	default:
		return fmt.Errorf("unknown cart item type %q", ci.Type)
	}

	if !set[ci.Type] {
		return fmt.Errorf("cart item of type %q is missing its %q payload", ci.Type, ci.Type)
	}
	for _, t := range AllItemTypes {
		if t != ci.Type && set[t] {
			return fmt.Errorf("cart item of type %q carries a stray %q payload", ci.Type, t)
		}
	}

	if ci.Type == ItemVehicleRental && !ci.VehicleRental.ReturnDate.After(ci.VehicleRental.PickupDate) {
		return fmt.Errorf("vehicle rental return date must be after pickup date")
	}

	return nil
}

// LineTotal returns price x quantity for this item.
func (ci *CartItem) LineTotal() float64 {
	return ci.Price * float64(ci.Quantity)
}
