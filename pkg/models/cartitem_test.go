package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// itemOfType builds a minimal valid item for each kind of the union.
func itemOfType(t ItemType) CartItem {
	item := CartItem{
		Type:     t,
		Name:     "test item",
		Price:    100000,
		Quantity: 1,
	}
	pickup := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	switch t {
	case ItemVehicleRental:
		item.VehicleRental = &VehicleRentalDetails{
			VehicleID:  "veh-1",
			DealerID:   "dealer-1",
			PickupDate: pickup,
			ReturnDate: pickup.AddDate(0, 0, 2),
		}
	case ItemAddonService:
		item.AddonService = &AddonServiceDetails{ServiceID: "svc-1"}
	case ItemCarCare:
		item.CarCare = &CarCareDetails{ServiceType: "wash"}
	case ItemChargingVoucher:
		item.ChargingVoucher = &ChargingVoucherDetails{EnergyKWh: 25}
	case ItemPrepaid:
		item.Prepaid = &PrepaidItemDetails{BillingCycle: "monthly"}
	case ItemPostpaid:
		item.Postpaid = &PostpaidItemDetails{BillingCycle: "monthly"}
	case ItemSubscriptionService:
		item.Subscription = &SubscriptionServiceDetails{PlanID: "plan-1", Months: 6}
	}
	return item
}

func TestValidateAcceptsEveryItemKind(t *testing.T) {
	for _, kind := range AllItemTypes {
		item := itemOfType(kind)
		assert.NoError(t, item.Validate(), "kind %s", kind)
	}
}

func TestValidateRejectsMissingPayload(t *testing.T) {
	for _, kind := range AllItemTypes {
		item := CartItem{Type: kind, Name: "x", Price: 1000, Quantity: 1}
		err := item.Validate()
		require.Error(t, err, "kind %s", kind)
		assert.Contains(t, err.Error(), "missing")
	}
}

func TestValidateRejectsStrayPayload(t *testing.T) {
	item := itemOfType(ItemChargingVoucher)
	item.CarCare = &CarCareDetails{ServiceType: "wash"}

	err := item.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stray")
}

func TestValidateRejectsUnknownType(t *testing.T) {
	item := CartItem{Type: "gift_card", Name: "x", Price: 1000, Quantity: 1}
	err := item.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cart item type")
}

func TestValidateRejectsBadScalars(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CartItem)
	}{
		{"empty name", func(i *CartItem) { i.Name = "" }},
		{"negative price", func(i *CartItem) { i.Price = -1 }},
		{"zero quantity", func(i *CartItem) { i.Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := itemOfType(ItemAddonService)
			tt.mutate(&item)
			assert.Error(t, item.Validate())
		})
	}
}

func TestValidateRejectsInvertedRentalDates(t *testing.T) {
	item := itemOfType(ItemVehicleRental)
	item.VehicleRental.ReturnDate = item.VehicleRental.PickupDate.AddDate(0, 0, -1)

	assert.Error(t, item.Validate())
}

func TestLineTotal(t *testing.T) {
	item := itemOfType(ItemChargingVoucher)
	item.Price = 250000
	item.Quantity = 4

	assert.Equal(t, float64(1000000), item.LineTotal())
}

func TestNewCartItemIDIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewCartItemID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
