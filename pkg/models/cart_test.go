package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentalItem(id string, price float64, quantity int) CartItem {
	pickup := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return CartItem{
		ID:       id,
		Type:     ItemVehicleRental,
		Name:     "VinFast VF8 - 3 days",
		Price:    price,
		Quantity: quantity,
		VehicleRental: &VehicleRentalDetails{
			VehicleID:  "veh-001",
			DealerID:   "dealer-01",
			PickupDate: pickup,
			ReturnDate: pickup.AddDate(0, 0, 3),
		},
	}
}

func voucherItem(id string, price float64, quantity int) CartItem {
	return CartItem{
		ID:       id,
		Type:     ItemChargingVoucher,
		Name:     "Charging voucher 50kWh",
		Price:    price,
		Quantity: quantity,
		ChargingVoucher: &ChargingVoucherDetails{
			EnergyKWh: 50,
			Provider:  "VGreen",
		},
	}
}

func TestNewCartIsEmptyWithZeroTotals(t *testing.T) {
	now := time.Now()
	cart := NewCart("cust-1", now)

	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Subtotal)
	assert.Zero(t, cart.Tax)
	assert.Zero(t, cart.Discount)
	assert.Zero(t, cart.Total)
	assert.Equal(t, now.Add(CartTTL), cart.ExpiresAt)
	assert.False(t, cart.IsExpired(now))
	assert.True(t, cart.IsExpired(now.Add(CartTTL+time.Second)))
}

func TestCalculateTotalsVNDExample(t *testing.T) {
	// One item at 1,500,000 VND x 2: subtotal 3,000,000, tax 300,000,
	// total 3,300,000.
	cart := NewCart("cust-1", time.Now())
	cart.Items = append(cart.Items, rentalItem("a", 1500000, 2))
	cart.CalculateTotals()

	assert.Equal(t, float64(3000000), cart.Subtotal)
	assert.Equal(t, float64(300000), cart.Tax)
	assert.Equal(t, float64(3300000), cart.Total)
}

func TestCalculateTotalsSumsAcrossItemKinds(t *testing.T) {
	cart := NewCart("cust-1", time.Now())
	cart.Items = append(cart.Items,
		rentalItem("a", 1200000, 1),
		voucherItem("b", 250000, 4),
	)
	cart.CalculateTotals()

	require.Equal(t, float64(2200000), cart.Subtotal)
	assert.Equal(t, float64(220000), cart.Tax)
	assert.Equal(t, float64(2420000), cart.Total)
}

func TestCalculateTotalsRoundsToWholeVND(t *testing.T) {
	cart := NewCart("cust-1", time.Now())
	cart.Items = append(cart.Items, voucherItem("a", 333333, 1))
	cart.CalculateTotals()

	// 10% of 333,333 is 33,333.3; VND is zero-decimal.
	assert.Equal(t, float64(333333), cart.Subtotal)
	assert.Equal(t, float64(33333), cart.Tax)
	assert.Equal(t, float64(366666), cart.Total)
}

func TestApplyTaxDerivesTaxOnce(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  float64
		wantTax   float64
		wantTotal float64
	}{
		{"round numbers", 1000000, 100000, 1100000},
		{"needs rounding", 333333, 33333, 366666},
		{"zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, total := ApplyTax(tt.subtotal)
			assert.Equal(t, tt.wantTax, tax)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestTotalsInvariantHoldsAfterEveryMutation(t *testing.T) {
	cart := NewCart("cust-1", time.Now())

	check := func() {
		var want float64
		for i := range cart.Items {
			want += cart.Items[i].LineTotal()
		}
		want = RoundVND(want)
		assert.Equal(t, want, cart.Subtotal)
		assert.Equal(t, RoundVND(want*TaxRate), cart.Tax)
		assert.Equal(t, RoundVND(cart.Subtotal+cart.Tax-cart.Discount), cart.Total)
	}

	cart.Items = append(cart.Items, rentalItem("a", 900000, 2))
	cart.CalculateTotals()
	check()

	cart.Items = append(cart.Items, voucherItem("b", 150000, 3))
	cart.CalculateTotals()
	check()

	cart.SetQuantity("a", 5)
	check()

	cart.RemoveItem("b")
	check()
}

func TestSetQuantityZeroRemovesItem(t *testing.T) {
	cart := NewCart("cust-1", time.Now())
	cart.Items = append(cart.Items, rentalItem("a", 500000, 1), voucherItem("b", 100000, 2))
	cart.CalculateTotals()

	cart.SetQuantity("a", 0)

	assert.Equal(t, -1, cart.FindItem("a"))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "b", cart.Items[0].ID)
	assert.Equal(t, float64(200000), cart.Subtotal)
}

func TestSetQuantityNegativeAlsoRemoves(t *testing.T) {
	cart := NewCart("cust-1", time.Now())
	cart.Items = append(cart.Items, voucherItem("b", 100000, 2))
	cart.CalculateTotals()

	cart.SetQuantity("b", -3)

	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Subtotal)
	assert.Zero(t, cart.Total)
}

func TestSetQuantityZeroEquivalentToRemoveItem(t *testing.T) {
	build := func() *Cart {
		cart := NewCart("cust-1", time.Now())
		cart.Items = append(cart.Items, rentalItem("a", 500000, 1), voucherItem("b", 100000, 2))
		cart.CalculateTotals()
		return cart
	}

	viaSet := build()
	viaSet.SetQuantity("a", 0)

	viaRemove := build()
	viaRemove.RemoveItem("a")

	assert.Equal(t, viaRemove.Items, viaSet.Items)
	assert.Equal(t, viaRemove.Subtotal, viaSet.Subtotal)
	assert.Equal(t, viaRemove.Total, viaSet.Total)
}

func TestRemoveItemUnknownIDIsNoOp(t *testing.T) {
	cart := NewCart("cust-1", time.Now())
	cart.Items = append(cart.Items, voucherItem("b", 100000, 2))
	cart.CalculateTotals()
	before := cart.Subtotal

	cart.RemoveItem("does-not-exist")
	cart.RemoveItem("does-not-exist")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, before, cart.Subtotal)
}

func TestClearZeroesEverything(t *testing.T) {
	cart := NewCart("cust-1", time.Now())
	cart.Items = append(cart.Items, rentalItem("a", 500000, 3))
	cart.CalculateTotals()

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Subtotal)
	assert.Zero(t, cart.Tax)
	assert.Zero(t, cart.Discount)
	assert.Zero(t, cart.Total)
}
