package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 30, 12, 0, time.UTC)
	number := GenerateOrderNumber(at)

	assert.Regexp(t, regexp.MustCompile(`^ORD-20240305-\d{6}$`), number)
}

func TestGenerateOrderNumberUsesEpochMillisSuffix(t *testing.T) {
	at := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	number := GenerateOrderNumber(at)

	assert.Equal(t, "ORD-20240305-", number[:13])
	// Suffix is the last six digits of the epoch-millisecond timestamp.
	assert.Len(t, number, 19)
}

func newCheckoutCart() *Cart {
	cart := NewCart("cust-7", time.Now())
	cart.Items = append(cart.Items,
		rentalItem("item-a", 1500000, 2),
		voucherItem("item-b", 200000, 1),
	)
	cart.CalculateTotals()
	return cart
}

func TestBuildOrderFromCartSnapshotsItemsAndTotals(t *testing.T) {
	cart := newCheckoutCart()
	info := CustomerInfo{Name: "Nguyen Van A", Email: "a@example.com", Phone: "0901234567"}
	at := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	order := BuildOrderFromCart(cart, info, "customer", "website", at)

	require.Len(t, order.Items, 2)
	assert.Equal(t, cart.Items[0], order.Items[0].CartItem)
	assert.Equal(t, cart.Items[1], order.Items[1].CartItem)
	assert.Equal(t, cart.Subtotal, order.Subtotal)
	assert.Equal(t, cart.Tax, order.Tax)
	assert.Equal(t, cart.Discount, order.Discount)
	assert.Equal(t, cart.Total, order.Total)

	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "cust-7", order.CustomerID)
	assert.Equal(t, "cust-7", order.CreatedBy)
	assert.Equal(t, "customer", order.CreatedByRole)
	assert.Equal(t, SourceWebsite, order.Source)

	for _, item := range order.Items {
		assert.Equal(t, ItemStatusPending, item.Status)
	}
	assert.Equal(t, FulfillmentPending, order.FulfillmentStatus)
	assert.Equal(t, map[string]int{ItemStatusPending: 2}, order.ItemStatusSummary)
}

func TestBuildOrderFromCartDoesNotMutateCart(t *testing.T) {
	cart := newCheckoutCart()
	itemsBefore := len(cart.Items)
	totalBefore := cart.Total

	BuildOrderFromCart(cart, CustomerInfo{Name: "n", Email: "e@x.com", Phone: "1"}, "customer", "website", time.Now())

	assert.Len(t, cart.Items, itemsBefore)
	assert.Equal(t, totalBefore, cart.Total)
}

func TestCheckoutCartRejectsEmptyCart(t *testing.T) {
	cart := NewCart("cust-7", time.Now())

	order, err := CheckoutCart(cart, CustomerInfo{Name: "n", Email: "e@x.com", Phone: "1"}, "customer", "website", time.Now())

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
}

func TestCheckoutCartSnapshotsOrderAndClearsCart(t *testing.T) {
	cart := newCheckoutCart()
	wantSubtotal := cart.Subtotal
	wantTax := cart.Tax
	wantTotal := cart.Total
	info := CustomerInfo{Name: "Nguyen Van A", Email: "a@example.com", Phone: "0901234567"}
	at := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	order, err := CheckoutCart(cart, info, "telesale", SourcePhone, at)
	require.NoError(t, err)
	require.NotNil(t, order)

	// The order keeps the pre-checkout pricing breakdown.
	require.Len(t, order.Items, 2)
	assert.Equal(t, wantSubtotal, order.Subtotal)
	assert.Equal(t, wantTax, order.Tax)
	assert.Equal(t, wantTotal, order.Total)
	assert.Equal(t, "telesale", order.CreatedByRole)
	assert.Equal(t, SourcePhone, order.Source)

	// The cart is left empty with every monetary field zeroed, but still
	// belongs to the same customer.
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Subtotal)
	assert.Zero(t, cart.Tax)
	assert.Zero(t, cart.Discount)
	assert.Zero(t, cart.Total)
	assert.Equal(t, "cust-7", cart.CustomerID)
}

func TestCheckoutCartSecondCheckoutFails(t *testing.T) {
	cart := newCheckoutCart()

	_, err := CheckoutCart(cart, CustomerInfo{Name: "n", Email: "e@x.com", Phone: "1"}, "customer", "website", time.Now())
	require.NoError(t, err)

	_, err = CheckoutCart(cart, CustomerInfo{Name: "n", Email: "e@x.com", Phone: "1"}, "customer", "website", time.Now())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestRecalculateFulfillmentMatrix(t *testing.T) {
	tests := []struct {
		name            string
		statuses        []string
		wantFulfillment string
		wantStatus      string
	}{
		{"all pending", []string{ItemStatusPending, ItemStatusPending}, FulfillmentPending, OrderStatusPending},
		{"some completed", []string{ItemStatusCompleted, ItemStatusPending}, FulfillmentPartial, OrderStatusInProgress},
		{"all completed", []string{ItemStatusCompleted, ItemStatusCompleted}, FulfillmentFulfilled, OrderStatusCompleted},
		{"single completed", []string{ItemStatusCompleted}, FulfillmentFulfilled, OrderStatusCompleted},
		{"processing only", []string{ItemStatusProcessing, ItemStatusConfirmed}, FulfillmentPending, OrderStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{Status: OrderStatusPending}
			for i, s := range tt.statuses {
				item := voucherItem(string(rune('a'+i)), 100000, 1)
				order.Items = append(order.Items, OrderItem{CartItem: item, Status: s})
			}

			order.RecalculateFulfillment()

			assert.Equal(t, tt.wantFulfillment, order.FulfillmentStatus)
			assert.Equal(t, tt.wantStatus, order.Status)

			total := 0
			for _, n := range order.ItemStatusSummary {
				total += n
			}
			assert.Equal(t, len(tt.statuses), total)
		})
	}
}

func TestRecalculateFulfillmentKeepsCoarseStatusWhenPending(t *testing.T) {
	// A confirmed order with no completed items keeps its coarse status.
	order := &Order{Status: OrderStatusConfirmed}
	order.Items = []OrderItem{{CartItem: voucherItem("a", 100000, 1), Status: ItemStatusPending}}

	order.RecalculateFulfillment()

	assert.Equal(t, FulfillmentPending, order.FulfillmentStatus)
	assert.Equal(t, OrderStatusConfirmed, order.Status)
}

func TestSetItemStatus(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	order.Items = []OrderItem{
		{CartItem: voucherItem("a", 100000, 1), Status: ItemStatusPending},
		{CartItem: voucherItem("b", 100000, 1), Status: ItemStatusPending},
	}

	require.True(t, order.SetItemStatus("a", ItemStatusCompleted))
	assert.Equal(t, FulfillmentPartial, order.FulfillmentStatus)
	assert.Equal(t, OrderStatusInProgress, order.Status)

	require.True(t, order.SetItemStatus("b", ItemStatusCompleted))
	assert.Equal(t, FulfillmentFulfilled, order.FulfillmentStatus)
	assert.Equal(t, OrderStatusCompleted, order.Status)

	assert.False(t, order.SetItemStatus("missing", ItemStatusCompleted))
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusPending}).CanBeCancelled())
	assert.True(t, (&Order{Status: OrderStatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusCompleted}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusCancelled}).CanBeCancelled())
}
