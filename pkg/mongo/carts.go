package mongo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hnqbao/carhive-api/pkg/global"
	"github.com/hnqbao/carhive-api/pkg/models"
	"github.com/hnqbao/carhive-api/pkg/roles"
)

// GetOrCreateCart returns the customer's newest non-expired cart, creating
// an empty one with zeroed totals and a 7-day expiry when none qualifies.
// Expired carts are left behind; the created_at descending query always
// resolves to the live one.
func GetOrCreateCart(ctx context.Context, customerID string) (*models.Cart, error) {
	collection := GetCollection("carts")
	now := time.Now()

	filter := bson.D{
		{Key: "customer_id", Value: customerID},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: now}}},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var cart models.Cart
	err := collection.FindOne(ctx, filter, opts).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	fresh := models.NewCart(customerID, now)
	result, err := collection.InsertOne(ctx, fresh)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		fresh.ID = oid
	}
	return fresh, nil
}

// saveCart persists the full mutable state of a cart.
func saveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	collection := GetCollection("carts")
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "items", Value: cart.Items},
		{Key: "subtotal", Value: cart.Subtotal},
		{Key: "tax", Value: cart.Tax},
		{Key: "discount", Value: cart.Discount},
		{Key: "total", Value: cart.Total},
		{Key: "updated_at", Value: cart.UpdatedAt},
	}}}

	_, err := collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: cart.ID}}, update)
	return err
}

// AddCartItem validates the item, assigns it a fresh id, appends it to the
// customer's cart and persists the recomputed totals.
func AddCartItem(ctx context.Context, customerID string, item models.CartItem) (*models.Cart, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	cart, err := GetOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	item.ID = models.NewCartItemID()
	item.AddedAt = time.Now()
	cart.Items = append(cart.Items, item)
	cart.CalculateTotals()

	if err := saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateCartItemQuantity sets an item's quantity. A quantity of zero or
// below removes the item instead of keeping it at zero.
func UpdateCartItemQuantity(ctx context.Context, customerID, itemID string, quantity int) (*models.Cart, error) {
	cart, err := GetOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(itemID, quantity)

	if err := saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveCartItem filters the item out of the cart. Absent ids are an
// idempotent no-op.
func RemoveCartItem(ctx context.Context, customerID, itemID string) (*models.Cart, error) {
	return UpdateCartItemQuantity(ctx, customerID, itemID, 0)
}

// ClearCart resets the cart to no items and zeroed monetary fields.
func ClearCart(ctx context.Context, customerID string) (*models.Cart, error) {
	cart, err := GetOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cart.Clear()

	if err := saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Checkout converts the customer's cart into an immutable pending order
// and clears the cart. An empty cart fails with ErrEmptyCart before any
// write. Provenance is stamped from the customer's role; a failed role
// lookup degrades to customer rather than blocking the checkout, since the
// role only affects the source label.
func Checkout(ctx context.Context, customerID string, info models.CustomerInfo) (*models.Order, error) {
	cart, err := GetOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	role := roles.RoleCustomer
	if profile, err := GetUserProfile(ctx, customerID); err != nil {
		log.Printf("Warning: role lookup failed for %s, defaulting to customer: %v", customerID, err)
	} else if profile != nil {
		role = profile.Role
	}

	order, err := models.CheckoutCart(cart, info, role, roles.SourceForRole(role), time.Now())
	if err != nil {
		return nil, err
	}

	if global.TransactionsEnabled() {
		err = checkoutTransactional(ctx, cart, order)
	} else {
		err = checkoutSequential(ctx, cart, order)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// checkoutTransactional persists the order and the cleared cart as one
// all-or-nothing mongo transaction.
func checkoutTransactional(ctx context.Context, cart *models.Cart, order *models.Order) error {
	session, err := GetMongoClient().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(txCtx context.Context) (interface{}, error) {
		if err := insertOrder(txCtx, order); err != nil {
			return nil, err
		}
		if err := saveCart(txCtx, cart); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// checkoutSequential is the standalone-deployment path: order first, then
// cart clear. A crash in between leaves the order in place and the stale
// cart expires on its own TTL; the customer-visible invariant (an order
// exists iff they checked out) still holds.
func checkoutSequential(ctx context.Context, cart *models.Cart, order *models.Order) error {
	if err := insertOrder(ctx, order); err != nil {
		return err
	}

	if err := saveCart(ctx, cart); err != nil {
		log.Printf("Warning: order %s created but cart clear failed: %v", order.OrderNumber, err)
		return err
	}
	return nil
}
