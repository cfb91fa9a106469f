package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hnqbao/carhive-api/pkg/models"
)

func insertOrder(ctx context.Context, order *models.Order) error {
	collection := GetCollection("orders")
	result, err := collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

// CreateDirectBooking persists a legacy single-vehicle order built by the
// caller. Used by the direct booking flow, which never touches a cart.
func CreateDirectBooking(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := insertOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrderByID fetches one order. Missing orders are ErrOrderNotFound.
func GetOrderByID(ctx context.Context, id bson.ObjectID) (*models.Order, error) {
	collection := GetCollection("orders")

	var order models.Order
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByCustomer lists a customer's orders, newest first. No orders
// is an empty list, not an error.
func GetOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	collection := GetCollection("orders")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.D{{Key: "customer_id", Value: customerID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetAllOrders lists every order, newest first, optionally filtered by
// coarse status. Staff-only; callers gate on CanViewAll.
func GetAllOrders(ctx context.Context, status string) ([]models.Order, error) {
	collection := GetCollection("orders")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	filter := bson.D{}
	if status != "" {
		filter = bson.D{{Key: "status", Value: status}}
	}

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderItemStatus transitions one item and persists the re-derived
// fulfillment summary and coarse status.
func UpdateOrderItemStatus(ctx context.Context, orderID bson.ObjectID, itemID, status string) (*models.Order, error) {
	order, err := GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.SetItemStatus(itemID, status) {
		return nil, ErrItemNotFound
	}

	collection := GetCollection("orders")
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "items", Value: order.Items},
		{Key: "item_status_summary", Value: order.ItemStatusSummary},
		{Key: "fulfillment_status", Value: order.FulfillmentStatus},
		{Key: "status", Value: order.Status},
		{Key: "updated_at", Value: order.UpdatedAt},
	}}}

	if _, err := collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: orderID}}, update); err != nil {
		return nil, err
	}
	return order, nil
}

// AssignOrder sets the staff member responsible for the order.
func AssignOrder(ctx context.Context, orderID bson.ObjectID, assignee string) (*models.Order, error) {
	return patchOrder(ctx, orderID, bson.D{{Key: "assigned_to", Value: assignee}})
}

// UpdateOrderNotes replaces the free-text notes on the order.
func UpdateOrderNotes(ctx context.Context, orderID bson.ObjectID, notes string) (*models.Order, error) {
	return patchOrder(ctx, orderID, bson.D{{Key: "notes", Value: notes}})
}

func patchOrder(ctx context.Context, orderID bson.ObjectID, fields bson.D) (*models.Order, error) {
	collection := GetCollection("orders")

	fields = append(fields, bson.E{Key: "updated_at", Value: time.Now()})
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: orderID}},
		bson.D{{Key: "$set", Value: fields}},
		opts,
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
