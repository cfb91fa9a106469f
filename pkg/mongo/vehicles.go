package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hnqbao/carhive-api/pkg/models"
)

// GetAllVehicles lists active vehicles, optionally scoped to one dealer,
// priciest first.
func GetAllVehicles(ctx context.Context, dealerID string) ([]models.Vehicle, error) {
	collection := GetCollection("vehicles")
	opts := options.Find().SetSort(bson.D{{Key: "price_per_day", Value: -1}})

	filter := bson.D{{Key: "status", Value: "active"}}
	if dealerID != "" {
		filter = append(filter, bson.E{Key: "dealer_id", Value: dealerID})
	}

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// GetVehicleByID fetches a single vehicle.
func GetVehicleByID(ctx context.Context, id bson.ObjectID) (*models.Vehicle, error) {
	collection := GetCollection("vehicles")

	var vehicle models.Vehicle
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&vehicle)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// CreateVehicle inserts a new catalog entry.
func CreateVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	vehicle.Status = "active"
	vehicle.SetTimestamps()

	collection := GetCollection("vehicles")
	result, err := collection.InsertOne(ctx, vehicle)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		vehicle.ID = oid
	}
	return vehicle, nil
}

// UpdateVehicle applies partial updates and returns the new document.
func UpdateVehicle(ctx context.Context, id bson.ObjectID, updates map[string]interface{}) (*models.Vehicle, error) {
	collection := GetCollection("vehicles")

	set := bson.D{}
	for k, v := range updates {
		set = append(set, bson.E{Key: k, Value: v})
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var vehicle models.Vehicle
	err := collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&vehicle)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// DeleteVehicle soft-deletes by flipping the status to inactive; the
// document stays for order history.
func DeleteVehicle(ctx context.Context, id bson.ObjectID) (*models.Vehicle, error) {
	return UpdateVehicle(ctx, id, map[string]interface{}{"status": "inactive"})
}
