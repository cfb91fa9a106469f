package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hnqbao/carhive-api/pkg/models"
)

// GetAllDealers lists active dealers for the map selector.
func GetAllDealers(ctx context.Context) ([]models.Dealer, error) {
	collection := GetCollection("dealers")
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := collection.Find(ctx, bson.D{{Key: "active", Value: true}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	dealers := []models.Dealer{}
	if err := cursor.All(ctx, &dealers); err != nil {
		return nil, err
	}
	return dealers, nil
}

// GetDealerByID fetches a single dealer.
func GetDealerByID(ctx context.Context, id bson.ObjectID) (*models.Dealer, error) {
	collection := GetCollection("dealers")

	var dealer models.Dealer
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&dealer)
	if err != nil {
		return nil, err
	}
	return &dealer, nil
}

// CreateDealer inserts a new pickup location.
func CreateDealer(ctx context.Context, dealer *models.Dealer) (*models.Dealer, error) {
	dealer.Active = true
	dealer.SetTimestamps()

	collection := GetCollection("dealers")
	result, err := collection.InsertOne(ctx, dealer)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		dealer.ID = oid
	}
	return dealer, nil
}
