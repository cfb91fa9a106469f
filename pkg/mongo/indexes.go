package mongo

import (
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hnqbao/carhive-api/pkg/global"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Users Collection Indexes
	{
		CollectionName: "users",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email_unique"),
		},
	},
	{
		CollectionName: "users",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_uid_unique"),
		},
	},

	// Carts Collection Indexes
	// Newest non-expired cart per customer is found by this compound index.
	{
		CollectionName: "carts",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "customer_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_customer_carts"),
		},
	},

	// Orders Collection Indexes
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "customer_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_customer_orders"),
		},
	},
	// Order numbers are display labels, but the unique index surfaces the
	// rare same-millisecond collision as an insert error instead of a
	// silent duplicate.
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_order_number_unique"),
		},
	},
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_order_status"),
		},
	},

	// Vehicles Collection Indexes
	{
		CollectionName: "vehicles",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "price_per_day", Value: -1},
			},
			Options: options.Index().SetName("idx_vehicle_status_price"),
		},
	},
	{
		CollectionName: "vehicles",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "dealer_id", Value: 1}},
			Options: options.Index().SetName("idx_vehicle_dealer"),
		},
	},

	// Dealers Collection Indexes
	{
		CollectionName: "dealers",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "active", Value: 1}},
			Options: options.Index().SetName("idx_dealer_active"),
		},
	},
}

func EnsureIndexes() error {
	log.Println("Starting index creation...")

	for _, idxConfig := range requiredIndexes {
		collection := GetCollection(idxConfig.CollectionName)
		ctx, cancel := global.GetDefaultTimer()
		defer cancel()

		indexName, err := collection.Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			log.Printf("Error creating index on collection %s: %v",
				idxConfig.CollectionName, err)
			return err
		}

		log.Printf("Created index '%s' on collection '%s'", indexName, idxConfig.CollectionName)
	}

	log.Println("All indexes created successfully")
	return nil
}

func EnsureIndexesOnStartup() {
	if err := EnsureIndexes(); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
}
