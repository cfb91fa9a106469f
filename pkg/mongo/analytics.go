package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type StatusBreakdown struct {
	Status     string  `json:"status" bson:"_id"`
	OrderCount int     `json:"order_count" bson:"count"`
	Revenue    float64 `json:"revenue" bson:"revenue"`
	AvgOrder   float64 `json:"avg_order" bson:"avg_order"`
}

type SalesAnalyticsResult struct {
	ByStatus     []StatusBreakdown `json:"by_status"`
	TotalOrders  int               `json:"total_orders"`
	TotalRevenue float64           `json:"total_revenue"`
}

// GetSalesAnalytics aggregates non-cancelled orders by coarse status with
// revenue totals.
func GetSalesAnalytics(ctx context.Context) (*SalesAnalyticsResult, error) {
	collection := GetCollection("orders")

	pipeline := bson.A{
		bson.D{
			{Key: "$match", Value: bson.D{
				{Key: "status", Value: bson.D{{Key: "$ne", Value: "cancelled"}}},
			}},
		},
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$status"},
				{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
				{Key: "avg_order", Value: bson.D{{Key: "$avg", Value: "$total"}}},
			}},
		},
		bson.D{
			{Key: "$project", Value: bson.D{
				{Key: "count", Value: 1},
				{Key: "revenue", Value: bson.D{{Key: "$round", Value: bson.A{"$revenue", 0}}}},
				{Key: "avg_order", Value: bson.D{{Key: "$round", Value: bson.A{"$avg_order", 0}}}},
			}},
		},
		bson.D{
			{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}}},
		},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var breakdown []StatusBreakdown
	if err := cursor.All(ctx, &breakdown); err != nil {
		return nil, err
	}

	result := &SalesAnalyticsResult{ByStatus: breakdown}
	for _, b := range breakdown {
		result.TotalOrders += b.OrderCount
		result.TotalRevenue += b.Revenue
	}

	return result, nil
}
