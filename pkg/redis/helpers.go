package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hnqbao/carhive-api/pkg/models"
)

const catalogTTL = 24 * time.Hour

// CacheVehicle stores a vehicle in the catalog cache and tracks it in the
// per-dealer list plus the recent list.
func CacheVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	client := RedisClient()
	defer client.Close()

	vehicleJSON, err := json.Marshal(vehicle)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle %s: %w", vehicle.ID.Hex(), err)
	}

	pipe := client.TxPipeline()

	vehicleKey := fmt.Sprintf("vehicle:%s", vehicle.ID.Hex())
	pipe.Set(ctx, vehicleKey, vehicleJSON, catalogTTL)

	dealerKey := fmt.Sprintf("dealer:%s:vehicles", vehicle.DealerID)
	pipe.LPush(ctx, dealerKey, vehicle.ID.Hex())
	pipe.Expire(ctx, dealerKey, catalogTTL)

	pipe.LPush(ctx, "vehicles:recent", vehicle.ID.Hex())
	pipe.LTrim(ctx, "vehicles:recent", 0, 99)
	pipe.Expire(ctx, "vehicles:recent", catalogTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute Redis pipeline for vehicle %s: %w", vehicle.ID.Hex(), err)
	}

	return nil
}

// GetVehicleFromCache retrieves a cached vehicle by hex id.
func GetVehicleFromCache(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	client := RedisClient()
	defer client.Close()

	vehicleKey := fmt.Sprintf("vehicle:%s", vehicleID)
	vehicleJSON, err := client.Get(ctx, vehicleKey).Result()
	if err != nil {
		return nil, err
	}

	var vehicle models.Vehicle
	if err := json.Unmarshal([]byte(vehicleJSON), &vehicle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vehicle: %w", err)
	}

	return &vehicle, nil
}

// RemoveVehicleFromCache drops a vehicle and its list entries.
func RemoveVehicleFromCache(ctx context.Context, vehicle *models.Vehicle) error {
	client := RedisClient()
	defer client.Close()

	pipe := client.TxPipeline()

	pipe.Del(ctx, fmt.Sprintf("vehicle:%s", vehicle.ID.Hex()))

	dealerKey := fmt.Sprintf("dealer:%s:vehicles", vehicle.DealerID)
	pipe.LRem(ctx, dealerKey, 0, vehicle.ID.Hex())

	pipe.LRem(ctx, "vehicles:recent", 0, vehicle.ID.Hex())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove vehicle from Redis cache: %w", err)
	}

	return nil
}

// CacheDealers stores the full active dealer list under one key; the map
// selector reads it on every page load.
func CacheDealers(ctx context.Context, dealers []models.Dealer) error {
	client := RedisClient()
	defer client.Close()

	dealersJSON, err := json.Marshal(dealers)
	if err != nil {
		return fmt.Errorf("failed to marshal dealers: %w", err)
	}

	return client.Set(ctx, "dealers:active", dealersJSON, catalogTTL).Err()
}

// GetDealersFromCache retrieves the cached dealer list.
func GetDealersFromCache(ctx context.Context) ([]models.Dealer, error) {
	client := RedisClient()
	defer client.Close()

	dealersJSON, err := client.Get(ctx, "dealers:active").Result()
	if err != nil {
		return nil, err
	}

	var dealers []models.Dealer
	if err := json.Unmarshal([]byte(dealersJSON), &dealers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dealers: %w", err)
	}

	return dealers, nil
}

// InvalidateDealersCache drops the dealer list after a mutation.
func InvalidateDealersCache(ctx context.Context) error {
	client := RedisClient()
	defer client.Close()

	return client.Del(ctx, "dealers:active").Err()
}
