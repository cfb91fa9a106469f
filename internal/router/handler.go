package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hnqbao/carhive-api/pkg/global"
	"github.com/hnqbao/carhive-api/pkg/models"
	"github.com/hnqbao/carhive-api/pkg/mongo"
	"github.com/hnqbao/carhive-api/pkg/redis"
)

func HealthCheck(c *gin.Context) {
	db := mongo.GetDatabase()
	if err := db.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

func GetAllVehicles(c *gin.Context) {
	dealerID := c.Query("dealer")

	vehicles, err := mongo.GetAllVehicles(c.Request.Context(), dealerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get vehicles", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(vehicles))
}

// GetVehicleByID retrieves a vehicle with Redis caching.
func GetVehicleByID(c *gin.Context) {
	id := c.Param("id")

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid vehicle ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	// Try Redis cache first
	vehicle, err := redis.GetVehicleFromCache(ctx, id)
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(vehicle))
		return
	}

	// Cache miss, check MongoDB
	vehicle, err = mongo.GetVehicleByID(ctx, objectID)
	if err != nil {
		if err.Error() == "mongo: no documents in result" {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Vehicle not found", []global.ValidationError{
				{Field: "id", Message: "No vehicle exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching vehicle from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch vehicle", nil))
		return
	}

	if cacheErr := redis.CacheVehicle(ctx, vehicle); cacheErr != nil {
		log.Printf("Warning: Failed to cache vehicle in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(vehicle))
}

func CreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	created, err := mongo.CreateVehicle(c.Request.Context(), &vehicle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create vehicle", nil))
		return
	}

	if cacheErr := redis.CacheVehicle(c.Request.Context(), created); cacheErr != nil {
		log.Printf("Warning: Failed to cache vehicle in Redis: %v", cacheErr)
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}

func EditVehicleByID(c *gin.Context) {
	objectID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid vehicle ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	// Immutable fields are dropped from the update rather than erroring.
	immutableFields := []string{"_id", "id", "created_at"}
	for _, field := range immutableFields {
		if _, exists := updates[field]; exists {
			delete(updates, field)
			log.Printf("Warning: Removed immutable field '%s' from update request", field)
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No updates provided", []global.ValidationError{
			{Field: "body", Message: "Request body must contain at least one field to update", Code: "empty_updates"},
		}))
		return
	}

	updated, err := mongo.UpdateVehicle(c.Request.Context(), objectID, updates)
	if err != nil {
		if err.Error() == "mongo: no documents in result" {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Vehicle not found", []global.ValidationError{
				{Field: "id", Message: "No vehicle exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error updating vehicle in MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update vehicle", nil))
		return
	}

	if cacheErr := redis.CacheVehicle(c.Request.Context(), updated); cacheErr != nil {
		log.Printf("Warning: Failed to update vehicle cache in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "REFRESHED")
	c.JSON(http.StatusOK, global.SuccessResponse(updated))
}

func DeleteVehicleByID(c *gin.Context) {
	objectID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid vehicle ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	deleted, err := mongo.DeleteVehicle(c.Request.Context(), objectID)
	if err != nil {
		if err.Error() == "mongo: no documents in result" {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Vehicle not found", []global.ValidationError{
				{Field: "id", Message: "No vehicle exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error deleting vehicle from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete vehicle", nil))
		return
	}

	if cacheErr := redis.RemoveVehicleFromCache(c.Request.Context(), deleted); cacheErr != nil {
		log.Printf("Warning: Failed to remove vehicle from Redis cache: %v", cacheErr)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"deleted_vehicle": deleted,
		"message":         "Vehicle successfully deactivated",
	}))
}

func GetAllDealers(c *gin.Context) {
	ctx := c.Request.Context()

	dealers, err := redis.GetDealersFromCache(ctx)
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(dealers))
		return
	}

	dealers, err = mongo.GetAllDealers(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get dealers", nil))
		return
	}

	if cacheErr := redis.CacheDealers(ctx, dealers); cacheErr != nil {
		log.Printf("Warning: Failed to cache dealers in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(dealers))
}

func CreateDealer(c *gin.Context) {
	var dealer models.Dealer
	if err := c.ShouldBindJSON(&dealer); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	created, err := mongo.CreateDealer(c.Request.Context(), &dealer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create dealer", nil))
		return
	}

	if cacheErr := redis.InvalidateDealersCache(c.Request.Context()); cacheErr != nil {
		log.Printf("Warning: Failed to invalidate dealer cache: %v", cacheErr)
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}

func GetSalesAnalytics(c *gin.Context) {
	result, err := mongo.GetSalesAnalytics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch sales analytics", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(result))
}
