package router

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hnqbao/carhive-api/pkg/global"
	"github.com/hnqbao/carhive-api/pkg/models"
	"github.com/hnqbao/carhive-api/pkg/mongo"
	"github.com/hnqbao/carhive-api/pkg/roles"
)

// DirectBookingRequest is the legacy single-vehicle booking payload. The
// client sends the pre-tax subtotal; tax and the final total are derived
// server-side so the 10% is never applied twice.
type DirectBookingRequest struct {
	Customer models.CustomerInfo   `json:"customer" binding:"required"`
	Booking  models.BookingDetails `json:"booking" binding:"required"`
	Subtotal float64               `json:"subtotal" binding:"gte=0"`
}

// CreateDirectBooking creates a legacy single-vehicle order without going
// through a cart. Provenance stamping mirrors checkout: the acting user's
// role decides created_by_role and source, degrading to customer when the
// lookup fails.
func CreateDirectBooking(c *gin.Context) {
	var req DirectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	if !req.Booking.ReturnDate.After(req.Booking.PickupDate) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid booking dates", []global.ValidationError{
			{Field: "booking", Message: "Return date must be after pickup date", Code: "invalid_dates"},
		}))
		return
	}

	uid := c.GetString("uid")
	role := roles.RoleCustomer
	if profile, err := mongo.GetUserProfile(c.Request.Context(), uid); err != nil {
		log.Printf("Warning: role lookup failed for %s, defaulting to customer: %v", uid, err)
	} else if profile != nil {
		role = profile.Role
	}

	now := time.Now()
	subtotal := models.RoundVND(req.Subtotal)
	tax, total := models.ApplyTax(subtotal)
	order := &models.Order{
		OrderNumber:   models.GenerateOrderNumber(now),
		CustomerID:    uid,
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		CustomerPhone: req.Customer.Phone,
		Booking:       &req.Booking,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		CreatedBy:     uid,
		CreatedByRole: role,
		Source:        roles.SourceForRole(role),
		Notes:         req.Customer.Notes,
	}
	order.SetTimestamps()

	created, err := mongo.CreateDirectBooking(c.Request.Context(), order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create booking", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}

// GetMyOrders lists the caller's own orders, newest first.
func GetMyOrders(c *gin.Context) {
	orders, err := mongo.GetOrdersByCustomer(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch orders", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

// GetAllOrders lists every order for staff with the view-all capability.
func GetAllOrders(c *gin.Context) {
	orders, err := mongo.GetAllOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch orders", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

// GetOrderByID returns one order. Customers only see their own; staff with
// the view-all capability see any.
func GetOrderByID(c *gin.Context) {
	objectID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid order ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	order, err := mongo.GetOrderByID(c.Request.Context(), objectID)
	if err != nil {
		if errors.Is(err, mongo.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", []global.ValidationError{
				{Field: "id", Message: "No order exists with this ID", Code: "not_found"},
			}))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch order", nil))
		return
	}

	if order.CustomerID != c.GetString("uid") {
		profile, err := callerProfile(c)
		if err != nil || !roles.CapabilitiesFor(profile.GetRole()).CanViewAll || !profile.Active() {
			c.JSON(http.StatusForbidden, global.ErrorResponse("Permission denied", nil))
			return
		}
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// UpdateOrderItemStatus transitions one item's status and returns the
// order with its re-derived fulfillment fields.
func UpdateOrderItemStatus(c *gin.Context) {
	objectID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid order ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=pending confirmed processing completed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid status", []global.ValidationError{
			{Field: "status", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	order, err := mongo.UpdateOrderItemStatus(c.Request.Context(), objectID, c.Param("itemId"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", nil))
		case errors.Is(err, mongo.ErrItemNotFound):
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order item not found", []global.ValidationError{
				{Field: "itemId", Message: "No item exists with this ID", Code: "not_found"},
			}))
		default:
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update item status", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// AssignOrder sets the responsible staff member.
func AssignOrder(c *gin.Context) {
	objectID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid order ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	var req struct {
		AssignedTo string `json:"assigned_to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid assignment", []global.ValidationError{
			{Field: "assigned_to", Message: "assigned_to is required", Code: "required"},
		}))
		return
	}

	order, err := mongo.AssignOrder(c.Request.Context(), objectID, req.AssignedTo)
	if err != nil {
		if errors.Is(err, mongo.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to assign order", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// UpdateOrderNotes replaces the order's free-text notes.
func UpdateOrderNotes(c *gin.Context) {
	objectID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid order ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid notes payload", nil))
		return
	}

	order, err := mongo.UpdateOrderNotes(c.Request.Context(), objectID, req.Notes)
	if err != nil {
		if errors.Is(err, mongo.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update notes", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}
