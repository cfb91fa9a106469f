package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hnqbao/carhive-api/pkg/global"
	"github.com/hnqbao/carhive-api/pkg/models"
	"github.com/hnqbao/carhive-api/pkg/mongo"
)

// GetCart returns the caller's current cart, lazily creating an empty one.
func GetCart(c *gin.Context) {
	cart, err := mongo.GetOrCreateCart(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

// AddToCart appends a line item to the caller's cart.
func AddToCart(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	// Union invariant is checked before any store write.
	if err := item.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid cart item", []global.ValidationError{
			{Field: "item", Message: err.Error(), Code: "invalid_item"},
		}))
		return
	}

	cart, err := mongo.AddCartItem(c.Request.Context(), c.GetString("uid"), item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add item to cart", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(cart))
}

// UpdateCartItem sets the quantity of an item. Quantity zero removes it.
func UpdateCartItem(c *gin.Context) {
	itemID := c.Param("itemId")

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "quantity", Message: "quantity is required", Code: "required"},
		}))
		return
	}

	cart, err := mongo.UpdateCartItemQuantity(c.Request.Context(), c.GetString("uid"), itemID, *req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart item", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

// RemoveFromCart removes an item; absent ids are a no-op.
func RemoveFromCart(c *gin.Context) {
	cart, err := mongo.RemoveCartItem(c.Request.Context(), c.GetString("uid"), c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to remove cart item", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

// ClearCart empties the caller's cart.
func ClearCart(c *gin.Context) {
	cart, err := mongo.ClearCart(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to clear cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

// CheckoutCart converts the caller's cart into a pending order.
func CheckoutCart(c *gin.Context) {
	var info models.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid customer info", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	order, err := mongo.Checkout(c.Request.Context(), c.GetString("uid"), info)
	if err != nil {
		if errors.Is(err, mongo.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Cart is empty", []global.ValidationError{
				{Field: "cart", Message: "Cannot check out an empty cart", Code: "empty_cart"},
			}))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Checkout failed", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(order))
}
