package mongo

import (
	"errors"

	"github.com/hnqbao/carhive-api/pkg/models"
)

var (
	// ErrEmptyCart is returned by Checkout when the customer's cart has no
	// items; nothing is written in that case.
	ErrEmptyCart = models.ErrEmptyCart

	// ErrItemNotFound is returned when an item id is required to exist
	// but does not.
	ErrItemNotFound = errors.New("item not found")

	// ErrUserNotFound is returned when a profile lookup requires existence.
	ErrUserNotFound = errors.New("user not found")

	// ErrOrderNotFound is returned when an order lookup requires existence.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmailExists is returned when account creation hits the unique
	// email index.
	ErrEmailExists = errors.New("email already exists")
)
