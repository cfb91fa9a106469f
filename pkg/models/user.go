package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserProfile is an account in the marketplace. Permissions are always
// derived from Role via the roles table; the two never diverge because
// every role change re-derives the list before persisting.
type UserProfile struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UID         string        `json:"uid" bson:"uid"`
	Email       string        `json:"email" bson:"email" validate:"required,email"`
	Password    string        `json:"-" bson:"password"`
	DisplayName string        `json:"display_name" bson:"display_name"`
	Role        string        `json:"role" bson:"role"`
	Permissions []string      `json:"permissions" bson:"permissions"`
	IsActive    bool          `json:"is_active" bson:"is_active"`
	Department  string        `json:"department,omitempty" bson:"department,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

// GetRole implements roles.Holder. Nil-safe: lookups that found no
// profile pass the nil pointer straight through.
func (u *UserProfile) GetRole() string {
	if u == nil {
		return ""
	}
	return u.Role
}

// GetPermissions implements roles.Holder.
func (u *UserProfile) GetPermissions() []string {
	if u == nil {
		return nil
	}
	return u.Permissions
}

// Active implements roles.Holder.
func (u *UserProfile) Active() bool {
	return u != nil && u.IsActive
}

// SetTimestamps sets created_at on first call and always updates updated_at.
func (u *UserProfile) SetTimestamps() {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// SignupRequest is the self-service registration payload. Role is always
// forced to customer for signups.
type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=100"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserAccountRequest is the admin-only payload for creating staff
// accounts with an explicit role.
type CreateUserAccountRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=100"`
	Role        string `json:"role" binding:"required"`
	Department  string `json:"department"`
}

// UpdateUserRoleRequest changes an account's role; permissions are
// re-derived server-side.
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
