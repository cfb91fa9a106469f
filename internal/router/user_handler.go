package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/hnqbao/carhive-api/pkg/auth"
	"github.com/hnqbao/carhive-api/pkg/global"
	"github.com/hnqbao/carhive-api/pkg/models"
	"github.com/hnqbao/carhive-api/pkg/mongo"
	"github.com/hnqbao/carhive-api/pkg/roles"
)

// Signup registers a self-service account. The role is always forced to
// customer regardless of anything in the payload.
func Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to process password", nil))
		return
	}

	user, err := mongo.CreateUserAccount(c.Request.Context(), req.Email, string(hashedPassword),
		req.DisplayName, roles.RoleCustomer, "")
	if err != nil {
		if errors.Is(err, mongo.ErrEmailExists) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Email already registered", []global.ValidationError{
				{Field: "email", Message: "This email is already in use", Code: "duplicate_email"},
			}))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account", nil))
		return
	}

	token, err := auth.SignToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to issue token", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]interface{}{
		"user":  user,
		"token": token,
	}))
}

// Login authenticates an account and issues a bearer token.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	user, err := mongo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid email or password", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Login failed", nil))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid email or password", nil))
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, global.ErrorResponse("Account is deactivated", nil))
		return
	}

	token, err := auth.SignToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to issue token", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"user":  user,
		"token": token,
	}))
}

// GetMyProfile returns the caller's own profile.
func GetMyProfile(c *gin.Context) {
	profile, err := mongo.GetUserProfile(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch profile", nil))
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Profile not found", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(profile))
}

// GetAllUsers lists every account. Admin only.
func GetAllUsers(c *gin.Context) {
	users, err := mongo.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch users", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(users))
}

// CreateUserAccount creates a staff account with an explicit role. Admin
// only; permissions are derived from the chosen role.
func CreateUserAccount(c *gin.Context) {
	var req models.CreateUserAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	if !roles.IsValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Unknown role", []global.ValidationError{
			{Field: "role", Message: "Role must be one of the defined role identifiers", Code: "invalid_role"},
		}))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to process password", nil))
		return
	}

	user, err := mongo.CreateUserAccount(c.Request.Context(), req.Email, string(hashedPassword),
		req.DisplayName, req.Role, req.Department)
	if err != nil {
		if errors.Is(err, mongo.ErrEmailExists) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Email already registered", []global.ValidationError{
				{Field: "email", Message: "This email is already in use", Code: "duplicate_email"},
			}))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(user))
}

// UpdateUserRole changes an account's role; the permission list is
// re-derived server-side in the same write. Admin only.
func UpdateUserRole(c *gin.Context) {
	var req models.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "role", Message: "role is required", Code: "required"},
		}))
		return
	}

	if !roles.IsValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Unknown role", []global.ValidationError{
			{Field: "role", Message: "Role must be one of the defined role identifiers", Code: "invalid_role"},
		}))
		return
	}

	user, err := mongo.UpdateUserRole(c.Request.Context(), c.Param("uid"), req.Role)
	if err != nil {
		if errors.Is(err, mongo.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update role", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

// DeactivateUser turns off the account's active gate. Admin only; there is
// no reactivation endpoint.
func DeactivateUser(c *gin.Context) {
	user, err := mongo.DeactivateUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		if errors.Is(err, mongo.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to deactivate user", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(user))
}
