package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hnqbao/carhive-api/pkg/auth"
	"github.com/hnqbao/carhive-api/pkg/global"
	"github.com/hnqbao/carhive-api/pkg/models"
	"github.com/hnqbao/carhive-api/pkg/mongo"
	"github.com/hnqbao/carhive-api/pkg/roles"
)

// AuthRequired validates the bearer token and injects the caller identity
// into the gin context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authentication required", []global.ValidationError{
				{Field: "authorization", Message: "Bearer token is required", Code: "missing_token"},
			}))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid token format", []global.ValidationError{
				{Field: "authorization", Message: "Expected 'Bearer <token>'", Code: "invalid_format"},
			}))
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired token", nil))
			c.Abort()
			return
		}

		c.Set("uid", claims.UID)
		c.Set("email", claims.Email)
		c.Set("display_name", claims.DisplayName)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// callerProfile loads the acting user's stored profile. The stored
// profile, not the token, decides active status and permissions, so a
// deactivated account is locked out even while its token is still valid.
func callerProfile(c *gin.Context) (*models.UserProfile, error) {
	return mongo.GetUserProfile(c.Request.Context(), c.GetString("uid"))
}

// RequireAdmin rejects callers who are not active admins before the
// handler runs.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := callerProfile(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to verify caller", nil))
			c.Abort()
			return
		}
		if !roles.IsAdmin(profile) {
			c.JSON(http.StatusForbidden, global.ErrorResponse("Admin access required", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission rejects callers whose derived permission list does not
// contain the permission, or whose account is inactive.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := callerProfile(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to verify caller", nil))
			c.Abort()
			return
		}
		if !roles.HasPermission(profile, permission) {
			c.JSON(http.StatusForbidden, global.ErrorResponse("Permission denied", []global.ValidationError{
				{Field: "role", Message: "Missing permission: " + permission, Code: "forbidden"},
			}))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Capability selectors for RequireCapability.
func canViewAll(caps roles.Capabilities) bool      { return caps.CanViewAll }
func canEdit(caps roles.Capabilities) bool         { return caps.CanEdit }
func canAssign(caps roles.Capabilities) bool       { return caps.CanAssign }
func canManageStatus(caps roles.Capabilities) bool { return caps.CanManageStatus }

// RequireCapability gates a route on one of the order-management
// capability flags.
func RequireCapability(selector func(roles.Capabilities) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := callerProfile(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to verify caller", nil))
			c.Abort()
			return
		}
		if profile == nil || !profile.IsActive || !selector(roles.CapabilitiesFor(profile.Role)) {
			c.JSON(http.StatusForbidden, global.ErrorResponse("Permission denied", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}
