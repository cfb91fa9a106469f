package roles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnqbao/carhive-api/pkg/models"
	"github.com/hnqbao/carhive-api/pkg/roles"
)

func activeProfile(role string) *models.UserProfile {
	return &models.UserProfile{
		UID:         "u-1",
		Role:        role,
		Permissions: roles.PermissionsFor(role),
		IsActive:    true,
	}
}

func TestPermissionsForIsPureAcrossRoles(t *testing.T) {
	want := map[string][]string{
		roles.RoleAdmin: {
			"manage_users", "manage_orders", "manage_vehicles",
			"view_analytics", "manage_dealers", "manage_system",
		},
		roles.RoleCustomerService: {
			"create_orders", "view_customer_data", "manage_bookings",
			"view_vehicles", "handle_complaints",
		},
		roles.RoleTelesale: {
			"create_orders", "view_customer_data", "manage_leads",
			"view_vehicles", "process_bookings",
		},
		roles.RoleOperation: {
			"manage_vehicles", "manage_dealers", "view_orders",
			"update_order_status", "manage_inventory",
		},
		roles.RoleCustomer: {
			"view_vehicles", "create_bookings", "view_own_orders",
			"manage_own_profile",
		},
	}

	for role, perms := range want {
		assert.Equal(t, perms, roles.PermissionsFor(role), "role %s", role)
		// Repeated calls return the same list.
		assert.Equal(t, roles.PermissionsFor(role), roles.PermissionsFor(role))
	}
}

func TestPermissionsForReturnsACopy(t *testing.T) {
	first := roles.PermissionsFor(roles.RoleTelesale)
	first[0] = "tampered"

	assert.Equal(t, "create_orders", roles.PermissionsFor(roles.RoleTelesale)[0])
}

func TestPermissionsForUnknownRole(t *testing.T) {
	assert.Empty(t, roles.PermissionsFor("superuser"))
}

func TestRoleChangeRederivesTelesaleList(t *testing.T) {
	// An account moved from customer_service to telesale must end up with
	// exactly the telesale list.
	profile := activeProfile(roles.RoleCustomerService)

	profile.Role = roles.RoleTelesale
	profile.Permissions = roles.PermissionsFor(profile.Role)

	require.Equal(t, []string{
		"create_orders", "view_customer_data", "manage_leads",
		"view_vehicles", "process_bookings",
	}, profile.Permissions)
}

func TestHasPermission(t *testing.T) {
	profile := activeProfile(roles.RoleOperation)

	assert.True(t, roles.HasPermission(profile, "manage_vehicles"))
	assert.True(t, roles.HasPermission(profile, "update_order_status"))
	assert.False(t, roles.HasPermission(profile, "manage_users"))
}

func TestHasPermissionAlwaysFalseWhenInactive(t *testing.T) {
	for _, role := range roles.AllRoles() {
		profile := activeProfile(role)
		profile.IsActive = false

		for _, p := range profile.Permissions {
			assert.False(t, roles.HasPermission(profile, p),
				"inactive %s must not hold %s", role, p)
		}
	}
}

func TestHasPermissionNilProfile(t *testing.T) {
	var profile *models.UserProfile
	assert.False(t, roles.HasPermission(profile, "view_vehicles"))
	assert.False(t, roles.HasPermission(nil, "view_vehicles"))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, roles.IsAdmin(activeProfile(roles.RoleAdmin)))

	inactive := activeProfile(roles.RoleAdmin)
	inactive.IsActive = false
	assert.False(t, roles.IsAdmin(inactive))

	assert.False(t, roles.IsAdmin(activeProfile(roles.RoleOperation)))

	var nilProfile *models.UserProfile
	assert.False(t, roles.IsAdmin(nilProfile))
}

func TestCapabilitiesPerRole(t *testing.T) {
	admin := roles.CapabilitiesFor(roles.RoleAdmin)
	assert.True(t, admin.CanViewAll)
	assert.True(t, admin.CanDelete)
	assert.True(t, admin.CanViewFinancials)
	assert.True(t, admin.CanViewReports)

	customer := roles.CapabilitiesFor(roles.RoleCustomer)
	assert.Equal(t, roles.Capabilities{}, customer)

	telesale := roles.CapabilitiesFor(roles.RoleTelesale)
	assert.True(t, telesale.CanViewAll)
	assert.False(t, telesale.CanManageStatus)
	assert.False(t, telesale.CanAssign)

	unknown := roles.CapabilitiesFor("superuser")
	assert.Equal(t, roles.Capabilities{}, unknown)
}

func TestSourceForRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{roles.RoleTelesale, "phone"},
		{roles.RoleCustomerService, "phone"},
		{roles.RoleAdmin, "email"},
		{roles.RoleOperation, "email"},
		{roles.RoleCustomer, "website"},
		{"unknown", "website"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roles.SourceForRole(tt.role), "role %s", tt.role)
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range roles.AllRoles() {
		assert.True(t, roles.IsValidRole(role))
	}
	assert.False(t, roles.IsValidRole(""))
	assert.False(t, roles.IsValidRole("root"))
}
