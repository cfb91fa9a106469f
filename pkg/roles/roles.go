// Package roles is the single source of truth for the role/permission
// model: one immutable table maps each role to its permission strings and
// its order-management capability flags. The table is built once at package
// init and never mutated at runtime.
package roles

// Role identifiers. Signup always produces RoleCustomer; the others are
// assigned by an admin.
const (
	RoleAdmin           = "admin"
	RoleCustomerService = "customer_service"
	RoleTelesale        = "telesale"
	RoleOperation       = "operation"
	RoleCustomer        = "customer"
)

// Capabilities are the boolean flags consulted by the order-management
// surface.
type Capabilities struct {
	CanViewAll         bool `json:"can_view_all"`
	CanEdit            bool `json:"can_edit"`
	CanDelete          bool `json:"can_delete"`
	CanAssign          bool `json:"can_assign"`
	CanViewFinancials  bool `json:"can_view_financials"`
	CanManageStatus    bool `json:"can_manage_status"`
	CanContactCustomer bool `json:"can_contact_customer"`
	CanViewReports     bool `json:"can_view_reports"`
}

// RoleSpec bundles everything the system knows about a role. The
// permission lists are independently enumerated per role; there is no
// inheritance between roles.
type RoleSpec struct {
	Permissions  []string     `json:"permissions"`
	Capabilities Capabilities `json:"capabilities"`
	OrderSource  string       `json:"order_source"`
}

var table = map[string]RoleSpec{
	RoleAdmin: {
		Permissions: []string{
			"manage_users", "manage_orders", "manage_vehicles",
			"view_analytics", "manage_dealers", "manage_system",
		},
		Capabilities: Capabilities{
			CanViewAll: true, CanEdit: true, CanDelete: true, CanAssign: true,
			CanViewFinancials: true, CanManageStatus: true,
			CanContactCustomer: true, CanViewReports: true,
		},
		OrderSource: "email",
	},
	RoleCustomerService: {
		Permissions: []string{
			"create_orders", "view_customer_data", "manage_bookings",
			"view_vehicles", "handle_complaints",
		},
		Capabilities: Capabilities{
			CanViewAll: true, CanEdit: true, CanAssign: true,
			CanManageStatus: true, CanContactCustomer: true,
		},
		OrderSource: "phone",
	},
	RoleTelesale: {
		Permissions: []string{
			"create_orders", "view_customer_data", "manage_leads",
			"view_vehicles", "process_bookings",
		},
		Capabilities: Capabilities{
			CanViewAll: true, CanEdit: true, CanContactCustomer: true,
		},
		OrderSource: "phone",
	},
	RoleOperation: {
		Permissions: []string{
			"manage_vehicles", "manage_dealers", "view_orders",
			"update_order_status", "manage_inventory",
		},
		Capabilities: Capabilities{
			CanViewAll: true, CanManageStatus: true, CanViewReports: true,
		},
		OrderSource: "email",
	},
	RoleCustomer: {
		Permissions: []string{
			"view_vehicles", "create_bookings", "view_own_orders",
			"manage_own_profile",
		},
		Capabilities: Capabilities{},
		OrderSource:  "website",
	},
}

// AllRoles lists every known role identifier.
func AllRoles() []string {
	return []string{RoleAdmin, RoleCustomerService, RoleTelesale, RoleOperation, RoleCustomer}
}

// IsValidRole reports whether the identifier exists in the table.
func IsValidRole(role string) bool {
	_, ok := table[role]
	return ok
}

// PermissionsFor returns a copy of the permission list for the role.
// Unknown roles get an empty list.
func PermissionsFor(role string) []string {
	spec, ok := table[role]
	if !ok {
		return []string{}
	}
	out := make([]string, len(spec.Permissions))
	copy(out, spec.Permissions)
	return out
}

// CapabilitiesFor returns the capability flags for the role. Unknown roles
// get all-false.
func CapabilitiesFor(role string) Capabilities {
	return table[role].Capabilities
}

// SourceForRole maps the acting role to the order provenance channel:
// telesale and customer_service book over the phone, admin and operation
// over email, everyone else through the website.
func SourceForRole(role string) string {
	spec, ok := table[role]
	if !ok || spec.OrderSource == "" {
		return "website"
	}
	return spec.OrderSource
}

// Holder is anything carrying a role, an active flag and a derived
// permission list; satisfied by models.UserProfile.
type Holder interface {
	GetRole() string
	GetPermissions() []string
	Active() bool
}

// HasPermission reports whether the holder is active and the permission is
// present in its derived list. Inactive accounts hold no permissions at
// all, regardless of the list contents.
func HasPermission(h Holder, permission string) bool {
	if h == nil || !h.Active() {
		return false
	}
	for _, p := range h.GetPermissions() {
		if p == permission {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the holder is an active admin.
func IsAdmin(h Holder) bool {
	return h != nil && h.Active() && h.GetRole() == RoleAdmin
}
