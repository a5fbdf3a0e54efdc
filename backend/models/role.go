package models

// Built-in permission roles. They are seeded on every new store and cannot be deleted.
const (
	BuiltinRoleAdmin   = "Admin"
	BuiltinRoleManager = "Manager"
	BuiltinRoleMember  = "Member"
)

var builtinRoleNames = []string{BuiltinRoleAdmin, BuiltinRoleManager, BuiltinRoleMember}

// RolePermissions is one entry of a role -> visible reports mapping
type RolePermissions struct {
	Name    string   `json:"name" db:"name"`
	Builtin bool     `json:"builtin" db:"builtin"`
	Reports []Report `json:"reports"`
}

// BuiltinRoleNames returns the reserved role names in seed order
func BuiltinRoleNames() []string {
	out := make([]string, len(builtinRoleNames))
	copy(out, builtinRoleNames)
	return out
}

// IsBuiltinRole reports whether name is one of the reserved roles.
// The comparison is exact and case-sensitive.
func IsBuiltinRole(name string) bool {
	for _, n := range builtinRoleNames {
		if n == name {
			return true
		}
	}
	return false
}

// DefaultRolePermissions returns the seed mapping for the built-in roles
func DefaultRolePermissions() []RolePermissions {
	return []RolePermissions{
		{
			Name:    BuiltinRoleAdmin,
			Builtin: true,
			Reports: ReportCatalog(),
		},
		{
			Name:    BuiltinRoleManager,
			Builtin: true,
			Reports: []Report{
				ReportSales,
				ReportRevenue,
				ReportPerformanceAnalytics,
				ReportCustomerInsights,
				ReportInventory,
				ReportStateCountyMap,
			},
		},
		{
			Name:    BuiltinRoleMember,
			Builtin: true,
			Reports: []Report{
				ReportSales,
				ReportCustomerInsights,
				ReportStateCountyMap,
			},
		},
	}
}
