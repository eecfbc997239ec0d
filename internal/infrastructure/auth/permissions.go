package auth

import "github.com/jdcrm/backend/internal/domain/pipeline"

// Permission names as the presentation layer consumes them
const (
	PermManageProjects    = "manage_projects"
	PermManageInventory   = "manage_inventory"
	PermManageLeads       = "manage_leads"
	PermManageUsers       = "manage_users"
	PermManageBookings    = "manage_bookings"
	PermViewReports       = "view_reports"
	PermCreateBookings    = "create_bookings"
	PermViewLeads         = "view_leads"
	PermCreateInteraction = "create_interactions"
)

// rolePermissions maps each agent role to what it may do. Permissions are
// derived server-side from the role claim; the token never carries them.
var rolePermissions = map[pipeline.AgentRole][]string{
	pipeline.AgentRoleAdmin: {
		PermManageProjects, PermManageInventory, PermManageLeads,
		PermManageUsers, PermManageBookings, PermViewReports,
		PermCreateBookings, PermViewLeads, PermCreateInteraction,
	},
	pipeline.AgentRoleManager: {
		PermManageInventory, PermManageLeads, PermManageBookings,
		PermViewReports, PermCreateBookings, PermViewLeads, PermCreateInteraction,
	},
	pipeline.AgentRoleSalesExec: {
		PermViewLeads, PermCreateInteraction, PermCreateBookings,
	},
	pipeline.AgentRoleTelecaller: {
		PermViewLeads, PermCreateInteraction,
	},
}

// PermissionsForRole returns the permission set for a role
func PermissionsForRole(role pipeline.AgentRole) []string {
	return rolePermissions[role]
}

// HasPermission checks whether the session's role grants a permission
func (c *Claims) HasPermission(permission string) bool {
	for _, p := range rolePermissions[c.Role] {
		if p == permission {
			return true
		}
	}
	return false
}

// HasAnyPermission checks whether the role grants any of the permissions
func (c *Claims) HasAnyPermission(permissions ...string) bool {
	for _, required := range permissions {
		if c.HasPermission(required) {
			return true
		}
	}
	return false
}
