package rbac

// Default policy for the import surface. Expand as needed.
var RolePermissions = map[string][]string{
	"teacher": {
		"exam:create",
		"exam:import",
		"question:create",
		"question:delete",
		"question:view",
	},
	"admin": {
		"*", // everything
	},
}
