package cnst

// Resource names recognized by the standard provider.
const (
	ResourceUsers       = "users"
	ResourceDepartments = "departments"
	ResourceCards       = "cards"
	ResourceWifi        = "wifi"
	ResourceQuickLinks  = "quick-links"
)

// Resource names recognized by the custom provider. These must never
// overlap the standard names: the combined provider resolves collisions
// by route order, not by content.
const (
	ResourceUserDepartments      = "user-departments"
	ResourceAvailableDepartments = "available-departments"
	ResourceDepartmentAssigns    = "department-assignments"
	ResourceDepartmentCards      = "department-cards"
)

// StandardResources lists the resources served by the standard provider.
func StandardResources() []string {
	return []string{
		ResourceUsers,
		ResourceDepartments,
		ResourceCards,
		ResourceWifi,
		ResourceQuickLinks,
	}
}

// CustomResources lists the resources served by the custom provider.
func CustomResources() []string {
	return []string{
		ResourceUserDepartments,
		ResourceAvailableDepartments,
		ResourceDepartmentAssigns,
		ResourceDepartmentCards,
	}
}
