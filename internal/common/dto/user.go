package dto

// Role is the closed set of user roles known to the backend.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleCEO            Role = "CEO"
	RoleHR             Role = "RRHH"
	RoleDepartmentHead Role = "JEFE_DEPARTAMENTO"
	RoleUser           Role = "USUARIO"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCEO, RoleHR, RoleDepartmentHead, RoleUser:
		return true
	}
	return false
}

// PersonalInfoLite is the personal-info summary embedded in user listings.
type PersonalInfoLite struct {
	Department     *string `json:"department"`
	Position       *string `json:"position"`
	StartDate      *string `json:"startDate"`
	CurrentMachine *string `json:"currentMachine"`
}

// UserListItem is one row of a user listing.
type UserListItem struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Username     string            `json:"username"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Role         Role              `json:"role"`
	IsActive     bool              `json:"isActive"`
	LastLogin    *string           `json:"lastLogin"`
	CreatedAt    string            `json:"createdAt"`
	PersonalInfo *PersonalInfoLite `json:"personalInfo"`
	CardCount    int               `json:"cardCount"`
}

// UserCard is a card assignment as seen from the user side.
type UserCard struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	LinkURL     *string `json:"linkUrl"`
	Type        string  `json:"type"`
	IsFeatured  bool    `json:"isFeatured"`
	AssignedAt  string  `json:"assignedAt"`
}

// UserDetailed is the full user shape returned by single-user endpoints.
type UserDetailed struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Username     string            `json:"username"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Role         Role              `json:"role"`
	IsActive     bool              `json:"isActive"`
	LastLogin    *string           `json:"lastLogin"`
	CreatedAt    string            `json:"createdAt"`
	PersonalInfo *PersonalInfoLite `json:"personalInfo"`
	Cards        []UserCard        `json:"cards"`
}

// PersonalInfo is the full personal-info record owned by the
// personal-info endpoint. Note it is narrower than UserDetailed.
type PersonalInfo struct {
	ID               string  `json:"id"`
	UserID           string  `json:"userId"`
	Phone            *string `json:"phone"`
	Department       *string `json:"department"`
	Position         *string `json:"position"`
	StartDate        *string `json:"startDate"`
	BirthDate        *string `json:"birthDate"`
	EmergencyContact *string `json:"emergencyContact"`
	Avatar           *string `json:"avatar"`
	CurrentMachine   *string `json:"currentMachine"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// UsersListQuery carries the recognized query parameters of the user
// list endpoint. Zero values are omitted from the query string.
type UsersListQuery struct {
	Page       int
	Limit      int
	Role       Role
	Department string
	Search     string
	IsActive   string // "true", "false" or "all"
}

// CreateUserRequest creates a new user account.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	Password  string `json:"password"`
}

// UpdateBasicInfoRequest patches identity fields. Nil fields are left
// untouched by the backend.
type UpdateBasicInfoRequest struct {
	Email     *string `json:"email,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// Empty reports whether the patch carries no fields.
func (r UpdateBasicInfoRequest) Empty() bool {
	return r.Email == nil && r.Username == nil && r.FirstName == nil &&
		r.LastName == nil && r.Role == nil && r.IsActive == nil
}

// UpdatePersonalInfoRequest patches the personal-info sub-record.
type UpdatePersonalInfoRequest struct {
	Phone            *string `json:"phone,omitempty"`
	Department       *string `json:"department,omitempty"`
	Position         *string `json:"position,omitempty"`
	StartDate        *string `json:"startDate,omitempty"`
	BirthDate        *string `json:"birthDate,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
	CurrentMachine   *string `json:"currentMachine,omitempty"`
}

// Empty reports whether the patch carries no fields.
func (r UpdatePersonalInfoRequest) Empty() bool {
	return r.Phone == nil && r.Department == nil && r.Position == nil &&
		r.StartDate == nil && r.BirthDate == nil &&
		r.EmergencyContact == nil && r.CurrentMachine == nil
}

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	Role Role `json:"role"`
}

// UpdateStatusRequest toggles a user's active flag.
type UpdateStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// ResetPasswordRequest sets a new password for a user.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// BulkAction is the admin bulk-update action discriminator.
type BulkAction string

const (
	BulkActionActivate   BulkAction = "activate"
	BulkActionDeactivate BulkAction = "deactivate"
	BulkActionUpdateRole BulkAction = "updateRole"
)

// AdminBulkUpdateRequest applies one action to a set of users.
type AdminBulkUpdateRequest struct {
	UserIDs []string        `json:"userIds"`
	Action  BulkAction      `json:"action"`
	Data    *BulkUpdateData `json:"data,omitempty"`
}

// BulkUpdateData carries the payload of role-changing bulk actions.
type BulkUpdateData struct {
	Role Role `json:"role,omitempty"`
}
