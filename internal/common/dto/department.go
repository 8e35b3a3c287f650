package dto

// Department is the base department record. Slugs are URL-safe:
// lowercase letters, digits and hyphens.
type Department struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// DepartmentCounts carries the relation counters of a listing row.
type DepartmentCounts struct {
	Users int `json:"users"`
	Cards int `json:"cards"`
}

// DepartmentListItem is one row of a department listing.
type DepartmentListItem struct {
	Department
	Count DepartmentCounts `json:"_count"`
}

// DepartmentUserRef is the embedded user summary on an assignment.
type DepartmentUserRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// DepartmentUser is a user assignment inside a detailed department.
type DepartmentUser struct {
	ID       string            `json:"id"`
	UserID   string            `json:"userId"`
	IsHead   bool              `json:"isHead"`
	JoinedAt string            `json:"joinedAt"`
	IsActive bool              `json:"isActive"`
	User     DepartmentUserRef `json:"user"`
}

// DepartmentCardRef is the embedded card summary on an assignment.
type DepartmentCardRef struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
	IsActive    bool    `json:"isActive"`
}

// DepartmentCard is a card assignment inside a detailed department.
type DepartmentCard struct {
	ID         string            `json:"id"`
	CardID     string            `json:"cardId"`
	CanEdit    bool              `json:"canEdit"`
	CanDelete  bool              `json:"canDelete"`
	AssignedAt string            `json:"assignedAt"`
	IsActive   bool              `json:"isActive"`
	Card       DepartmentCardRef `json:"card"`
}

// DepartmentDetailed is a department with its relations expanded.
type DepartmentDetailed struct {
	Department
	Users []DepartmentUser `json:"users"`
	Cards []DepartmentCard `json:"cards"`
}

// MyDepartmentAssignment is the assignment part of MyDepartment.
type MyDepartmentAssignment struct {
	ID       string `json:"id"`
	IsHead   bool   `json:"isHead"`
	JoinedAt string `json:"joinedAt"`
}

// MyDepartmentRef is the department part of MyDepartment.
type MyDepartmentRef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// MyDepartment is one entry of a user's department membership list.
type MyDepartment struct {
	Assignment MyDepartmentAssignment `json:"assignment"`
	Department MyDepartmentRef        `json:"department"`
}

// DepartmentsListQuery carries the recognized query parameters of the
// department list endpoint.
type DepartmentsListQuery struct {
	Page      int
	Limit     int
	IsActive  string // "true", "false" or "all"
	Search    string
	SortBy    string // name, slug, createdAt, updatedAt
	SortOrder string // asc, desc
}

// CreateDepartmentRequest creates a new department.
type CreateDepartmentRequest struct {
	Name        string  `json:"name"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateDepartmentRequest patches a department.
type UpdateDepartmentRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// AssignUserToDepartmentRequest carries per-assignment metadata.
type AssignUserToDepartmentRequest struct {
	IsHead  bool    `json:"isHead"`
	Message *string `json:"message,omitempty"`
}

// AssignCardToDepartmentRequest carries per-assignment permissions.
type AssignCardToDepartmentRequest struct {
	CanEdit   bool    `json:"canEdit"`
	CanDelete bool    `json:"canDelete"`
	Message   *string `json:"message,omitempty"`
}

// UserDepartmentAssignment is the backend's record of a user belonging
// to a department.
type UserDepartmentAssignment struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	DepartmentID string `json:"departmentId"`
	IsHead       bool   `json:"isHead"`
	JoinedAt     string `json:"joinedAt"`
	IsActive     bool   `json:"isActive"`
}

// CardDepartmentAssignment is the backend's record of a card granted to
// a department.
type CardDepartmentAssignment struct {
	ID           string `json:"id"`
	DepartmentID string `json:"departmentId"`
	CardID       string `json:"cardId"`
	AssignedBy   string `json:"assignedBy"`
	CanEdit      bool   `json:"canEdit"`
	CanDelete    bool   `json:"canDelete"`
	AssignedAt   string `json:"assignedAt"`
	IsActive     bool   `json:"isActive"`
}

// DepartmentCardDetailed is a card with its department-assignment
// metadata flattened in, as returned by /departments/{id}/cards.
type DepartmentCardDetailed struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	ImageURL    *string       `json:"imageUrl,omitempty"`
	LinkURL     *string       `json:"linkUrl,omitempty"`
	Type        string        `json:"type"`
	IsActive    bool          `json:"isActive"`
	SortOrder   int           `json:"sortOrder"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
	CanEdit     bool          `json:"canEdit"`
	CanDelete   bool          `json:"canDelete"`
	AssignedAt  string        `json:"assignedAt"`
	AssignedBy  string        `json:"assignedBy"`
	CreatedBy   CardCreatedBy `json:"createdBy"`
}
