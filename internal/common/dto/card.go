package dto

// CardType is the closed set of tile types.
type CardType string

const (
	CardTypeERP          CardType = "ERP"
	CardTypeTimeTracking CardType = "CONTROL_TIEMPOS"
	CardTypePrograms     CardType = "PROGRAMAS"
	CardTypePasswords    CardType = "GESTOR_PASSWORDS"
	CardTypePersonalInfo CardType = "INFORMACION_PERSONAL"
	CardTypeCalendars    CardType = "CALENDARIOS"
	CardTypeMachine      CardType = "MAQUINA_ACTUAL"
	CardTypeWifi         CardType = "WIFI"
	CardTypeLinks        CardType = "ENLACES"
)

// Valid reports whether t is one of the known card types.
func (t CardType) Valid() bool {
	switch t {
	case CardTypeERP, CardTypeTimeTracking, CardTypePrograms,
		CardTypePasswords, CardTypePersonalInfo, CardTypeCalendars,
		CardTypeMachine, CardTypeWifi, CardTypeLinks:
		return true
	}
	return false
}

// CardCreatedBy identifies the author of a card.
type CardCreatedBy struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CardListItem is one row of a card listing.
type CardListItem struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Description        *string       `json:"description"`
	ImageURL           *string       `json:"imageUrl"`
	LinkURL            *string       `json:"linkUrl"`
	Type               CardType      `json:"type"`
	IsActive           bool          `json:"isActive"`
	SortOrder          int           `json:"sortOrder"`
	CreatedAt          string        `json:"createdAt"`
	CreatedBy          CardCreatedBy `json:"createdBy"`
	AssignedUsersCount int           `json:"assignedUsersCount"`
}

// Card is the full card shape.
type Card struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	ImageURL    *string       `json:"imageUrl"`
	LinkURL     *string       `json:"linkUrl"`
	Type        CardType      `json:"type"`
	IsActive    bool          `json:"isActive"`
	SortOrder   int           `json:"sortOrder"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
	CreatedBy   CardCreatedBy `json:"createdBy"`
}

// MyCardItem is one of the current user's assigned cards.
type MyCardItem struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         *string  `json:"description"`
	ImageURL            *string  `json:"imageUrl"`
	LinkURL             *string  `json:"linkUrl"`
	Type                CardType `json:"type"`
	IsFeatured          bool     `json:"isFeatured"`
	SortOrder           int      `json:"sortOrder"`
	AssignedAt          string   `json:"assignedAt"`
	OriginalTitle       string   `json:"originalTitle"`
	OriginalDescription *string  `json:"originalDescription"`
}

// UserCardAssignment is the backend's record of a card assigned to a
// user, with per-assignment overrides.
type UserCardAssignment struct {
	ID                string  `json:"id"`
	UserID            string  `json:"userId"`
	CardID            string  `json:"cardId"`
	IsFeatured        bool    `json:"isFeatured"`
	CustomTitle       *string `json:"customTitle"`
	CustomDescription *string `json:"customDescription"`
	AssignedAt        string  `json:"assignedAt"`
}

// CardsListQuery carries the recognized query parameters of the card
// list endpoint.
type CardsListQuery struct {
	Type      CardType
	IsActive  string // "true", "false" or "all"
	Page      int
	Limit     int
	SortBy    string // sortOrder, title, createdAt, type
	SortOrder string // asc, desc
}

// CreateCardRequest creates a new card.
type CreateCardRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	LinkURL     *string  `json:"linkUrl,omitempty"`
	Type        CardType `json:"type"`
	SortOrder   *int     `json:"sortOrder,omitempty"`
}

// UpdateCardRequest patches a card.
type UpdateCardRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	LinkURL     *string   `json:"linkUrl,omitempty"`
	Type        *CardType `json:"type,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
	SortOrder   *int      `json:"sortOrder,omitempty"`
}

// AssignCardRequest carries per-assignment overrides when granting a
// card to a user.
type AssignCardRequest struct {
	IsFeatured        bool    `json:"isFeatured"`
	CustomTitle       *string `json:"customTitle,omitempty"`
	CustomDescription *string `json:"customDescription,omitempty"`
}

// UpdateFeaturedRequest toggles the featured flag on an assignment.
type UpdateFeaturedRequest struct {
	IsFeatured bool `json:"isFeatured"`
}

// SoftDeleteCardResult reports an assignment-only deletion. The card
// record itself survives.
type SoftDeleteCardResult struct {
	CardID              string `json:"cardId"`
	CardTitle           string `json:"cardTitle"`
	RemovedAssignments  int    `json:"removedAssignments"`
	OriginalAssignments int    `json:"originalAssignments"`
}

// DeleteCardResult reports a full deletion: the card row and all its
// assignments are gone.
type DeleteCardResult struct {
	CardID              string   `json:"cardId"`
	CardTitle           string   `json:"cardTitle"`
	CardType            CardType `json:"cardType"`
	RemovedAssignments  int      `json:"removedAssignments"`
	OriginalAssignments int      `json:"originalAssignments"`
}
