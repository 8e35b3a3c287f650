package dto

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the identity view of the logged-in user.
type AuthUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
}

// AuthData is the login response payload.
type AuthData struct {
	User        AuthUser `json:"user"`
	AccessToken string   `json:"accessToken"`
}
