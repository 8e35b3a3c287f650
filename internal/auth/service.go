package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/intradash/adminkit/internal/apiclient"
	"github.com/intradash/adminkit/internal/common/cnst"
	"github.com/intradash/adminkit/internal/common/dto"
	"github.com/intradash/adminkit/internal/common/errorx"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service handles login, logout and local token inspection. The token
// is treated as an opaque bearer credential: its claims are decoded
// without signature verification for UI purposes only, and the backend
// remains the actual authority on validity.
type Service struct {
	api    *apiclient.Client
	store  TokenStore
	logger *zap.Logger
}

// NewService creates an auth service.
func NewService(api *apiclient.Client, store TokenStore, logger *zap.Logger) *Service {
	return &Service{
		api:    api,
		store:  store,
		logger: logger,
	}
}

// ValidateCredentials checks credential shape locally. It runs before
// any network call so malformed input never leaves the client.
func (s *Service) ValidateCredentials(creds dto.LoginRequest) error {
	if creds.Email == "" {
		return errorx.NewValidation("email is required")
	}
	if !emailRegex.MatchString(creds.Email) {
		return errorx.NewValidation("email format is invalid")
	}
	if creds.Password == "" {
		return errorx.NewValidation("password is required")
	}
	return nil
}

// Login validates credentials, authenticates against the backend and
// persists the returned access token.
func (s *Service) Login(ctx context.Context, creds dto.LoginRequest) (*dto.AuthUser, error) {
	if err := s.ValidateCredentials(creds); err != nil {
		return nil, err
	}

	raw, err := s.api.Post(ctx, "/auth/login", creds, "")
	if err != nil {
		return nil, errorx.Normalize(err)
	}

	resp, err := dto.DecodeResponse[dto.AuthData](raw)
	if err != nil {
		return nil, errorx.Normalize(err)
	}
	if !resp.Success || resp.Data.AccessToken == "" {
		e := errorx.FromResponse(401, "Unauthorized", nil)
		e.Name = "LoginError"
		e.Code = "LOGIN_ERROR"
		if resp.Message != "" {
			e.Message = resp.Message
		}
		return nil, e
	}

	if err := s.store.Save(resp.Data.AccessToken); err != nil {
		return nil, errorx.Normalize(err)
	}
	s.logger.Info("login succeeded", zap.String("user", resp.Data.User.Email))
	return &resp.Data.User, nil
}

// Logout clears the stored token. It always succeeds locally.
func (s *Service) Logout() error {
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("failed to clear stored token", zap.Error(err))
		return err
	}
	return nil
}

// Token returns the stored bearer token, or "" when none is stored.
func (s *Service) Token() string {
	token, err := s.store.Load()
	if err != nil {
		s.logger.Warn("failed to load stored token", zap.Error(err))
		return ""
	}
	return token
}

// RequireToken returns the stored bearer token, or ErrEmptyToken when
// none is stored.
func (s *Service) RequireToken() (string, error) {
	token := s.Token()
	if token == "" {
		return "", cnst.ErrEmptyToken
	}
	return token, nil
}

// IsAuthenticated reports whether a token is stored and its exp claim
// lies in the future. The claim is read without signature
// verification; a token that cannot be decoded is purged. No network
// call is made.
func (s *Service) IsAuthenticated() bool {
	claims := s.claims()
	if claims == nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !exp.After(time.Now()) {
		_ = s.store.Clear()
		return false
	}
	return true
}

// CurrentUser derives an identity view from the stored token's claims.
// Absent claims default to empty strings. Returns nil when no valid
// token is stored.
func (s *Service) CurrentUser() *dto.AuthUser {
	if !s.IsAuthenticated() {
		return nil
	}
	claims := s.claims()
	if claims == nil {
		return nil
	}

	user := &dto.AuthUser{IsActive: true}
	if v, ok := claims["sub"].(string); ok {
		user.ID = v
	} else if v, ok := claims["userId"].(string); ok {
		user.ID = v
	}
	if v, ok := claims["email"].(string); ok {
		user.Email = v
	}
	if v, ok := claims["username"].(string); ok {
		user.Username = v
	}
	if v, ok := claims["firstName"].(string); ok {
		user.FirstName = v
	}
	if v, ok := claims["lastName"].(string); ok {
		user.LastName = v
	}
	if v, ok := claims["role"].(string); ok {
		user.Role = v
	}
	if v, ok := claims["isActive"].(bool); ok {
		user.IsActive = v
	}
	return user
}

// HandleUnauthorized clears the stored token when err is a 401. A 401
// anywhere means the session expired; the caller is expected to route
// the user back to login. Reports whether it acted.
func (s *Service) HandleUnauthorized(err error) bool {
	if !errorx.IsUnauthorized(err) {
		return false
	}
	s.logger.Info("session expired, clearing stored token")
	_ = s.store.Clear()
	return true
}

// claims decodes the stored token's payload without verifying the
// signature. Undecodable tokens are purged.
func (s *Service) claims() jwt.MapClaims {
	token := s.Token()
	if token == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		_ = s.store.Clear()
		return nil
	}
	return claims
}
