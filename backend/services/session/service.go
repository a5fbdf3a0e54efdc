// Package session implements the dashboard's login, logout and session check.
//
// NOT FOR PRODUCTION USE. Credentials are compared against a single configured
// pair in plain text and the session is a flag in the client's key-value store:
// whoever holds a non-empty "token" entry is treated as logged in. The token is
// never validated, has no expiry and is not checked server-side.
package session

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mehtaruchit28/ips-ui/backend/services"
	"github.com/mehtaruchit28/ips-ui/backend/storage"
	"go.uber.org/zap"
)

// TokenKey is the storage key holding the session flag
const TokenKey = "token"

// DisplayName is the name reported for the demo account
const DisplayName = "Admin User"

// Credentials is the single accepted email/password pair
type Credentials struct {
	Email    string
	Password string
}

// User is the account returned on successful login
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult is returned by a successful Login
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Service authenticates against the configured credential pair
type Service struct {
	credentials Credentials
	secret      []byte
	now         func() time.Time
	logger      *zap.Logger
}

// NewService creates a session service
func NewService(credentials Credentials, secret string, logger *zap.Logger) *Service {
	return &Service{
		credentials: credentials,
		secret:      []byte(secret),
		now:         time.Now,
		logger:      logger,
	}
}

// Login compares the pair with the configured credentials and, on match,
// stores the session token in the client's store
func (s *Service) Login(ctx context.Context, store storage.KeyValueStore, email, password string) (*LoginResult, error) {
	if !s.matches(email, password) {
		s.logger.Info("login rejected", zap.String("email", email))
		return nil, services.ErrInvalidCredentials
	}

	token, err := s.issueToken(email)
	if err != nil {
		return nil, services.WrapInternal("failed to issue session token", err)
	}

	if err := store.Set(ctx, TokenKey, token); err != nil {
		return nil, services.WrapError(services.ErrStorageFailed, err)
	}

	s.logger.Info("login succeeded", zap.String("email", email))
	return &LoginResult{
		Token: token,
		User:  User{Name: DisplayName, Email: email},
	}, nil
}

// Logout clears the session flag
func (s *Service) Logout(ctx context.Context, store storage.KeyValueStore) error {
	if err := store.Remove(ctx, TokenKey); err != nil {
		return services.WrapError(services.ErrStorageFailed, err)
	}
	s.logger.Info("user logged out")
	return nil
}

// IsAuthenticated reports whether a non-empty session flag is stored.
// Presence is both necessary and sufficient.
func (s *Service) IsAuthenticated(ctx context.Context, store storage.KeyValueStore) (bool, error) {
	v, ok, err := store.Get(ctx, TokenKey)
	if err != nil {
		return false, services.WrapError(services.ErrSessionCheck, err)
	}
	return ok && v != "", nil
}

func (s *Service) matches(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.credentials.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.credentials.Password)) == 1
	return emailOK && passwordOK
}

// issueToken mints the opaque value stored under TokenKey. It is signed only so
// the value is not guessable; nothing verifies it afterwards.
func (s *Service) issueToken(email string) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":  email,
		"name": DisplayName,
		"iat":  now.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}
