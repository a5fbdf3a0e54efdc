// Package password implements the change-password action.
//
// The only implementation is SimulatedService: it waits, checks the old
// password against its own bcrypt hash and stores the new one. The login
// credential pair used by the session package is not affected.
package password

import (
	"context"
	"sync"
	"time"

	"github.com/mehtaruchit28/ips-ui/backend/services"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SuccessMessage is shown after a completed change
const SuccessMessage = "Password changed successfully"

// ChangePasswordRequest is the change-password form payload
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// ChangePasswordResult is returned on success
type ChangePasswordResult struct {
	Message   string    `json:"message"`
	ChangedAt time.Time `json:"changed_at"`
}

// Service changes the current user's password
type Service interface {
	ChangePassword(ctx context.Context, req ChangePasswordRequest) (*ChangePasswordResult, error)
}

// SimulatedService stands in for a real password backend
type SimulatedService struct {
	mu      sync.Mutex
	hash    []byte
	latency time.Duration
	cost    int
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures a SimulatedService
type Option func(*SimulatedService)

// WithBcryptCost overrides the hashing cost
func WithBcryptCost(cost int) Option {
	return func(s *SimulatedService) { s.cost = cost }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *SimulatedService) { s.now = now }
}

// NewSimulatedService seeds the stored hash from initial
func NewSimulatedService(initial string, latency time.Duration, logger *zap.Logger, opts ...Option) (*SimulatedService, error) {
	s := &SimulatedService{
		latency: latency,
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(initial), s.cost)
	if err != nil {
		return nil, services.WrapInternal("failed to hash initial password", err)
	}
	s.hash = hash
	return s, nil
}

// ChangePassword validates the form, waits out the latency and swaps the hash
func (s *SimulatedService) ChangePassword(ctx context.Context, req ChangePasswordRequest) (*ChangePasswordResult, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		fields := utils.GetValidationFields(err)
		sentinel := services.ErrInvalidInput
		if _, ok := fields["confirm_password"]; ok && req.ConfirmPassword != "" {
			sentinel = services.ErrPasswordConfirm
		}
		domainErr := services.WrapError(sentinel, err).(*services.DomainError)
		for k, v := range fields {
			domainErr.Details[k] = v
		}
		return nil, domainErr
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, services.WrapError(services.ErrPasswordUnavailable, ctx.Err())
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(req.OldPassword)); err != nil {
		s.logger.Debug("password change rejected: old password mismatch")
		return nil, services.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return nil, services.WrapInternal("failed to hash new password", err)
	}
	s.hash = hash

	s.logger.Info("password changed")
	return &ChangePasswordResult{
		Message:   SuccessMessage,
		ChangedAt: s.now().UTC(),
	}, nil
}
