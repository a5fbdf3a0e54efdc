// Package authgate guards protected content behind the session flag.
package authgate

import (
	"context"

	"go.uber.org/zap"
)

// Paths used by the navigation collaborator
const (
	PathLogin          = "/login"
	PathHome           = "/home"
	PathChangePassword = "/change_password"
)

// State is a step of the gate's state machine
type State int

const (
	StateChecking State = iota
	StateAuthenticated
	StateRedirecting
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateRedirecting:
		return "redirecting"
	}
	return "unknown"
}

// Navigator performs a redirect to an application path
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(path string)

// Navigate calls f(path)
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// SessionChecker reports whether the current client holds a session flag
type SessionChecker interface {
	IsAuthenticated(ctx context.Context) (bool, error)
}

// SessionCheckerFunc adapts a function to SessionChecker
type SessionCheckerFunc func(ctx context.Context) (bool, error)

// IsAuthenticated calls f(ctx)
func (f SessionCheckerFunc) IsAuthenticated(ctx context.Context) (bool, error) {
	return f(ctx)
}

// Gate runs one session check: Checking -> {Authenticated, Redirecting}.
// Both outcomes are terminal; a Gate is not reused across checks.
type Gate struct {
	checker   SessionChecker
	navigator Navigator
	logger    *zap.Logger
	state     State
}

// New creates a gate in the Checking state
func New(checker SessionChecker, navigator Navigator, logger *zap.Logger) *Gate {
	return &Gate{
		checker:   checker,
		navigator: navigator,
		logger:    logger,
		state:     StateChecking,
	}
}

// State returns the current state
func (g *Gate) State() State {
	return g.state
}

// Check resolves the gate. A failed check counts as unauthenticated.
func (g *Gate) Check(ctx context.Context) State {
	if g.state != StateChecking {
		return g.state
	}

	ok, err := g.checker.IsAuthenticated(ctx)
	if err != nil {
		g.logger.Error("authentication check failed", zap.Error(err))
		ok = false
	}

	if !ok {
		g.state = StateRedirecting
		g.navigator.Navigate(PathLogin)
		return g.state
	}

	g.state = StateAuthenticated
	return g.state
}

// Guard checks the session and calls render only when authenticated
func (g *Gate) Guard(ctx context.Context, render func()) State {
	if g.Check(ctx) == StateAuthenticated {
		render()
	}
	return g.state
}
