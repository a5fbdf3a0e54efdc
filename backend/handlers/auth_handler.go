package handlers

import (
	"net/http"

	"github.com/mehtaruchit28/ips-ui/backend/app"
	"github.com/mehtaruchit28/ips-ui/backend/middleware"
	"github.com/mehtaruchit28/ips-ui/backend/services/authgate"
	"github.com/mehtaruchit28/ips-ui/backend/services/dashboard"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
	"go.uber.org/zap"
)

// LoginRequest is the login form payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPageResponse is the login page model
type LoginPageResponse struct {
	dashboard.LoginPage
	Authenticated bool `json:"authenticated"`
}

// LoginPageHandler returns the login page model. It is never gated.
func LoginPageHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := clientStore(deps, w, r)
		if !ok {
			return
		}
		authed, err := deps.Sessions.IsAuthenticated(r.Context(), store)
		if err != nil {
			deps.Logger.Warn("session check failed on login page", zap.Error(err))
		}
		_ = utils.WriteOK(w, LoginPageResponse{
			LoginPage:     deps.Content.Login,
			Authenticated: authed,
		})
	}
}

// LoginHandler checks the submitted credentials and stores the session flag
func LoginHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		store, ok := clientStore(deps, w, r)
		if !ok {
			return
		}

		result, err := deps.Sessions.Login(r.Context(), store, req.Email, req.Password)
		if err != nil {
			deps.Logger.Info("login failed",
				zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
				zap.String("client_id", middleware.GetClientIDFromContext(r.Context())))
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = writeSeeOther(w, authgate.PathHome, result.User, "")
	}
}

// LogoutHandler clears the session flag and drops the client's unsaved page state
func LogoutHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := clientStore(deps, w, r)
		if !ok {
			return
		}
		if err := deps.Sessions.Logout(r.Context(), store); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		deps.Workspaces.Forget(middleware.GetClientIDFromContext(r.Context()))
		_ = writeSeeOther(w, authgate.PathLogin, nil, "")
	}
}

// SessionHandler reports the current session. Only reachable when authenticated.
func SessionHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, map[string]interface{}{
			"authenticated": true,
			"client_id":     middleware.GetClientIDFromContext(r.Context()),
		})
	}
}
