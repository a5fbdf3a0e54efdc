package handlers

import (
	"net/http"

	"github.com/mehtaruchit28/ips-ui/backend/app"
	"github.com/mehtaruchit28/ips-ui/backend/services/password"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
)

// ChangePasswordHandler submits the change-password form
func ChangePasswordHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req password.ChangePasswordRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		result, err := deps.Passwords.ChangePassword(r.Context(), req)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteNotice(w, result, result.Message)
	}
}
