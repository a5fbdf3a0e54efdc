package handlers

import (
	"net/http"

	"github.com/mehtaruchit28/ips-ui/backend/app"
	"github.com/mehtaruchit28/ips-ui/backend/models"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
)

// UsersPageResponse is the user management page model
type UsersPageResponse struct {
	Users []models.User     `json:"users"`
	Roles []models.UserRole `json:"roles"`
}

// UsersPageHandler returns the user table and the role choices for the add form
func UsersPageHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}
		_ = utils.WriteOK(w, UsersPageResponse{
			Users: ws.Users.List(),
			Roles: models.UserRoles(),
		})
	}
}

// ListUsersHandler lists the client's users
func ListUsersHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}
		_ = utils.WriteOK(w, ws.Users.List())
	}
}

// CreateUserHandler appends a user to the client's list
func CreateUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.NewUserInput
		if err := utils.DecodeJSON(r, &input); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}

		user, err := ws.Users.Add(input)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteCreated(w, user, "")
	}
}
