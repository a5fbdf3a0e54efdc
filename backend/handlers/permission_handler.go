package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/mehtaruchit28/ips-ui/backend/app"
	"github.com/mehtaruchit28/ips-ui/backend/models"
	"github.com/mehtaruchit28/ips-ui/backend/services/permissions"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
)

// PermissionsResponse is the role permissions page model
type PermissionsResponse struct {
	Roles         []models.RolePermissions `json:"roles"`
	ActiveRole    string                   `json:"active_role"`
	ActiveReports []models.Report          `json:"active_reports"`
	Catalog       []models.Report          `json:"catalog"`
	SelectedCount int                      `json:"selected_count"`
	TotalReports  int                      `json:"total_reports"`
}

// SelectRoleRequest changes the role being edited
type SelectRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// CreateRoleRequest adds a role
type CreateRoleRequest struct {
	Name string `json:"name"`
}

// ToggleReportRequest flips one report for a role
type ToggleReportRequest struct {
	Report string `json:"report" validate:"required"`
}

func permissionsView(store *permissions.Store) PermissionsResponse {
	roles := store.Roles()
	active := store.ActiveRole()
	activeReports := []models.Report{}
	for _, rp := range roles {
		if rp.Name == active {
			activeReports = rp.Reports
			break
		}
	}
	return PermissionsResponse{
		Roles:         roles,
		ActiveRole:    active,
		ActiveReports: activeReports,
		Catalog:       models.ReportCatalog(),
		SelectedCount: len(activeReports),
		TotalReports:  models.ReportCount(),
	}
}

// roleParam returns the decoded {role} URL parameter. chi routes on
// RawPath when the path carries escapes such as %2F, and the parameter is
// still escaped in that case only.
func roleParam(r *http.Request) string {
	raw := chi.URLParam(r, "role")
	if r.URL.RawPath == "" {
		return raw
	}
	if role, err := url.PathUnescape(raw); err == nil {
		return role
	}
	return raw
}

// GetPermissionsHandler returns the current mapping and active role
func GetPermissionsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}
		_ = utils.WriteOK(w, permissionsView(ws.Permissions))
	}
}

// SelectRoleHandler sets the active role
func SelectRoleHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRoleRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}
		if err := utils.ValidateStruct(&req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}
		ws.Permissions.SelectRole(req.Role)
		_ = utils.WriteOK(w, permissionsView(ws.Permissions))
	}
}

// CreateRoleHandler adds a role with no reports and makes it active
func CreateRoleHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRoleRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}
		if err := ws.Permissions.CreateRole(req.Name); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteCreated(w, permissionsView(ws.Permissions),
			fmt.Sprintf("Role %q created successfully", req.Name))
	}
}

// DeleteRoleHandler removes a custom role
func DeleteRoleHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := roleParam(r)

		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}
		if err := ws.Permissions.DeleteRole(role); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteNotice(w, permissionsView(ws.Permissions),
			fmt.Sprintf("Role %q deleted successfully", role))
	}
}

// ToggleReportHandler flips one report for the role
func ToggleReportHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ToggleReportRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}
		if err := utils.ValidateStruct(&req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}
		if err := ws.Permissions.ToggleReport(roleParam(r), models.Report(req.Report)); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, permissionsView(ws.Permissions))
	}
}

// SelectAllHandler grants every report to the role
func SelectAllHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}
		if err := ws.Permissions.SelectAll(roleParam(r)); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, permissionsView(ws.Permissions))
	}
}

// DeselectAllHandler clears the role's reports
func DeselectAllHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}
		if err := ws.Permissions.DeselectAll(roleParam(r)); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, permissionsView(ws.Permissions))
	}
}

// SavePermissionsHandler hands the mapping to the permission repository
func SavePermissionsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := clientWorkspace(deps, w, r)
		if !ok {
			return
		}
		if err := ws.Permissions.Save(r.Context(), deps.Permissions); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteNotice(w, permissionsView(ws.Permissions), "Permissions saved successfully")
	}
}
