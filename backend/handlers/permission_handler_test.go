package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mehtaruchit28/ips-ui/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePermissions(t *testing.T, w *httptest.ResponseRecorder) PermissionsResponse {
	t.Helper()
	var view PermissionsResponse
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &view))
	return view
}

func TestGetPermissionsHandler(t *testing.T) {
	deps := newTestDeps(t)
	w := httptest.NewRecorder()

	GetPermissionsHandler(deps)(w, clientRequest(t, deps, http.MethodGet, "/api/permissions", nil))

	require.Equal(t, http.StatusOK, w.Code)
	view := decodePermissions(t, w)
	require.Len(t, view.Roles, 3)
	assert.Equal(t, "Admin", view.ActiveRole)
	assert.Equal(t, models.ReportCatalog(), view.ActiveReports)
	assert.Equal(t, 12, view.SelectedCount)
	assert.Equal(t, 12, view.TotalReports)
	assert.Len(t, view.Catalog, 12)
}

func TestCreateRoleHandler(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		wantStatus  int
		wantMessage string
	}{
		{"new role", "Auditor", http.StatusCreated, `Role "Auditor" created successfully`},
		{"blank name", "  ", http.StatusBadRequest, "Please enter a role name"},
		{"builtin name", "Member", http.StatusConflict, "Role already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t)
			w := httptest.NewRecorder()

			CreateRoleHandler(deps)(w, clientRequest(t, deps, http.MethodPost, "/api/permissions/roles",
				CreateRoleRequest{Name: tt.role}))

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMessage, decodeResponse(t, w).Message)
		})
	}
}

func TestCreateRoleHandler_ActivatesEmptyRole(t *testing.T) {
	deps := newTestDeps(t)
	w := httptest.NewRecorder()

	CreateRoleHandler(deps)(w, clientRequest(t, deps, http.MethodPost, "/api/permissions/roles",
		CreateRoleRequest{Name: "Auditor"}))

	view := decodePermissions(t, w)
	assert.Equal(t, "Auditor", view.ActiveRole)
	assert.Empty(t, view.ActiveReports)
	assert.Equal(t, 0, view.SelectedCount)
	assert.Equal(t, "Auditor", view.Roles[len(view.Roles)-1].Name)
}

func TestDeleteRoleHandler(t *testing.T) {
	deps := newTestDeps(t)
	for _, name := range []string{"Field Ops/East", "Ops%41"} {
		CreateRoleHandler(deps)(httptest.NewRecorder(), clientRequest(t, deps, http.MethodPost,
			"/api/permissions/roles", CreateRoleRequest{Name: name}))
	}

	t.Run("escaped custom role", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := withRoleParam(clientRequest(t, deps, http.MethodDelete,
			"/api/permissions/roles/Field%20Ops%2FEast", nil), "Field%20Ops%2FEast")
		DeleteRoleHandler(deps)(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `Role "Field Ops/East" deleted successfully`, decodeResponse(t, w).Message)
	})

	t.Run("already decoded role containing a percent sign", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := withRoleParam(clientRequest(t, deps, http.MethodDelete,
			"/api/permissions/roles/Ops%2541", nil), "Ops%41")
		DeleteRoleHandler(deps)(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `Role "Ops%41" deleted successfully`, decodeResponse(t, w).Message)
	})

	t.Run("builtin role", func(t *testing.T) {
		w := httptest.NewRecorder()
		DeleteRoleHandler(deps)(w, withRoleParam(clientRequest(t, deps, http.MethodDelete, "/", nil), "Manager"))

		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Cannot delete default roles", decodeResponse(t, w).Message)
	})

	t.Run("missing role", func(t *testing.T) {
		w := httptest.NewRecorder()
		DeleteRoleHandler(deps)(w, withRoleParam(clientRequest(t, deps, http.MethodDelete, "/", nil), "Nobody"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestToggleReportHandler(t *testing.T) {
	deps := newTestDeps(t)

	toggle := func(role, report string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := withRoleParam(clientRequest(t, deps, http.MethodPost, "/",
			ToggleReportRequest{Report: report}), role)
		ToggleReportHandler(deps)(w, req)
		return w
	}

	w := toggle("Member", string(models.ReportSales))
	require.Equal(t, http.StatusOK, w.Code)
	reports, _ := deps.Workspaces.Get(context.Background(), testClientID).Permissions.Reports("Member")
	assert.Equal(t, []models.Report{models.ReportCustomerInsights, models.ReportStateCountyMap}, reports)

	w = toggle("Member", string(models.ReportSales))
	require.Equal(t, http.StatusOK, w.Code)
	reports, _ = deps.Workspaces.Get(context.Background(), testClientID).Permissions.Reports("Member")
	assert.Contains(t, reports, models.ReportSales)

	assert.Equal(t, http.StatusBadRequest, toggle("Member", "Weather Report").Code)
	assert.Equal(t, http.StatusBadRequest, toggle("Member", "").Code)
	assert.Equal(t, http.StatusNotFound, toggle("Nobody", string(models.ReportSales)).Code)
}

func TestSelectAndDeselectAllHandlers(t *testing.T) {
	deps := newTestDeps(t)

	w := httptest.NewRecorder()
	DeselectAllHandler(deps)(w, withRoleParam(clientRequest(t, deps, http.MethodPost, "/", nil), "Admin"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodePermissions(t, w).SelectedCount)

	w = httptest.NewRecorder()
	SelectAllHandler(deps)(w, withRoleParam(clientRequest(t, deps, http.MethodPost, "/", nil), "Admin"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 12, decodePermissions(t, w).SelectedCount)
}

func TestSelectRoleHandler(t *testing.T) {
	deps := newTestDeps(t)

	w := httptest.NewRecorder()
	SelectRoleHandler(deps)(w, clientRequest(t, deps, http.MethodPut, "/api/permissions/active",
		SelectRoleRequest{Role: "Manager"}))
	require.Equal(t, http.StatusOK, w.Code)
	view := decodePermissions(t, w)
	assert.Equal(t, "Manager", view.ActiveRole)
	assert.Equal(t, 6, view.SelectedCount)

	w = httptest.NewRecorder()
	SelectRoleHandler(deps)(w, clientRequest(t, deps, http.MethodPut, "/api/permissions/active",
		SelectRoleRequest{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type failingRepository struct{}

func (failingRepository) Get(ctx context.Context) ([]models.RolePermissions, error) {
	return nil, errors.New("db down")
}

func (failingRepository) Put(ctx context.Context, mapping []models.RolePermissions) error {
	return errors.New("db down")
}

func TestSavePermissionsHandler(t *testing.T) {
	t.Run("saved", func(t *testing.T) {
		deps := newTestDeps(t)
		w := httptest.NewRecorder()
		SavePermissionsHandler(deps)(w, clientRequest(t, deps, http.MethodPost, "/api/permissions/save", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Permissions saved successfully", decodeResponse(t, w).Message)

		saved, err := deps.Permissions.Get(context.Background())
		require.NoError(t, err)
		assert.Len(t, saved, 3)
	})

	t.Run("repository failure", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.Permissions = failingRepository{}
		w := httptest.NewRecorder()
		SavePermissionsHandler(deps)(w, clientRequest(t, deps, http.MethodPost, "/api/permissions/save", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to save permissions", decodeResponse(t, w).Message)
	})
}
