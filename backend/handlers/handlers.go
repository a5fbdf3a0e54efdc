package handlers

import (
	"net/http"

	"github.com/mehtaruchit28/ips-ui/backend/app"
	"github.com/mehtaruchit28/ips-ui/backend/middleware"
	"github.com/mehtaruchit28/ips-ui/backend/services/workspace"
	"github.com/mehtaruchit28/ips-ui/backend/storage"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
	"go.uber.org/zap"
)

// clientStore returns the request's client storage, writing a 500 when the
// client middleware did not run.
func clientStore(deps *app.Dependencies, w http.ResponseWriter, r *http.Request) (storage.KeyValueStore, bool) {
	store := middleware.GetClientStoreFromContext(r.Context())
	if store == nil {
		deps.Logger.Error("client store missing from context",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())))
		_ = utils.WriteInternalServerError(w, "")
		return nil, false
	}
	return store, true
}

// clientWorkspace returns the page state of the requesting client
func clientWorkspace(deps *app.Dependencies, w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	clientID := middleware.GetClientIDFromContext(r.Context())
	if clientID == "" {
		deps.Logger.Error("client id missing from context",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())))
		_ = utils.WriteInternalServerError(w, "")
		return nil, false
	}
	return deps.Workspaces.Get(r.Context(), clientID), true
}

// writeSeeOther redirects with 303 and still sends a JSON body for API clients
func writeSeeOther(w http.ResponseWriter, location string, data interface{}, message string) error {
	w.Header().Set("Location", location)
	return utils.WriteJSON(w, http.StatusSeeOther, utils.SuccessResponse{Data: data, Message: message})
}
