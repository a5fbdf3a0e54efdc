package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mehtaruchit28/ips-ui/backend/app"
	"github.com/mehtaruchit28/ips-ui/backend/config"
	"github.com/mehtaruchit28/ips-ui/backend/middleware"
	"github.com/mehtaruchit28/ips-ui/backend/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testClientID = "6f1c2d3e-0000-4000-8000-000000000001"

type response struct {
	Data    json.RawMessage        `json:"data"`
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}

func newTestDeps(t *testing.T) *app.Dependencies {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		Session: config.SessionConfig{
			Store:        config.StoreMemory,
			ClientCookie: "ips_client",
			TokenSecret:  "test-secret",
		},
		Permissions:    config.PermissionsConfig{Store: config.StoreMemory},
		Auth:           config.AuthConfig{Email: "admin@admin.com", Password: "password"},
		PasswordChange: config.PasswordChangeConfig{Latency: time.Millisecond},
		Observability:  config.ObservabilityConfig{LogLevel: "info", LogFormat: "json"},
	}
	deps, err := app.NewDependencies(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close(context.Background()) })
	return deps
}

func jsonBody(t *testing.T, body interface{}) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	return &buf
}

// clientRequest builds a request that already went through the client middleware
func clientRequest(t *testing.T, deps *app.Dependencies, method, target string, body interface{}) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, jsonBody(t, body))
	ctx := middleware.WithClientID(req.Context(), testClientID)
	ctx = middleware.WithClientStore(ctx, storage.Namespace(deps.SessionStore, testClientID))
	return req.WithContext(ctx)
}

func withRoleParam(req *http.Request, role string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("role", role)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
