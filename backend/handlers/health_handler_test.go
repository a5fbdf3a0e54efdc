package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) (string, map[string]interface{}) {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	data := response["data"].(map[string]interface{})
	checks, _ := data["checks"].(map[string]interface{})
	return data["status"].(string), checks
}

func TestHandleHealth(t *testing.T) {
	handler := NewHealthHandler(nil, nil, zap.NewNop())

	w := httptest.NewRecorder()
	handler.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	status, _ := decodeHealth(t, w)
	assert.Equal(t, "healthy", status)
}

func TestHandleReadiness(t *testing.T) {
	logger := zap.NewNop()
	okPinger := pingerFunc(func(context.Context) error { return nil })

	t.Run("healthy without database", func(t *testing.T) {
		handler := NewHealthHandler(nil, okPinger, logger)

		w := httptest.NewRecorder()
		handler.HandleReadiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		status, checks := decodeHealth(t, w)
		assert.Equal(t, "healthy", status)
		assert.Equal(t, "healthy", checks["session_store"])
		assert.Equal(t, "not_configured", checks["database"])
	})

	t.Run("unhealthy when session store is down", func(t *testing.T) {
		handler := NewHealthHandler(nil, pingerFunc(func(context.Context) error {
			return errors.New("dial tcp: connection refused")
		}), logger)

		w := httptest.NewRecorder()
		handler.HandleReadiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		status, checks := decodeHealth(t, w)
		assert.Equal(t, "unhealthy", status)
		assert.Equal(t, "unhealthy", checks["session_store"])
	})

	t.Run("healthy with database", func(t *testing.T) {
		handler := NewHealthHandler(okPinger, okPinger, logger)

		w := httptest.NewRecorder()
		handler.HandleReadiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		_, checks := decodeHealth(t, w)
		assert.Equal(t, "healthy", checks["database"])
	})

	t.Run("unhealthy when database check fails", func(t *testing.T) {
		handler := NewHealthHandler(pingerFunc(func(context.Context) error {
			return errors.New("database query check failed")
		}), okPinger, logger)

		w := httptest.NewRecorder()
		handler.HandleReadiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		status, checks := decodeHealth(t, w)
		assert.Equal(t, "unhealthy", status)
		assert.Equal(t, "unhealthy", checks["database"])
		assert.Equal(t, "healthy", checks["session_store"])
	})

	t.Run("readiness honours request cancellation", func(t *testing.T) {
		handler := NewHealthHandler(nil, pingerFunc(func(ctx context.Context) error {
			return ctx.Err()
		}), logger)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w := httptest.NewRecorder()
		handler.HandleReadiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil).WithContext(ctx))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
