package handlers

import (
	"errors"
	"net/http"

	"github.com/mehtaruchit28/ips-ui/backend/services"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses. The response
// message is the notice shown to the user.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)
	if len(details) == 0 {
		details = nil
	}
	notice := services.GetNotice(err)

	var writeErr error
	switch {
	case services.IsNotFoundError(err):
		writeErr = utils.WriteNotFound(w, notice)

	case services.IsValidationError(err):
		writeErr = utils.WriteBadRequest(w, notice, details)

	case services.IsUnauthorizedError(err):
		writeErr = utils.WriteUnauthorized(w, notice)

	case services.IsForbiddenError(err):
		writeErr = utils.WriteForbidden(w, notice)

	case services.IsConflictError(err):
		writeErr = utils.WriteConflict(w, notice, details)

	case services.IsUnavailableError(err):
		logger.Warn("collaborator unavailable", zap.Error(err))
		writeErr = utils.WriteServiceUnavailable(w, notice)

	case services.IsInternalError(err):
		// Log internal errors; the notice is still user-facing text
		logger.Error("internal server error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, notice)

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		writeErr = utils.WriteInternalServerError(w, notice)
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}

	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		logger.Debug("handled service error",
			zap.String("type", string(domainErr.Type)),
			zap.String("message", domainErr.Message),
			zap.Any("details", domainErr.Details))
	}
}

// HandleValidationError handles errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{})
		for k, v := range fields {
			details[k] = v
		}
		if err := utils.WriteBadRequest(w, "Validation failed", details); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}
		return
	}

	if err := utils.WriteBadRequest(w, "Invalid request body", nil); err != nil {
		logger.Error("failed to write validation error response", zap.Error(err))
	}
}
