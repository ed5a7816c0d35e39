package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inkwell/internal/application"
	"inkwell/pkg/response"
	"inkwell/pkg/validation"
)

// writeServiceError translates the application failure taxonomy to HTTP.
// Unrecognized errors are logged in full and returned as an opaque 500;
// detail leaks only outside production.
func writeServiceError(c *gin.Context, logger *logrus.Logger, prod bool, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusBadRequest, "Invalid credentials", nil)
	case errors.Is(err, application.ErrDuplicateIdentity):
		response.Error(c, http.StatusBadRequest, "User already exists", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, "User not authorized", nil)
	case errors.Is(err, application.ErrInvalidOperation),
		errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		logger.WithError(err).Error("request failed")
		var detail interface{}
		if !prod {
			detail = err.Error()
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", detail)
	}
}

// writeBindError reports a malformed or invalid request body, with per-field
// details when the failure came from struct validation.
func writeBindError(c *gin.Context, err error) {
	if details := validation.ToDetails(err); len(details) > 0 {
		response.Error(c, http.StatusBadRequest, "validation failed", details)
		return
	}
	response.Error(c, http.StatusBadRequest, "invalid request body", nil)
}
