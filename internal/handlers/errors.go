package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
	"github.com/labstack/echo/v4"
)

var statusByKind = map[apperrors.Kind]int{
	apperrors.KindNotFound:         http.StatusNotFound,
	apperrors.KindAlreadyExists:    http.StatusConflict,
	apperrors.KindSelfReference:    http.StatusBadRequest,
	apperrors.KindPolicyDenied:     http.StatusForbidden,
	apperrors.KindNotOwner:         http.StatusForbidden,
	apperrors.KindForbidden:        http.StatusForbidden,
	apperrors.KindInvalidReference: http.StatusUnprocessableEntity,
	apperrors.KindUnauthenticated:  http.StatusUnauthorized,
	apperrors.KindValidation:       http.StatusBadRequest,
	apperrors.KindInternal:         http.StatusInternalServerError,
}

// StatusForKind maps an error kind to its HTTP status code.
func StatusForKind(kind apperrors.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HTTPErrorHandler writes every failure as
// {"success": false, "error": {"kind": ..., "message": ...}}.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	kind, message, status := classify(err)

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			"error", err,
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		message = "internal server error"
	}

	body := echo.Map{
		"success": false,
		"error": echo.Map{
			"kind":    kind,
			"message": message,
		},
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", "error", writeErr)
	}
}

// classify extracts a kind, client-facing message and status from err.
// Errors raised by echo itself keep their status and get the closest kind.
func classify(err error) (apperrors.Kind, string, int) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, appErr.Message, StatusForKind(appErr.Kind)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		switch {
		case he.Code == http.StatusNotFound:
			return apperrors.KindNotFound, message, he.Code
		case he.Code == http.StatusUnauthorized:
			return apperrors.KindUnauthenticated, message, he.Code
		case he.Code == http.StatusForbidden:
			return apperrors.KindForbidden, message, he.Code
		case he.Code < http.StatusInternalServerError:
			return apperrors.KindValidation, message, he.Code
		}
	}
	return apperrors.KindInternal, "internal server error", http.StatusInternalServerError
}
