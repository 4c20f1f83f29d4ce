package handlers

import (
	"net/http"
	"strconv"

	"github.com/emilyand-i/AgileWebGroup82/internal/middleware"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the account resolved by the auth middleware,
// or 0 on routes outside it.
func getUserIDFromContext(c echo.Context) uint {
	id, ok := c.Get(middleware.AccountIDKey).(uint)
	if !ok {
		return 0
	}
	return id
}

func requireUserID(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, apperrors.New(apperrors.KindUnauthenticated, "user not authenticated")
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Wrap(err, apperrors.KindValidation, "invalid request payload")
	}
	return c.Validate(req)
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Newf(apperrors.KindValidation, "invalid %s", name)
	}
	return uint(id), nil
}

// queryUint parses an optional unsigned query parameter, 0 when absent.
func queryUint(c echo.Context, name string) (uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.Newf(apperrors.KindValidation, "invalid %s", name)
	}
	return uint(v), nil
}

// queryInt parses an optional integer query parameter, 0 when absent.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Newf(apperrors.KindValidation, "invalid %s", name)
	}
	return v, nil
}

func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"data":    data,
	})
}

func ok(c echo.Context, data interface{}) error {
	return success(c, http.StatusOK, data)
}
