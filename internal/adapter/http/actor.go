package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	domain "lendit-backend/internal/domain/agreement"
	"lendit-backend/internal/domain/transaction"
	"lendit-backend/internal/usecase/agreement"
)

// actorFrom builds the calling identity from the Ax-User-* headers set by
// the gateway's session layer. Ax-User-Id is mandatory and must be the
// 32-char hex account id; name and email ride along for display.
func actorFrom(c echo.Context) (agreement.Actor, error) {
	id := strings.TrimSpace(c.Request().Header.Get("Ax-User-Id"))
	if id == "" {
		return agreement.Actor{}, errors.New("missing Ax-User-Id")
	}
	if !reHex32.MatchString(id) {
		return agreement.Actor{}, errors.New("invalid Ax-User-Id")
	}
	return agreement.Actor{
		ID:    id,
		Name:  strings.TrimSpace(c.Request().Header.Get("Ax-User-Name")),
		Email: strings.TrimSpace(c.Request().Header.Get("Ax-User-Email")),
	}, nil
}

// domainError maps the usecase sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with no internals leaked.
func domainError(c echo.Context, err error) error {
	switch {
	case domain.IsValidation(err):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, transaction.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "not a party to this agreement"})
	}
	c.Logger().Errorf("unhandled error: %v", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
