package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lendit-backend/internal/domain/notification"
)

// NotificationHandler serves the per-user notification feed. It sits
// directly on the repository: the feed has no business rules beyond "your
// own rows only", which the queries already enforce.
type NotificationHandler struct{ repo notification.Repository }

func NewNotificationHandler(repo notification.Repository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	unreadOnly := c.QueryParam("unread") == "true"
	list, err := h.repo.ListByUserID(c.Request().Context(), actor.ID, unreadOnly)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	if err := h.repo.MarkRead(c.Request().Context(), c.Param("notification_id"), actor.ID); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
