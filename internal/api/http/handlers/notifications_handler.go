package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/girmesh03/Task-Manager-V19/internal/api/dto"
	"github.com/girmesh03/Task-Manager-V19/internal/auth"
	"github.com/girmesh03/Task-Manager-V19/internal/presence"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/internal/service"
	apperrors "github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// presenceWindow is how recently an actor must have been active to count as
// online.
const presenceWindow = 5 * time.Minute

// NotificationsHandler serves the per-recipient inbox plus presence lookups.
type NotificationsHandler struct {
	service *service.NotificationService
	tracker *presence.Tracker
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService, tracker *presence.Tracker) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService, tracker: tracker}
}

// List GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := page(c)
	unreadOnly, _ := strconv.ParseBool(c.Query("unread_only", "false"))
	notifications, err := h.service.ListMine(c.UserContext(), actor, repository.NotificationFilter{
		UnreadOnly: unreadOnly,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.FromNotification(&notifications[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UnreadCount GET /notifications/unread-count.
func (h *NotificationsHandler) UnreadCount(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	count, err := h.service.UnreadCount(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"unread": count}})
}

// MarkRead PATCH /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.MarkRead(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"read": true}})
}

// MarkAllRead PATCH /notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.MarkAllRead(c.UserContext(), actor); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"read": true}})
}

// Heartbeat POST /presence/heartbeat. The presence middleware already touches
// on every request; this exists for idle clients that only poll.
func (h *NotificationsHandler) Heartbeat(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	h.tracker.Touch(actor.ActorID)
	return c.JSON(fiber.Map{"data": fiber.Map{"online": true}})
}

// Presence GET /presence/:id.
func (h *NotificationsHandler) Presence(c *fiber.Ctx) error {
	if _, ok := auth.ActorFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	actorID := c.Params("id")
	response := dto.PresenceResponse{ActorID: actorID}
	if at, ok := h.tracker.LastSeen(actorID); ok {
		response.LastSeen = &at
		response.Online = h.tracker.Online(actorID, presenceWindow)
	}
	return c.JSON(fiber.Map{"data": response})
}
