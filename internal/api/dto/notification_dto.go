package dto

import (
	"time"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// NotificationResponse representation.
type NotificationResponse struct {
	ID        string                  `json:"id"`
	Type      domain.NotificationType `json:"type"`
	Payload   map[string]any          `json:"payload,omitempty"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"created_at"`
}

// FromNotification converts the domain record.
func FromNotification(notification *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Payload:   notification.Payload,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
}

// PresenceResponse reports an actor's last activity.
type PresenceResponse struct {
	ActorID  string     `json:"actor_id"`
	Online   bool       `json:"online"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}
