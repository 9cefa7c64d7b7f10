package entity

import "time"

// Tipos de notificación.
const (
	NotificationTypeSystem     = "system"
	NotificationTypeAutomation = "automation"
)

// Notification aviso dirigido a un usuario.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
