package entity

import "time"

// Prioridades de un seguimiento.
const (
	FollowupPriorityBaja  = "baja"
	FollowupPriorityMedia = "media"
	FollowupPriorityAlta  = "alta"
)

// Followup seguimiento agendado sobre un lead.
type Followup struct {
	ID           string
	LeadID       string
	UserID       string
	ScheduledAt  time.Time
	Notes        string
	Priority     string // baja, media, alta
	FollowupType string // llamada, email, reunion, ...
	Automated    bool   // true si lo creó el motor de automatización
	Completed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
