package entity

import "time"

// Eventos que disparan una regla de automatización.
const (
	TriggerNewLead      = "new_lead"
	TriggerStatusChange = "status_change"
	TriggerTimeBased    = "time_based"
)

// Tipos de acción que el motor sabe ejecutar. Cualquier otro tipo se ignora
// en silencio al ejecutar.
const (
	ActionCreateFollowup   = "create_followup"
	ActionChangeStatus     = "change_status"
	ActionSendNotification = "send_notification"
)

// RuleConditions predicados opcionales del filtro de leads.
type RuleConditions struct {
	// Status igualdad exacta contra el estado del lead; vacío no filtra.
	Status string `json:"status,omitempty"`
	// DaysSince umbral "sin actualizar hace N días"; 0 o ausente no filtra.
	DaysSince int `json:"days_since,omitempty"`
}

// RuleAction una acción configurada. Los campos usados dependen de Type.
type RuleAction struct {
	Type string `json:"type"`
	// change_status
	NewStatus string `json:"new_status,omitempty"`
	// create_followup
	DelayDays    int    `json:"delay_days,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Priority     string `json:"priority,omitempty"`
	FollowupType string `json:"followup_type,omitempty"`
	// send_notification
	Message string `json:"message,omitempty"`
}

// ActionResult rastro de auditoría de una acción ejecutada sobre un lead.
// Se emite exactamente una entrada por par (lead, acción) aplicada.
type ActionResult struct {
	Action     string `json:"action"`
	LeadID     string `json:"lead_id"`
	FollowupID string `json:"followup_id,omitempty"`
	NewStatus  string `json:"new_status,omitempty"`
	Message    string `json:"message,omitempty"`
}

// AutomationRule regla compuesta única por usuario: se reemplaza entera en cada
// configuración, sin historial ni identificadores por regla.
type AutomationRule struct {
	UserID     string         `json:"user_id"`
	Triggers   []string       `json:"triggers"`
	Conditions RuleConditions `json:"conditions"`
	Actions    []RuleAction   `json:"actions"`
	Active     bool           `json:"active"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
