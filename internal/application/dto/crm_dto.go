package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLeadRequest entrada para crear un lead.
type CreateLeadRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Phone          string          `json:"phone" validate:"omitempty,max=50"`
	Company        string          `json:"company" validate:"omitempty,max=200"`
	Source         string          `json:"source" validate:"omitempty,max=100"`
	Status         string          `json:"status" validate:"omitempty,oneof=nuevo contactado calificado propuesta ganado perdido"`
	Notes          string          `json:"notes"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
}

// UpdateLeadRequest entrada para actualizar un lead (merge: nil no toca el campo).
type UpdateLeadRequest struct {
	Name           *string          `json:"name"`
	Email          *string          `json:"email"`
	Phone          *string          `json:"phone"`
	Company        *string          `json:"company"`
	Source         *string          `json:"source"`
	Status         *string          `json:"status"`
	Notes          *string          `json:"notes"`
	EstimatedValue *decimal.Decimal `json:"estimated_value"`
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Company        string          `json:"company,omitempty"`
	Source         string          `json:"source,omitempty"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Notes   string `json:"notes"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateQuotationRequest entrada para crear una cotización. El número
// consecutivo lo asigna el sistema.
type CreateQuotationRequest struct {
	ClientID   string          `json:"client_id" validate:"required"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes"`
	ValidUntil *time.Time      `json:"valid_until"`
}

// UpdateQuotationStatusRequest cambio de estado de una cotización.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=borrador enviada aceptada rechazada"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	ClientID   string          `json:"client_id"`
	Number     int             `json:"number"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes,omitempty"`
	ValidUntil *time.Time      `json:"valid_until,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateFollowupRequest entrada para agendar un seguimiento manual.
type CreateFollowupRequest struct {
	LeadID       string    `json:"lead_id" validate:"required"`
	ScheduledAt  time.Time `json:"scheduled_at" validate:"required"`
	Notes        string    `json:"notes"`
	Priority     string    `json:"priority" validate:"omitempty,oneof=baja media alta"`
	FollowupType string    `json:"followup_type" validate:"omitempty,max=100"`
}

// FollowupResponse salida de un seguimiento.
type FollowupResponse struct {
	ID           string    `json:"id"`
	LeadID       string    `json:"lead_id"`
	UserID       string    `json:"user_id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Notes        string    `json:"notes,omitempty"`
	Priority     string    `json:"priority"`
	FollowupType string    `json:"followup_type,omitempty"`
	Automated    bool      `json:"automated"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
