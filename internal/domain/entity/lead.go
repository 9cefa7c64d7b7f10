package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un lead.
const (
	LeadStatusNuevo      = "nuevo"
	LeadStatusContactado = "contactado"
	LeadStatusCalificado = "calificado"
	LeadStatusPropuesta  = "propuesta"
	LeadStatusGanado     = "ganado"
	LeadStatusPerdido    = "perdido"
)

// IsValidLeadStatus indica si el estado pertenece al ciclo de vida conocido.
func IsValidLeadStatus(status string) bool {
	switch status {
	case LeadStatusNuevo, LeadStatusContactado, LeadStatusCalificado,
		LeadStatusPropuesta, LeadStatusGanado, LeadStatusPerdido:
		return true
	}
	return false
}

// Lead oportunidad de venta asignada a un usuario.
type Lead struct {
	ID             string
	UserID         string // dueño del lead
	Name           string
	Email          string
	Phone          string
	Company        string
	Source         string // web, referido, llamada, ...
	Status         string
	Notes          string
	EstimatedValue decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
