package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	QuotationStatusBorrador  = "borrador"
	QuotationStatusEnviada   = "enviada"
	QuotationStatusAceptada  = "aceptada"
	QuotationStatusRechazada = "rechazada"
)

// IsValidQuotationStatus indica si el estado es uno de los conocidos.
func IsValidQuotationStatus(status string) bool {
	switch status {
	case QuotationStatusBorrador, QuotationStatusEnviada,
		QuotationStatusAceptada, QuotationStatusRechazada:
		return true
	}
	return false
}

// Quotation cotización emitida a un cliente. Number es consecutivo por usuario
// y se asigna en una transacción al crear.
type Quotation struct {
	ID         string
	UserID     string
	ClientID   string
	Number     int
	Status     string
	Total      decimal.Decimal
	Notes      string
	ValidUntil *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
