package repository

import (
	"context"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// QuotationRepository puerto de persistencia para Quotation.
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	Update(ctx context.Context, quotation *entity.Quotation) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Quotation, error)
	// NextNumber consecutivo por usuario; debe consultarse dentro de la misma
	// transacción que el insert (ver TxRunner).
	NextNumber(ctx context.Context, userID string) (int, error)
}
