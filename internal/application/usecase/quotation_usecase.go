package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/domain"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

// QuotationTxRunner ejecuta fn dentro de una transacción con un repositorio de
// cotizaciones atado a la tx. Lo implementa postgres.TxRunner; el consecutivo
// por usuario exige que NextNumber y el insert compartan transacción.
type QuotationTxRunner interface {
	RunQuotation(ctx context.Context, fn func(repo repository.QuotationRepository) error) error
}

// QuotationUseCase CRUD de cotizaciones con numeración consecutiva por usuario.
type QuotationUseCase struct {
	quotationRepo repository.QuotationRepository
	clientRepo    repository.ClientRepository
	txRunner      QuotationTxRunner
}

// NewQuotationUseCase construye el caso de uso de cotizaciones.
func NewQuotationUseCase(quotationRepo repository.QuotationRepository, clientRepo repository.ClientRepository, txRunner QuotationTxRunner) *QuotationUseCase {
	return &QuotationUseCase{quotationRepo: quotationRepo, clientRepo: clientRepo, txRunner: txRunner}
}

// Create crea una cotización en borrador. El número consecutivo se toma y se
// inserta en la misma transacción.
func (uc *QuotationUseCase) Create(ctx context.Context, userID string, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	quotation := &entity.Quotation{
		ID:         uuid.New().String(),
		UserID:     userID,
		ClientID:   in.ClientID,
		Status:     entity.QuotationStatusBorrador,
		Total:      in.Total,
		Notes:      in.Notes,
		ValidUntil: in.ValidUntil,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.RunQuotation(ctx, func(repo repository.QuotationRepository) error {
		number, err := repo.NextNumber(ctx, userID)
		if err != nil {
			return err
		}
		quotation.Number = number
		return repo.Create(ctx, quotation)
	})
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(quotation), nil
}

// GetByID devuelve una cotización.
func (uc *QuotationUseCase) GetByID(ctx context.Context, id string) (*dto.QuotationResponse, error) {
	quotation, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}
	return toQuotationResponse(quotation), nil
}

// UpdateStatus cambia el estado de una cotización.
func (uc *QuotationUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.QuotationResponse, error) {
	quotation, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}
	quotation.Status = status
	quotation.UpdatedAt = time.Now()
	if err := uc.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, err
	}
	return toQuotationResponse(quotation), nil
}

// Delete elimina una cotización.
func (uc *QuotationUseCase) Delete(ctx context.Context, id string) error {
	return uc.quotationRepo.Delete(ctx, id)
}

// ListByUser lista las cotizaciones del usuario con paginación.
func (uc *QuotationUseCase) ListByUser(ctx context.Context, userID string, page dto.PageRequest) ([]*dto.QuotationResponse, error) {
	page.DefaultPage()
	quotations, err := uc.quotationRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		out = append(out, toQuotationResponse(q))
	}
	return out, nil
}

// OwnerOf devuelve el dueño de la cotización (guardia de ownership del router).
func (uc *QuotationUseCase) OwnerOf(ctx context.Context, id string) (string, error) {
	quotation, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if quotation == nil {
		return "", domain.ErrNotFound
	}
	return quotation.UserID, nil
}

func toQuotationResponse(q *entity.Quotation) *dto.QuotationResponse {
	return &dto.QuotationResponse{
		ID:         q.ID,
		UserID:     q.UserID,
		ClientID:   q.ClientID,
		Number:     q.Number,
		Status:     q.Status,
		Total:      q.Total,
		Notes:      q.Notes,
		ValidUntil: q.ValidUntil,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}
