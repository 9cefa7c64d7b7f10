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

// LeadUseCase CRUD de leads, siempre acotado al usuario dueño.
type LeadUseCase struct {
	leadRepo repository.LeadRepository
}

// NewLeadUseCase construye el caso de uso de leads.
func NewLeadUseCase(leadRepo repository.LeadRepository) *LeadUseCase {
	return &LeadUseCase{leadRepo: leadRepo}
}

// Create crea un lead para el usuario. Estado por defecto: nuevo.
func (uc *LeadUseCase) Create(ctx context.Context, userID string, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	now := time.Now()
	status := in.Status
	if status == "" {
		status = entity.LeadStatusNuevo
	}
	lead := &entity.Lead{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Company:        in.Company,
		Source:         in.Source,
		Status:         status,
		Notes:          in.Notes,
		EstimatedValue: in.EstimatedValue,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return toLeadResponse(lead), nil
}

// GetByID devuelve un lead.
func (uc *LeadUseCase) GetByID(ctx context.Context, id string) (*dto.LeadResponse, error) {
	lead, err := uc.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	return toLeadResponse(lead), nil
}

// Update actualiza un lead con semántica merge.
func (uc *LeadUseCase) Update(ctx context.Context, id string, in dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	lead, err := uc.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		lead.Name = *in.Name
	}
	if in.Email != nil {
		lead.Email = *in.Email
	}
	if in.Phone != nil {
		lead.Phone = *in.Phone
	}
	if in.Company != nil {
		lead.Company = *in.Company
	}
	if in.Source != nil {
		lead.Source = *in.Source
	}
	if in.Status != nil {
		lead.Status = *in.Status
	}
	if in.Notes != nil {
		lead.Notes = *in.Notes
	}
	if in.EstimatedValue != nil {
		lead.EstimatedValue = *in.EstimatedValue
	}
	lead.UpdatedAt = time.Now()
	if err := uc.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return toLeadResponse(lead), nil
}

// Delete elimina un lead.
func (uc *LeadUseCase) Delete(ctx context.Context, id string) error {
	return uc.leadRepo.Delete(ctx, id)
}

// ListByUser lista los leads del usuario con paginación.
func (uc *LeadUseCase) ListByUser(ctx context.Context, userID string, page dto.PageRequest) ([]*dto.LeadResponse, error) {
	page.DefaultPage()
	leads, err := uc.leadRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadResponse(l))
	}
	return out, nil
}

// OwnerOf devuelve el dueño del lead (guardia de ownership del router).
func (uc *LeadUseCase) OwnerOf(ctx context.Context, id string) (string, error) {
	lead, err := uc.leadRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if lead == nil {
		return "", domain.ErrNotFound
	}
	return lead.UserID, nil
}

func toLeadResponse(l *entity.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		ID:             l.ID,
		UserID:         l.UserID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		Company:        l.Company,
		Source:         l.Source,
		Status:         l.Status,
		Notes:          l.Notes,
		EstimatedValue: l.EstimatedValue,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
