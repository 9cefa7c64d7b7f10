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

// FollowupUseCase seguimientos manuales sobre leads. Los automáticos los crea
// el motor de automatización con Automated=true.
type FollowupUseCase struct {
	followupRepo repository.FollowupRepository
	leadRepo     repository.LeadRepository
}

// NewFollowupUseCase construye el caso de uso de seguimientos.
func NewFollowupUseCase(followupRepo repository.FollowupRepository, leadRepo repository.LeadRepository) *FollowupUseCase {
	return &FollowupUseCase{followupRepo: followupRepo, leadRepo: leadRepo}
}

// Create agenda un seguimiento manual sobre un lead del usuario.
func (uc *FollowupUseCase) Create(ctx context.Context, userID string, in dto.CreateFollowupRequest) (*dto.FollowupResponse, error) {
	lead, err := uc.leadRepo.GetByID(ctx, in.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if lead.UserID != userID {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	priority := in.Priority
	if priority == "" {
		priority = entity.FollowupPriorityMedia
	}
	followup := &entity.Followup{
		ID:           uuid.New().String(),
		LeadID:       in.LeadID,
		UserID:       userID,
		ScheduledAt:  in.ScheduledAt,
		Notes:        in.Notes,
		Priority:     priority,
		FollowupType: in.FollowupType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.followupRepo.Create(ctx, followup); err != nil {
		return nil, err
	}
	return toFollowupResponse(followup), nil
}

// Complete marca un seguimiento como realizado.
func (uc *FollowupUseCase) Complete(ctx context.Context, id string) (*dto.FollowupResponse, error) {
	followup, err := uc.followupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if followup == nil {
		return nil, domain.ErrNotFound
	}
	followup.Completed = true
	followup.UpdatedAt = time.Now()
	if err := uc.followupRepo.Update(ctx, followup); err != nil {
		return nil, err
	}
	return toFollowupResponse(followup), nil
}

// Delete elimina un seguimiento.
func (uc *FollowupUseCase) Delete(ctx context.Context, id string) error {
	return uc.followupRepo.Delete(ctx, id)
}

// ListByUser lista los seguimientos del usuario con paginación.
func (uc *FollowupUseCase) ListByUser(ctx context.Context, userID string, page dto.PageRequest) ([]*dto.FollowupResponse, error) {
	page.DefaultPage()
	followups, err := uc.followupRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FollowupResponse, 0, len(followups))
	for _, f := range followups {
		out = append(out, toFollowupResponse(f))
	}
	return out, nil
}

// ListByLead lista los seguimientos de un lead.
func (uc *FollowupUseCase) ListByLead(ctx context.Context, leadID string) ([]*dto.FollowupResponse, error) {
	followups, err := uc.followupRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FollowupResponse, 0, len(followups))
	for _, f := range followups {
		out = append(out, toFollowupResponse(f))
	}
	return out, nil
}

// OwnerOf devuelve el dueño del seguimiento (guardia de ownership del router).
func (uc *FollowupUseCase) OwnerOf(ctx context.Context, id string) (string, error) {
	followup, err := uc.followupRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if followup == nil {
		return "", domain.ErrNotFound
	}
	return followup.UserID, nil
}

func toFollowupResponse(f *entity.Followup) *dto.FollowupResponse {
	return &dto.FollowupResponse{
		ID:           f.ID,
		LeadID:       f.LeadID,
		UserID:       f.UserID,
		ScheduledAt:  f.ScheduledAt,
		Notes:        f.Notes,
		Priority:     f.Priority,
		FollowupType: f.FollowupType,
		Automated:    f.Automated,
		Completed:    f.Completed,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}
