package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/domain"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

// UserUseCase administración de usuarios (rutas de admin).
type UserUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, roleRepo: roleRepo}
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, uc.toResponse(ctx, u))
	}
	return out, nil
}

// SetActive activa o desactiva la cuenta de un usuario.
func (uc *UserUseCase) SetActive(ctx context.Context, id string, active bool) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, user), nil
}

// Delete elimina un usuario de forma permanente (solo super-admin).
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(ctx, id)
}

func (uc *UserUseCase) toResponse(ctx context.Context, u *entity.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		RoleID:    u.RoleID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.RoleID != "" {
		if role, err := uc.roleRepo.GetByID(ctx, u.RoleID); err == nil && role != nil {
			resp.RoleName = role.Name
		}
	}
	return resp
}
