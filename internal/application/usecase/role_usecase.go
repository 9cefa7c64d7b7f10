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

// RoleUseCase administración de roles y asignación a usuarios.
type RoleUseCase struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
}

// NewRoleUseCase construye el caso de uso de roles.
func NewRoleUseCase(roleRepo repository.RoleRepository, userRepo repository.UserRepository) *RoleUseCase {
	return &RoleUseCase{roleRepo: roleRepo, userRepo: userRepo}
}

// Seed crea los roles semilla de forma idempotente. Se invoca al arrancar.
func (uc *RoleUseCase) Seed(ctx context.Context) error {
	roles := entity.SeedRoles()
	now := time.Now()
	for _, r := range roles {
		r.ID = uuid.New().String()
		r.CreatedAt = now
		r.UpdatedAt = now
	}
	return uc.roleRepo.Seed(ctx, roles)
}

// Create crea un rol. El nombre duplicado lo detecta el constraint único del
// repositorio (atómico), no una verificación previa: dos creadores concurrentes
// no pueden crear el mismo nombre.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if in.Permissions != nil && !in.Permissions.Validate() {
		return nil, domain.ErrInvalidInput
	}
	permissions := in.Permissions
	if permissions == nil {
		permissions = entity.PermissionMatrix{}
	}
	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        in.Name,
		DisplayName: in.DisplayName,
		Description: in.Description,
		Permissions: permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if role.DisplayName == "" {
		role.DisplayName = role.Name
	}
	if err := uc.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// Update actualiza un rol con semántica merge: los campos no enviados quedan intactos.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	if in.DisplayName != nil {
		role.DisplayName = *in.DisplayName
	}
	if in.Description != nil {
		role.Description = *in.Description
	}
	if in.Permissions != nil {
		if !in.Permissions.Validate() {
			return nil, domain.ErrInvalidInput
		}
		role.Permissions = *in.Permissions
	}
	role.UpdatedAt = time.Now()
	if err := uc.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// Delete elimina un rol. Falla con ErrProtectedRole para el rol "admin" sin
// importar cuántos usuarios lo tengan, y con ErrRoleHasUsers si cualquier
// usuario todavía lo referencia.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrRoleNotFound
	}
	if role.Name == entity.RoleAdmin {
		return domain.ErrProtectedRole
	}
	count, err := uc.userRepo.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrRoleHasUsers
	}
	return uc.roleRepo.Delete(ctx, id)
}

// GetByID devuelve un rol.
func (uc *RoleUseCase) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	return toRoleResponse(role), nil
}

// List devuelve todos los roles.
func (uc *RoleUseCase) List(ctx context.Context) ([]*dto.RoleResponse, error) {
	roles, err := uc.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	return out, nil
}

// Assign asigna un rol a un usuario. 404 si cualquiera de los dos no existe.
func (uc *RoleUseCase) Assign(ctx context.Context, in dto.AssignRoleRequest) error {
	user, err := uc.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	role, err := uc.roleRepo.GetByID(ctx, in.RoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrRoleNotFound
	}
	user.RoleID = role.ID
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Permissions: r.Permissions,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
