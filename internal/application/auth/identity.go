package auth

import (
	"context"

	"github.com/tu-usuario/crm-pro/internal/domain"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

// IdentityService resuelve la identidad canónica de un request para el
// middleware de auth: usuario vivo por ID (ruta bearer) o por API key (ruta
// alternativa), más el rol vivo. Ambos caminos producen el mismo par
// (usuario, rol) para todo lo que viene después.
type IdentityService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	keyRepo  repository.ApiKeyRepository
}

// NewIdentityService construye el servicio de identidad.
func NewIdentityService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, keyRepo repository.ApiKeyRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo, roleRepo: roleRepo, keyRepo: keyRepo}
}

// UserByID devuelve el usuario vivo; (nil, nil) si no existe.
func (s *IdentityService) UserByID(ctx context.Context, id string) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UserByAPIKey mapea una key estática a su dueño. Key inexistente o inactiva
// es ErrApiKeyInvalid. Marca el último uso de la key (best-effort).
func (s *IdentityService) UserByAPIKey(ctx context.Context, key string) (*entity.User, *entity.ApiKey, error) {
	apiKey, err := s.keyRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	if apiKey == nil || !apiKey.IsActive {
		return nil, nil, domain.ErrApiKeyInvalid
	}
	user, err := s.userRepo.GetByID(ctx, apiKey.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrApiKeyInvalid
	}
	_ = s.keyRepo.TouchLastUsed(ctx, apiKey.ID)
	return user, apiKey, nil
}

// RoleByID devuelve el rol vivo; (nil, nil) si no existe. El middleware lo
// consulta en cada request: la matriz de permisos nunca viene del token.
func (s *IdentityService) RoleByID(ctx context.Context, id string) (*entity.Role, error) {
	if id == "" {
		return nil, nil
	}
	return s.roleRepo.GetByID(ctx, id)
}
