package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/domain"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

// apiKeyPrefix identifica las keys de esta aplicación a simple vista.
const apiKeyPrefix = "crm_"

// ApiKeyUseCase ciclo de vida de las API keys de un usuario: crear, listar,
// activar/desactivar y eliminar. Todas las operaciones son del dueño sobre sus
// propias keys.
type ApiKeyUseCase struct {
	keyRepo repository.ApiKeyRepository
}

// NewApiKeyUseCase construye el caso de uso de API keys.
func NewApiKeyUseCase(keyRepo repository.ApiKeyRepository) *ApiKeyUseCase {
	return &ApiKeyUseCase{keyRepo: keyRepo}
}

// Create genera una key de alta entropía para el usuario. El secreto completo
// solo se devuelve aquí.
func (uc *ApiKeyUseCase) Create(ctx context.Context, userID string, in dto.CreateApiKeyRequest) (*dto.ApiKeyResponse, error) {
	secret, err := generateSecret()
	if err != nil {
		return nil, err
	}
	key := &entity.ApiKey{
		ID:          uuid.New().String(),
		Key:         secret,
		Description: in.Description,
		IsActive:    true,
		Permissions: in.Permissions,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	if err := uc.keyRepo.Create(ctx, key); err != nil {
		return nil, err
	}
	resp := toApiKeyResponse(key)
	resp.Key = key.Key
	return resp, nil
}

// List devuelve las keys del usuario con el secreto omitido.
func (uc *ApiKeyUseCase) List(ctx context.Context, userID string) ([]*dto.ApiKeyResponse, error) {
	keys, err := uc.keyRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ApiKeyResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, toApiKeyResponse(k))
	}
	return out, nil
}

// SetActive activa o desactiva una key sin eliminarla.
func (uc *ApiKeyUseCase) SetActive(ctx context.Context, userID, keyID string, active bool) (*dto.ApiKeyResponse, error) {
	key, err := uc.ownedKey(ctx, userID, keyID)
	if err != nil {
		return nil, err
	}
	key.IsActive = active
	if err := uc.keyRepo.Update(ctx, key); err != nil {
		return nil, err
	}
	return toApiKeyResponse(key), nil
}

// Delete elimina una key de forma permanente.
func (uc *ApiKeyUseCase) Delete(ctx context.Context, userID, keyID string) error {
	if _, err := uc.ownedKey(ctx, userID, keyID); err != nil {
		return err
	}
	return uc.keyRepo.Delete(ctx, keyID)
}

// ownedKey carga la key verificando que pertenezca al usuario.
func (uc *ApiKeyUseCase) ownedKey(ctx context.Context, userID, keyID string) (*entity.ApiKey, error) {
	key, err := uc.keyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, domain.ErrNotFound
	}
	if key.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return key, nil
}

// generateSecret produce el secreto: prefijo + 32 bytes aleatorios en hex.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar api key: %w", err)
	}
	return apiKeyPrefix + hex.EncodeToString(buf), nil
}

func toApiKeyResponse(k *entity.ApiKey) *dto.ApiKeyResponse {
	return &dto.ApiKeyResponse{
		ID:          k.ID,
		Description: k.Description,
		IsActive:    k.IsActive,
		Permissions: k.Permissions,
		CreatedAt:   k.CreatedAt,
		LastUsedAt:  k.LastUsedAt,
	}
}
