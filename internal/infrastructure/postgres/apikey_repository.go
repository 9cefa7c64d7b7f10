package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

var _ repository.ApiKeyRepository = (*ApiKeyRepo)(nil)

// ApiKeyRepo implementación del puerto ApiKeyRepository sobre PostgreSQL.
type ApiKeyRepo struct {
	pool *pgxpool.Pool
}

// NewApiKeyRepository construye el adaptador de persistencia para API keys.
func NewApiKeyRepository(pool *pgxpool.Pool) *ApiKeyRepo {
	return &ApiKeyRepo{pool: pool}
}

const apiKeyColumns = `id, key, description, is_active, permissions, user_id, created_at, last_used_at`

// Create persiste una API key.
func (r *ApiKeyRepo) Create(ctx context.Context, key *entity.ApiKey) error {
	query := `
		INSERT INTO api_keys (id, key, description, is_active, permissions, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		key.ID, key.Key, key.Description, key.IsActive, key.Permissions, key.UserID, key.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

// GetByID obtiene una key por ID; (nil, nil) si no existe.
func (r *ApiKeyRepo) GetByID(ctx context.Context, id string) (*entity.ApiKey, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE id = $1`, id), "get api key by id")
}

// GetByKey obtiene una key por su secreto; (nil, nil) si no existe.
func (r *ApiKeyRepo) GetByKey(ctx context.Context, key string) (*entity.ApiKey, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE key = $1`, key), "get api key by key")
}

func (r *ApiKeyRepo) scanOne(row pgx.Row, op string) (*entity.ApiKey, error) {
	var k entity.ApiKey
	err := row.Scan(&k.ID, &k.Key, &k.Description, &k.IsActive, &k.Permissions,
		&k.UserID, &k.CreatedAt, &k.LastUsedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &k, nil
}

// ListByUser lista las keys de un usuario.
func (r *ApiKeyRepo) ListByUser(ctx context.Context, userID string) ([]*entity.ApiKey, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()
	var list []*entity.ApiKey
	for rows.Next() {
		var k entity.ApiKey
		if err := rows.Scan(&k.ID, &k.Key, &k.Description, &k.IsActive, &k.Permissions,
			&k.UserID, &k.CreatedAt, &k.LastUsedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		list = append(list, &k)
	}
	return list, rows.Err()
}

// Update actualiza una key (solo flags y descripción; el secreto es inmutable).
func (r *ApiKeyRepo) Update(ctx context.Context, key *entity.ApiKey) error {
	query := `UPDATE api_keys SET description = $2, is_active = $3, permissions = $4 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, key.ID, key.Description, key.IsActive, key.Permissions)
	if err != nil {
		return fmt.Errorf("update api key: %w", err)
	}
	return nil
}

// Delete elimina una key de forma permanente.
func (r *ApiKeyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	return nil
}

// TouchLastUsed marca el último uso de la key.
func (r *ApiKeyRepo) TouchLastUsed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE api_keys SET last_used_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return fmt.Errorf("touch api key: %w", err)
	}
	return nil
}
