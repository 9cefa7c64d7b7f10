package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/crm-pro/internal/domain"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
// La matriz de permisos se guarda como JSONB.
type RoleRepo struct {
	pool *pgxpool.Pool
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

// Create persiste un rol. Nombre duplicado -> ErrDuplicate: el constraint único
// hace el check-and-insert atómico.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	permissions, err := json.Marshal(role.Permissions)
	if err != nil {
		return fmt.Errorf("marshal permissions: %w", err)
	}
	query := `
		INSERT INTO roles (id, name, display_name, description, permissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.pool.Exec(ctx, query,
		role.ID, role.Name, role.DisplayName, role.Description, permissions,
		role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID; (nil, nil) si no existe.
func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, name, display_name, description, permissions, created_at, updated_at
		 FROM roles WHERE id = $1`, id), "get role by id")
}

// GetByName obtiene un rol por nombre único; (nil, nil) si no existe.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, name, display_name, description, permissions, created_at, updated_at
		 FROM roles WHERE name = $1`, name), "get role by name")
}

func (r *RoleRepo) scanOne(row pgx.Row, op string) (*entity.Role, error) {
	var role entity.Role
	var permissions []byte
	err := row.Scan(&role.ID, &role.Name, &role.DisplayName, &role.Description,
		&permissions, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(permissions, &role.Permissions); err != nil {
		return nil, fmt.Errorf("%s: unmarshal permissions: %w", op, err)
	}
	return &role, nil
}

// Update actualiza un rol.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	permissions, err := json.Marshal(role.Permissions)
	if err != nil {
		return fmt.Errorf("marshal permissions: %w", err)
	}
	query := `
		UPDATE roles SET display_name = $2, description = $3, permissions = $4, updated_at = $5
		WHERE id = $1`
	_, err = r.pool.Exec(ctx, query,
		role.ID, role.DisplayName, role.Description, permissions, role.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// Delete elimina un rol por ID.
func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}

// List devuelve todos los roles.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, display_name, description, permissions, created_at, updated_at
		 FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		var permissions []byte
		if err := rows.Scan(&role.ID, &role.Name, &role.DisplayName, &role.Description,
			&permissions, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		if err := json.Unmarshal(permissions, &role.Permissions); err != nil {
			return nil, fmt.Errorf("unmarshal permissions: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// Seed inserta los roles semilla de forma idempotente: los existentes no se
// tocan (ON CONFLICT DO NOTHING sobre el nombre único).
func (r *RoleRepo) Seed(ctx context.Context, roles []*entity.Role) error {
	for _, role := range roles {
		permissions, err := json.Marshal(role.Permissions)
		if err != nil {
			return fmt.Errorf("marshal permissions: %w", err)
		}
		query := `
			INSERT INTO roles (id, name, display_name, description, permissions, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (name) DO NOTHING`
		if _, err := r.pool.Exec(ctx, query,
			role.ID, role.Name, role.DisplayName, role.Description, permissions,
			role.CreatedAt, role.UpdatedAt); err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	return nil
}
