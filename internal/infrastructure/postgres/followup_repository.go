package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

var _ repository.FollowupRepository = (*FollowupRepo)(nil)

// FollowupRepo implementación del puerto FollowupRepository sobre PostgreSQL.
type FollowupRepo struct {
	pool *pgxpool.Pool
}

// NewFollowupRepository construye el adaptador de persistencia para seguimientos.
func NewFollowupRepository(pool *pgxpool.Pool) *FollowupRepo {
	return &FollowupRepo{pool: pool}
}

const followupColumns = `id, lead_id, user_id, scheduled_at, notes, priority, followup_type, automated, completed, created_at, updated_at`

// Create persiste un seguimiento.
func (r *FollowupRepo) Create(ctx context.Context, f *entity.Followup) error {
	query := `
		INSERT INTO followups (id, lead_id, user_id, scheduled_at, notes, priority, followup_type, automated, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		f.ID, f.LeadID, f.UserID, f.ScheduledAt, f.Notes, f.Priority, f.FollowupType,
		f.Automated, f.Completed, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert followup: %w", err)
	}
	return nil
}

// GetByID obtiene un seguimiento por ID; (nil, nil) si no existe.
func (r *FollowupRepo) GetByID(ctx context.Context, id string) (*entity.Followup, error) {
	var f entity.Followup
	err := r.pool.QueryRow(ctx, `SELECT `+followupColumns+` FROM followups WHERE id = $1`, id).Scan(
		&f.ID, &f.LeadID, &f.UserID, &f.ScheduledAt, &f.Notes, &f.Priority,
		&f.FollowupType, &f.Automated, &f.Completed, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get followup by id: %w", err)
	}
	return &f, nil
}

// Update actualiza un seguimiento.
func (r *FollowupRepo) Update(ctx context.Context, f *entity.Followup) error {
	query := `
		UPDATE followups SET scheduled_at = $2, notes = $3, priority = $4,
			followup_type = $5, completed = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		f.ID, f.ScheduledAt, f.Notes, f.Priority, f.FollowupType, f.Completed, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update followup: %w", err)
	}
	return nil
}

// Delete elimina un seguimiento por ID.
func (r *FollowupRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM followups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete followup: %w", err)
	}
	return nil
}

// ListByUser lista los seguimientos de un usuario con paginación.
func (r *FollowupRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Followup, error) {
	query := `SELECT ` + followupColumns + ` FROM followups WHERE user_id = $1 ORDER BY scheduled_at LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list followups: %w", err)
	}
	defer rows.Close()
	return scanFollowups(rows)
}

// ListByLead lista los seguimientos de un lead.
func (r *FollowupRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Followup, error) {
	query := `SELECT ` + followupColumns + ` FROM followups WHERE lead_id = $1 ORDER BY scheduled_at`
	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list followups by lead: %w", err)
	}
	defer rows.Close()
	return scanFollowups(rows)
}

func scanFollowups(rows pgx.Rows) ([]*entity.Followup, error) {
	var list []*entity.Followup
	for rows.Next() {
		var f entity.Followup
		if err := rows.Scan(&f.ID, &f.LeadID, &f.UserID, &f.ScheduledAt, &f.Notes,
			&f.Priority, &f.FollowupType, &f.Automated, &f.Completed, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan followup: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
