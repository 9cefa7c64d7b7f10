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

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL.
type LeadRepo struct {
	pool *pgxpool.Pool
}

// NewLeadRepository construye el adaptador de persistencia para leads.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{pool: pool}
}

const leadColumns = `id, user_id, name, email, phone, company, source, status, notes, estimated_value, created_at, updated_at`

// Create persiste un lead.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, user_id, name, email, phone, company, source, status, notes, estimated_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		lead.ID, lead.UserID, lead.Name, lead.Email, lead.Phone, lead.Company,
		lead.Source, lead.Status, lead.Notes, lead.EstimatedValue, lead.CreatedAt, lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead por ID; (nil, nil) si no existe.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	var l entity.Lead
	err := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id).Scan(
		&l.ID, &l.UserID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Source,
		&l.Status, &l.Notes, &l.EstimatedValue, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead by id: %w", err)
	}
	return &l, nil
}

// Update actualiza un lead.
func (r *LeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET name = $2, email = $3, phone = $4, company = $5, source = $6,
			status = $7, notes = $8, estimated_value = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Company, lead.Source,
		lead.Status, lead.Notes, lead.EstimatedValue, lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// Delete elimina un lead por ID.
func (r *LeadRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}

// ListByUser lista los leads de un usuario con paginación.
func (r *LeadRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	return scanLeads(rows)
}

// FindForAutomation aplica el filtro del motor de automatización: status exacto
// opcional y "sin actualizar desde" opcional. Sin paginación: el scan está
// acotado por la cantidad de leads del usuario.
func (r *LeadRepo) FindForAutomation(ctx context.Context, userID, status string, updatedBefore *time.Time) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = $1`
	args := []interface{}{userID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if updatedBefore != nil {
		args = append(args, *updatedBefore)
		query += fmt.Sprintf(` AND updated_at <= $%d`, len(args))
	}
	query += ` ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find leads for automation: %w", err)
	}
	defer rows.Close()
	return scanLeads(rows)
}

func scanLeads(rows pgx.Rows) ([]*entity.Lead, error) {
	var list []*entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Email, &l.Phone, &l.Company,
			&l.Source, &l.Status, &l.Notes, &l.EstimatedValue, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
