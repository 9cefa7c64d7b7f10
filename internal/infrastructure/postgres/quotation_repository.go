package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

// querier abstrae pool y transacción: el repositorio funciona igual atado a
// cualquiera de los dos (ver TxRunner).
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación del puerto QuotationRepository sobre PostgreSQL.
type QuotationRepo struct {
	db querier
}

// NewQuotationRepository construye el adaptador de persistencia para
// cotizaciones, atado a un pool o a una transacción.
func NewQuotationRepository(db querier) *QuotationRepo {
	return &QuotationRepo{db: db}
}

const quotationColumns = `id, user_id, client_id, number, status, total, notes, valid_until, created_at, updated_at`

// Create persiste una cotización.
func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	query := `
		INSERT INTO quotations (id, user_id, client_id, number, status, total, notes, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		q.ID, q.UserID, q.ClientID, q.Number, q.Status, q.Total, q.Notes,
		q.ValidUntil, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID; (nil, nil) si no existe.
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	var q entity.Quotation
	err := r.db.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id).Scan(
		&q.ID, &q.UserID, &q.ClientID, &q.Number, &q.Status, &q.Total, &q.Notes,
		&q.ValidUntil, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation by id: %w", err)
	}
	return &q, nil
}

// Update actualiza una cotización.
func (r *QuotationRepo) Update(ctx context.Context, q *entity.Quotation) error {
	query := `
		UPDATE quotations SET status = $2, total = $3, notes = $4, valid_until = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query, q.ID, q.Status, q.Total, q.Notes, q.ValidUntil, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	return nil
}

// Delete elimina una cotización por ID.
func (r *QuotationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	return nil
}

// ListByUser lista las cotizaciones de un usuario con paginación.
func (r *QuotationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE user_id = $1 ORDER BY number DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		var q entity.Quotation
		if err := rows.Scan(&q.ID, &q.UserID, &q.ClientID, &q.Number, &q.Status, &q.Total,
			&q.Notes, &q.ValidUntil, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

// NextNumber devuelve el siguiente consecutivo del usuario. Debe llamarse
// dentro de la misma transacción que el insert para que dos creadores
// concurrentes no obtengan el mismo número.
func (r *QuotationRepo) NextNumber(ctx context.Context, userID string) (int, error) {
	var next int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM quotations WHERE user_id = $1`, userID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next quotation number: %w", err)
	}
	return next, nil
}
