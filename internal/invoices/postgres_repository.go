package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the subset of pgxpool.Pool the repository needs. Keeping it small
// lets tests substitute pgxmock.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository persists invoices with line items stored as jsonb.
type PostgresRepository struct {
	db db
}

func NewPostgresRepository(db db) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, inv *Invoice) error {
	lines, err := json.Marshal(inv.Lines)
	if err != nil {
		return fmt.Errorf("invoices: marshal lines: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO invoices (id, request_id, patient_id, period_days, lines, total, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.ID, inv.RequestID, inv.PatientID, inv.PeriodDays, lines, inv.Total, inv.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("invoices: create: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Invoice, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, request_id, patient_id, period_days, lines, total, issued_at
		FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoices: get %s: %w", id, err)
	}
	return inv, nil
}

func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID string) ([]Invoice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, request_id, patient_id, period_days, lines, total, issued_at
		FROM invoices WHERE patient_id = $1 ORDER BY issued_at DESC`, patientID)
	if err != nil {
		return nil, fmt.Errorf("invoices: list for patient %s: %w", patientID, err)
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("invoices: scan: %w", err)
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var lines []byte
	if err := row.Scan(&inv.ID, &inv.RequestID, &inv.PatientID, &inv.PeriodDays, &lines, &inv.Total, &inv.IssuedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &inv.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal lines: %w", err)
	}
	return &inv, nil
}
