package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores service requests in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db db) *PostgresRepository {
	if db == nil {
		panic("requests: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Create files a new pending request.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateRequest) (*ServiceRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	addons := req.SelectedAddonIDs
	if addons == nil {
		addons = []string{}
	}

	id := uuid.New()
	query := `
		INSERT INTO service_requests (id, patient_id, service_slug, selected_addon_ids, details, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.PatientID,
		req.ServiceSlug,
		addons,
		req.Details,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("requests: insert failed: %w", err)
	}

	return &ServiceRequest{
		ID:               id.String(),
		PatientID:        req.PatientID,
		ServiceSlug:      req.ServiceSlug,
		SelectedAddonIDs: addons,
		Details:          req.Details,
		Status:           StatusPending,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}

const requestColumns = `id, patient_id, service_slug, selected_addon_ids, details, status, caregiver_id, created_at, updated_at`

func scanRequest(row pgx.Row) (*ServiceRequest, error) {
	var sr ServiceRequest
	err := row.Scan(
		&sr.ID,
		&sr.PatientID,
		&sr.ServiceSlug,
		&sr.SelectedAddonIDs,
		&sr.Details,
		&sr.Status,
		&sr.CaregiverID,
		&sr.CreatedAt,
		&sr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

// GetByID fetches a request.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*ServiceRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM service_requests WHERE id = $1`, id)
	sr, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("requests: get failed: %w", err)
	}
	return sr, nil
}

// List returns requests newest first, filtered by patient, caregiver, status.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*ServiceRequest, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	query := `SELECT ` + requestColumns + ` FROM service_requests WHERE 1=1`
	args := []any{}
	if filter.PatientID != "" {
		args = append(args, filter.PatientID)
		query += fmt.Sprintf(` AND patient_id = $%d`, len(args))
	}
	if filter.CaregiverID != "" {
		args = append(args, filter.CaregiverID)
		query += fmt.Sprintf(` AND caregiver_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("requests: list failed: %w", err)
	}
	defer rows.Close()

	var out []*ServiceRequest
	for rows.Next() {
		sr, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("requests: scan failed: %w", err)
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// UpdateStatus moves a request to a new status, enforcing legal transitions
// inside the UPDATE so concurrent writers cannot skip states.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status, caregiverID *string) (*ServiceRequest, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransition(status) {
		return nil, ErrIllegalTransition
	}

	query := `
		UPDATE service_requests
		SET status = $2, caregiver_id = COALESCE($3, caregiver_id), updated_at = now()
		WHERE id = $1 AND status = $4
		RETURNING ` + requestColumns
	row := r.db.QueryRow(ctx, query, id, status, caregiverID, current.Status)
	sr, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// Row moved under us; the guard in the WHERE clause lost the race.
		return nil, ErrIllegalTransition
	}
	if err != nil {
		return nil, fmt.Errorf("requests: update status failed: %w", err)
	}
	return sr, nil
}
