package caregivers

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

// PostgresRepository stores caregivers in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db db) *PostgresRepository {
	if db == nil {
		panic("caregivers: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row. New caregivers start active and available.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateCaregiverRequest) (*Caregiver, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	certs := req.Certifications
	if certs == nil {
		certs = []string{}
	}

	id := uuid.New()
	query := `
		INSERT INTO caregivers (id, name, email, phone, certifications, available, active)
		VALUES ($1, $2, $3, $4, $5, true, true)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		certs,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("caregivers: insert failed: %w", err)
	}

	return &Caregiver{
		ID:             id.String(),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Certifications: certs,
		Available:      true,
		Active:         true,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

const caregiverColumns = `id, name, email, phone, certifications, available, active, created_at, updated_at`

func scanCaregiver(row pgx.Row) (*Caregiver, error) {
	var c Caregiver
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Certifications,
		&c.Available,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID fetches a caregiver.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Caregiver, error) {
	row := r.db.QueryRow(ctx, `SELECT `+caregiverColumns+` FROM caregivers WHERE id = $1`, id)
	c, err := scanCaregiver(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCaregiverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("caregivers: get failed: %w", err)
	}
	return c, nil
}

// List returns caregivers newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Caregiver, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	query := `SELECT ` + caregiverColumns + ` FROM caregivers WHERE 1=1`
	if filter.OnlyAvailable {
		query += ` AND available`
	}
	if filter.OnlyActive {
		query += ` AND active`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("caregivers: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Caregiver
	for rows.Next() {
		c, err := scanCaregiver(rows)
		if err != nil {
			return nil, fmt.Errorf("caregivers: scan failed: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetAvailability flips a caregiver's availability flag.
func (r *PostgresRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE caregivers SET available = $2, updated_at = now() WHERE id = $1`,
		id, available)
	if err != nil {
		return fmt.Errorf("caregivers: set availability failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCaregiverNotFound
	}
	return nil
}
