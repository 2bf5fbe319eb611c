package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository persists applications in the applications table.
type PostgresRepository struct {
	db db
}

func NewPostgresRepository(db db) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const applicationColumns = `id, full_name, email, phone, position, years_experience,
	certifications, cover_letter, status, review_note, reviewed_by, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, req *SubmitRequest) (*Application, error) {
	app := &Application{
		ID:              uuid.NewString(),
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Position:        req.Position,
		YearsExperience: req.YearsExperience,
		Certifications:  req.Certifications,
		CoverLetter:     req.CoverLetter,
		Status:          StatusSubmitted,
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (id, full_name, email, phone, position, years_experience,
			certifications, cover_letter, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		app.ID, app.FullName, app.Email, app.Phone, app.Position, app.YearsExperience,
		app.Certifications, app.CoverLetter, app.Status,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("applications: create: %w", err)
	}
	return app, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("applications: get %s: %w", id, err)
	}
	return app, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("applications: list: %w", err)
	}
	defer rows.Close()

	var out []*Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("applications: scan: %w", err)
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, review *ReviewRequest) (*Application, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransition(review.Status) {
		return nil, ErrIllegalTransition
	}

	row := r.db.QueryRow(ctx, `
		UPDATE applications
		SET status = $2, review_note = $3, reviewed_by = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
		RETURNING `+applicationColumns,
		id, review.Status, review.Note, review.ReviewedBy, current.Status,
	)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Status changed between the read and the guarded update.
			return nil, ErrIllegalTransition
		}
		return nil, fmt.Errorf("applications: update %s: %w", id, err)
	}
	return app, nil
}

func scanApplication(row pgx.Row) (*Application, error) {
	var app Application
	err := row.Scan(
		&app.ID, &app.FullName, &app.Email, &app.Phone, &app.Position,
		&app.YearsExperience, &app.Certifications, &app.CoverLetter,
		&app.Status, &app.ReviewNote, &app.ReviewedBy, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}
