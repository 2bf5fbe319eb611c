// Package visits schedules care visits binding a service request to a
// caregiver and a time window.
package visits

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrMissingFields is returned when a schedule request omits ids.
	ErrMissingFields = errors.New("request_id, patient_id and caregiver_id are required")

	// ErrInvalidWindow is returned when the visit window is empty or inverted.
	ErrInvalidWindow = errors.New("visit end must be after start")

	// ErrVisitNotFound is returned when a visit is not found.
	ErrVisitNotFound = errors.New("visit not found")
)

// VisitStatus tracks a scheduled visit.
type VisitStatus string

const (
	VisitScheduled VisitStatus = "scheduled"
	VisitCompleted VisitStatus = "completed"
	VisitMissed    VisitStatus = "missed"
	VisitCancelled VisitStatus = "cancelled"
)

// Visit is one scheduled care visit. Overlapping visits for the same
// caregiver are not prevented; schedulers resolve conflicts by hand.
type Visit struct {
	ID          string      `json:"id"`
	RequestID   string      `json:"request_id"`
	PatientID   string      `json:"patient_id"`
	CaregiverID string      `json:"caregiver_id"`
	StartsAt    time.Time   `json:"starts_at"`
	EndsAt      time.Time   `json:"ends_at"`
	Status      VisitStatus `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ScheduleRequest is the request body for scheduling a visit.
type ScheduleRequest struct {
	RequestID   string    `json:"request_id"`
	PatientID   string    `json:"patient_id"`
	CaregiverID string    `json:"caregiver_id"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Notes       string    `json:"notes"`
}

// Validate validates the schedule request.
func (r *ScheduleRequest) Validate() error {
	if strings.TrimSpace(r.RequestID) == "" ||
		strings.TrimSpace(r.PatientID) == "" ||
		strings.TrimSpace(r.CaregiverID) == "" {
		return ErrMissingFields
	}
	if !r.EndsAt.After(r.StartsAt) {
		return ErrInvalidWindow
	}
	return nil
}

// Repository defines the interface for visit storage.
type Repository interface {
	Schedule(ctx context.Context, req *ScheduleRequest) (*Visit, error)
	ListByCaregiver(ctx context.Context, caregiverID string) ([]*Visit, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Visit, error)
	SetStatus(ctx context.Context, id string, status VisitStatus) error
}

// InMemoryRepository keeps visits in memory; used in tests and demos.
type InMemoryRepository struct {
	mu     sync.RWMutex
	visits map[string]*Visit
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{visits: make(map[string]*Visit)}
}

// Schedule records a visit.
func (r *InMemoryRepository) Schedule(ctx context.Context, req *ScheduleRequest) (*Visit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v := &Visit{
		ID:          uuid.NewString(),
		RequestID:   req.RequestID,
		PatientID:   req.PatientID,
		CaregiverID: req.CaregiverID,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Status:      VisitScheduled,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	r.visits[v.ID] = v
	r.mu.Unlock()

	return v, nil
}

func (r *InMemoryRepository) listWhere(match func(*Visit) bool) []*Visit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Visit, 0)
	for _, v := range r.visits {
		if match(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out
}

// ListByCaregiver returns a caregiver's visits ordered by start time.
func (r *InMemoryRepository) ListByCaregiver(ctx context.Context, caregiverID string) ([]*Visit, error) {
	return r.listWhere(func(v *Visit) bool { return v.CaregiverID == caregiverID }), nil
}

// ListByPatient returns a patient's visits ordered by start time.
func (r *InMemoryRepository) ListByPatient(ctx context.Context, patientID string) ([]*Visit, error) {
	return r.listWhere(func(v *Visit) bool { return v.PatientID == patientID }), nil
}

// SetStatus updates a visit's status.
func (r *InMemoryRepository) SetStatus(ctx context.Context, id string, status VisitStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visits[id]
	if !ok {
		return ErrVisitNotFound
	}
	v.Status = status
	v.UpdatedAt = time.Now().UTC()
	return nil
}

type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores visits in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db db) *PostgresRepository {
	if db == nil {
		panic("visits: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Schedule records a visit.
func (r *PostgresRepository) Schedule(ctx context.Context, req *ScheduleRequest) (*Visit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO visits (id, request_id, patient_id, caregiver_id, starts_at, ends_at, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, 'scheduled', $7)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.RequestID,
		req.PatientID,
		req.CaregiverID,
		req.StartsAt,
		req.EndsAt,
		req.Notes,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("visits: insert failed: %w", err)
	}

	return &Visit{
		ID:          id.String(),
		RequestID:   req.RequestID,
		PatientID:   req.PatientID,
		CaregiverID: req.CaregiverID,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Status:      VisitScheduled,
		Notes:       req.Notes,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

const visitColumns = `id, request_id, patient_id, caregiver_id, starts_at, ends_at, status, notes, created_at, updated_at`

func (r *PostgresRepository) listBy(ctx context.Context, column, value string) ([]*Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE ` + column + ` = $1 ORDER BY starts_at ASC`
	rows, err := r.db.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("visits: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(
			&v.ID,
			&v.RequestID,
			&v.PatientID,
			&v.CaregiverID,
			&v.StartsAt,
			&v.EndsAt,
			&v.Status,
			&v.Notes,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("visits: scan failed: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

// ListByCaregiver returns a caregiver's visits ordered by start time.
func (r *PostgresRepository) ListByCaregiver(ctx context.Context, caregiverID string) ([]*Visit, error) {
	return r.listBy(ctx, "caregiver_id", caregiverID)
}

// ListByPatient returns a patient's visits ordered by start time.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID string) ([]*Visit, error) {
	return r.listBy(ctx, "patient_id", patientID)
}

// SetStatus updates a visit's status.
func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status VisitStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE visits SET status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("visits: set status failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVisitNotFound
	}
	return nil
}
