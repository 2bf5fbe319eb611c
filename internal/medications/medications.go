// Package medications tracks per-patient medication records.
package medications

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
	// ErrMissingPatient is returned when the patient id is missing.
	ErrMissingPatient = errors.New("patient_id is required")

	// ErrMissingName is returned when the medication name is missing.
	ErrMissingName = errors.New("medication name is required")

	// ErrMedicationNotFound is returned when a medication is not found.
	ErrMedicationNotFound = errors.New("medication not found")
)

// Medication is one prescribed medication for a patient.
type Medication struct {
	ID         string     `json:"id"`
	PatientID  string     `json:"patient_id"`
	Name       string     `json:"name"`
	Dosage     string     `json:"dosage,omitempty"`
	Frequency  string     `json:"frequency,omitempty"`
	Prescriber string     `json:"prescriber,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Active reports whether the medication applies at t.
func (m *Medication) Active(t time.Time) bool {
	if m.StartDate != nil && t.Before(*m.StartDate) {
		return false
	}
	if m.EndDate != nil && t.After(*m.EndDate) {
		return false
	}
	return true
}

// CreateMedicationRequest is the request body for recording a medication.
type CreateMedicationRequest struct {
	PatientID  string     `json:"patient_id"`
	Name       string     `json:"name"`
	Dosage     string     `json:"dosage"`
	Frequency  string     `json:"frequency"`
	Prescriber string     `json:"prescriber"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Notes      string     `json:"notes"`
}

// Validate validates the create medication request.
func (r *CreateMedicationRequest) Validate() error {
	if strings.TrimSpace(r.PatientID) == "" {
		return ErrMissingPatient
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	return nil
}

// Repository defines the interface for medication storage.
type Repository interface {
	Create(ctx context.Context, req *CreateMedicationRequest) (*Medication, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Medication, error)
	Discontinue(ctx context.Context, id string, endDate time.Time) error
}

// InMemoryRepository keeps medications in memory; used in tests and demos.
type InMemoryRepository struct {
	mu   sync.RWMutex
	meds map[string]*Medication
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{meds: make(map[string]*Medication)}
}

// Create records a medication.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateMedicationRequest) (*Medication, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := &Medication{
		ID:         uuid.NewString(),
		PatientID:  req.PatientID,
		Name:       req.Name,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		Prescriber: req.Prescriber,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r.mu.Lock()
	r.meds[m.ID] = m
	r.mu.Unlock()

	return m, nil
}

// ListByPatient returns all medications for a patient, newest first.
func (r *InMemoryRepository) ListByPatient(ctx context.Context, patientID string) ([]*Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Medication, 0)
	for _, m := range r.meds {
		if m.PatientID == patientID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Discontinue ends a medication as of endDate.
func (r *InMemoryRepository) Discontinue(ctx context.Context, id string, endDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meds[id]
	if !ok {
		return ErrMedicationNotFound
	}
	m.EndDate = &endDate
	m.UpdatedAt = time.Now().UTC()
	return nil
}

type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores medications in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db db) *PostgresRepository {
	if db == nil {
		panic("medications: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Create records a medication.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateMedicationRequest) (*Medication, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO medications (id, patient_id, name, dosage, frequency, prescriber, start_date, end_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.PatientID,
		req.Name,
		req.Dosage,
		req.Frequency,
		req.Prescriber,
		req.StartDate,
		req.EndDate,
		req.Notes,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("medications: insert failed: %w", err)
	}

	return &Medication{
		ID:         id.String(),
		PatientID:  req.PatientID,
		Name:       req.Name,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		Prescriber: req.Prescriber,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Notes:      req.Notes,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// ListByPatient returns all medications for a patient, newest first.
func (r *PostgresRepository) ListByPatient(ctx context.Context, patientID string) ([]*Medication, error) {
	query := `
		SELECT id, patient_id, name, dosage, frequency, prescriber, start_date, end_date, notes, created_at, updated_at
		FROM medications
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("medications: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(
			&m.ID,
			&m.PatientID,
			&m.Name,
			&m.Dosage,
			&m.Frequency,
			&m.Prescriber,
			&m.StartDate,
			&m.EndDate,
			&m.Notes,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("medications: scan failed: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// Discontinue ends a medication as of endDate.
func (r *PostgresRepository) Discontinue(ctx context.Context, id string, endDate time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE medications SET end_date = $2, updated_at = now() WHERE id = $1`,
		id, endDate)
	if err != nil {
		return fmt.Errorf("medications: discontinue failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMedicationNotFound
	}
	return nil
}
