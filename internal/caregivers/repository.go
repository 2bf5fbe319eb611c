package caregivers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows caregiver listings.
type ListFilter struct {
	OnlyAvailable bool
	OnlyActive    bool
	Limit         int
	Offset        int
}

// Repository defines the interface for caregiver storage.
type Repository interface {
	Create(ctx context.Context, req *CreateCaregiverRequest) (*Caregiver, error)
	GetByID(ctx context.Context, id string) (*Caregiver, error)
	List(ctx context.Context, filter ListFilter) ([]*Caregiver, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}

// InMemoryRepository keeps caregivers in memory; used in tests and demos.
type InMemoryRepository struct {
	mu         sync.RWMutex
	caregivers map[string]*Caregiver
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{caregivers: make(map[string]*Caregiver)}
}

// Create registers a new caregiver. New caregivers start active and available.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateCaregiverRequest) (*Caregiver, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &Caregiver{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Certifications: req.Certifications,
		Available:      true,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if c.Certifications == nil {
		c.Certifications = []string{}
	}

	r.mu.Lock()
	r.caregivers[c.ID] = c
	r.mu.Unlock()

	return c, nil
}

// GetByID retrieves a caregiver by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Caregiver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.caregivers[id]
	if !ok {
		return nil, ErrCaregiverNotFound
	}
	return c, nil
}

// List returns caregivers matching the filter, newest first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Caregiver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Caregiver, 0, len(r.caregivers))
	for _, c := range r.caregivers {
		if filter.OnlyAvailable && !c.Available {
			continue
		}
		if filter.OnlyActive && !c.Active {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*Caregiver{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// SetAvailability flips a caregiver's availability flag.
func (r *InMemoryRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.caregivers[id]
	if !ok {
		return ErrCaregiverNotFound
	}
	c.Available = available
	c.UpdatedAt = time.Now().UTC()
	return nil
}
