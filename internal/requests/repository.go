package requests

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows request listings.
type ListFilter struct {
	PatientID   string
	CaregiverID string
	Status      Status
	Limit       int
	Offset      int
}

// Repository defines the interface for service request storage.
type Repository interface {
	Create(ctx context.Context, req *CreateRequest) (*ServiceRequest, error)
	GetByID(ctx context.Context, id string) (*ServiceRequest, error)
	List(ctx context.Context, filter ListFilter) ([]*ServiceRequest, error)
	UpdateStatus(ctx context.Context, id string, status Status, caregiverID *string) (*ServiceRequest, error)
}

// InMemoryRepository keeps requests in memory; used in tests and demos.
type InMemoryRepository struct {
	mu       sync.RWMutex
	requests map[string]*ServiceRequest
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{requests: make(map[string]*ServiceRequest)}
}

// Create files a new pending request.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateRequest) (*ServiceRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sr := &ServiceRequest{
		ID:               uuid.NewString(),
		PatientID:        req.PatientID,
		ServiceSlug:      req.ServiceSlug,
		SelectedAddonIDs: req.SelectedAddonIDs,
		Details:          req.Details,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if sr.SelectedAddonIDs == nil {
		sr.SelectedAddonIDs = []string{}
	}

	r.mu.Lock()
	r.requests[sr.ID] = sr
	r.mu.Unlock()

	return sr, nil
}

// GetByID retrieves a request by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sr, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return sr, nil
}

// List returns requests matching the filter, newest first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ServiceRequest, 0, len(r.requests))
	for _, sr := range r.requests {
		if filter.PatientID != "" && sr.PatientID != filter.PatientID {
			continue
		}
		if filter.CaregiverID != "" && (sr.CaregiverID == nil || *sr.CaregiverID != filter.CaregiverID) {
			continue
		}
		if filter.Status != "" && sr.Status != filter.Status {
			continue
		}
		out = append(out, sr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*ServiceRequest{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// UpdateStatus moves a request to a new status, enforcing legal transitions.
// caregiverID is set only when non-nil (the assignment path).
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status, caregiverID *string) (*ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sr, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	if !sr.Status.CanTransition(status) {
		return nil, ErrIllegalTransition
	}
	sr.Status = status
	if caregiverID != nil {
		sr.CaregiverID = caregiverID
	}
	sr.UpdatedAt = time.Now().UTC()
	return sr, nil
}
