package applications

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows List results.
type ListFilter struct {
	Status Status
}

type Repository interface {
	Create(ctx context.Context, req *SubmitRequest) (*Application, error)
	GetByID(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context, filter ListFilter) ([]*Application, error)
	UpdateStatus(ctx context.Context, id string, review *ReviewRequest) (*Application, error)
}

// InMemoryRepository keeps applications in memory; used in tests and demos.
type InMemoryRepository struct {
	mu   sync.RWMutex
	apps map[string]*Application
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{apps: make(map[string]*Application)}
}

func (r *InMemoryRepository) Create(ctx context.Context, req *SubmitRequest) (*Application, error) {
	now := time.Now().UTC()
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
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID] = app
	return app, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Application, 0, len(r.apps))
	for _, app := range r.apps {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, review *ReviewRequest) (*Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	if !app.Status.CanTransition(review.Status) {
		return nil, ErrIllegalTransition
	}
	app.Status = review.Status
	app.ReviewNote = review.Note
	app.ReviewedBy = review.ReviewedBy
	app.UpdatedAt = time.Now().UTC()
	return app, nil
}
