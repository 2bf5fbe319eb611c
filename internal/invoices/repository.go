package invoices

import (
	"context"
	"sync"
)

// Repository stores issued invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id string) (*Invoice, error)
	ListByPatient(ctx context.Context, patientID string) ([]Invoice, error)
}

// InMemoryRepository is a thread-safe in-memory Repository used in tests
// and local development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	invoices map[string]Invoice
	order    []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{invoices: make(map[string]Invoice)}
}

func (r *InMemoryRepository) Create(ctx context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[inv.ID] = *inv
	r.order = append(r.order, inv.ID)
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, ErrInvoiceNotFound
	}
	return &inv, nil
}

func (r *InMemoryRepository) ListByPatient(ctx context.Context, patientID string) ([]Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Invoice
	for _, id := range r.order {
		if inv := r.invoices[id]; inv.PatientID == patientID {
			out = append(out, inv)
		}
	}
	return out, nil
}
