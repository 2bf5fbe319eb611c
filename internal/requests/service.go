package requests

import (
	"context"
	"fmt"

	"github.com/carebridge/homecare-platform/internal/caregivers"
	"github.com/carebridge/homecare-platform/internal/notify"
	"github.com/carebridge/homecare-platform/internal/patients"
	"github.com/carebridge/homecare-platform/internal/pricing"
	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Service coordinates request intake and caregiver assignment across the
// catalog, staff and patient records.
type Service struct {
	repo       Repository
	catalog    pricing.Store
	caregivers caregivers.Repository
	patients   patients.Repository
	sender     notify.Sender
	logger     *logging.Logger
}

// NewService wires the request workflow.
func NewService(
	repo Repository,
	catalog pricing.Store,
	caregiverRepo caregivers.Repository,
	patientRepo patients.Repository,
	sender notify.Sender,
	logger *logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:       repo,
		catalog:    catalog,
		caregivers: caregiverRepo,
		patients:   patientRepo,
		sender:     sender,
		logger:     logger,
	}
}

// File validates the requested service against the catalog and records a
// pending request.
func (s *Service) File(ctx context.Context, req *CreateRequest) (*ServiceRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.patients.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}

	forest, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("requests: load catalog: %w", err)
	}
	if pricing.ResolveSlug(forest, req.ServiceSlug) == nil {
		return nil, ErrUnknownService
	}

	return s.repo.Create(ctx, req)
}

// Assign attaches an available caregiver to a pending request and notifies
// both parties. Notification failures are logged, never fatal: the
// assignment has already been recorded.
func (s *Service) Assign(ctx context.Context, requestID, caregiverID string) (*ServiceRequest, error) {
	cg, err := s.caregivers.GetByID(ctx, caregiverID)
	if err != nil {
		return nil, err
	}
	if !cg.Active || !cg.Available {
		return nil, ErrCaregiverUnavailable
	}

	sr, err := s.repo.UpdateStatus(ctx, requestID, StatusAssigned, &caregiverID)
	if err != nil {
		return nil, err
	}

	s.fanOutAssigned(ctx, sr, cg)
	return sr, nil
}

// Transition moves a request along its lifecycle without touching the
// caregiver assignment.
func (s *Service) Transition(ctx context.Context, requestID string, status Status) (*ServiceRequest, error) {
	return s.repo.UpdateStatus(ctx, requestID, status, nil)
}

func (s *Service) fanOutAssigned(ctx context.Context, sr *ServiceRequest, cg *caregivers.Caregiver) {
	if s.sender == nil {
		return
	}

	subject := fmt.Sprintf("Care assignment: %s", sr.ServiceSlug)
	body := fmt.Sprintf("You have been assigned to service request %s (%s).", sr.ID, sr.ServiceSlug)
	if err := s.sender.Send(ctx, cg.Name, cg.Email, subject, body); err != nil {
		s.logger.Error("failed to notify caregiver", "error", err, "request_id", sr.ID, "caregiver_id", cg.ID)
	}

	patient, err := s.patients.GetByID(ctx, sr.PatientID)
	if err != nil {
		s.logger.Error("failed to look up patient for notification", "error", err, "request_id", sr.ID)
		return
	}
	if patient.Email == "" {
		return
	}
	body = fmt.Sprintf("Your request for %s has been assigned to %s.", sr.ServiceSlug, cg.Name)
	if err := s.sender.Send(ctx, patient.Name, patient.Email, "Your care request was assigned", body); err != nil {
		s.logger.Error("failed to notify patient", "error", err, "request_id", sr.ID, "patient_id", patient.ID)
	}
}
