package requests

import (
	"strings"
	"time"
)

// Status tracks a service request through its lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// legalTransitions maps each status to the statuses it may move to.
var legalTransitions = map[Status][]Status{
	StatusPending:    {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceRequest is a patient's ask for a catalog service.
type ServiceRequest struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	ServiceSlug string `json:"service_slug"`
	// SelectedAddonIDs are the optional catalog add-ons the patient picked.
	SelectedAddonIDs []string  `json:"selected_addon_ids"`
	Details          string    `json:"details,omitempty"`
	Status           Status    `json:"status"`
	CaregiverID      *string   `json:"caregiver_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateRequest is the request body for filing a service request.
type CreateRequest struct {
	PatientID        string   `json:"patient_id"`
	ServiceSlug      string   `json:"service_slug"`
	SelectedAddonIDs []string `json:"selected_addon_ids"`
	Details          string   `json:"details"`
}

// Validate validates the create request.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.PatientID) == "" {
		return ErrMissingPatient
	}
	if strings.TrimSpace(r.ServiceSlug) == "" {
		return ErrMissingService
	}
	return nil
}
