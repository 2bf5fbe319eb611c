package caregivers

import (
	"strings"
	"time"
)

// Caregiver is a member of the care staff.
type Caregiver struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Certifications []string `json:"certifications"`
	// Available reports whether the caregiver can take new assignments.
	Available bool      `json:"available"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCaregiverRequest is the request body for registering a caregiver.
type CreateCaregiverRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Certifications []string `json:"certifications"`
}

// Validate validates the create caregiver request.
func (r *CreateCaregiverRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	return nil
}
