package patients

import (
	"strings"
	"time"
)

// CareLevel grades how much support a patient needs.
type CareLevel string

const (
	CareLevelCompanion CareLevel = "companion"
	CareLevelPersonal  CareLevel = "personal"
	CareLevelSkilled   CareLevel = "skilled"
)

func (c CareLevel) valid() bool {
	switch c {
	case CareLevelCompanion, CareLevelPersonal, CareLevelSkilled:
		return true
	}
	return false
}

// Patient is a person receiving care.
type Patient struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Address          string    `json:"address,omitempty"`
	DateOfBirth      string    `json:"date_of_birth,omitempty"`
	CareLevel        CareLevel `json:"care_level"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	EmergencyPhone   string    `json:"emergency_phone,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreatePatientRequest is the request body for registering a patient.
type CreatePatientRequest struct {
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	DateOfBirth      string    `json:"date_of_birth"`
	CareLevel        CareLevel `json:"care_level"`
	EmergencyContact string    `json:"emergency_contact"`
	EmergencyPhone   string    `json:"emergency_phone"`
	Notes            string    `json:"notes"`
}

// Validate validates the create patient request.
func (r *CreatePatientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	if r.CareLevel == "" {
		r.CareLevel = CareLevelCompanion
	}
	if !r.CareLevel.valid() {
		return ErrInvalidCareLevel
	}
	return nil
}
