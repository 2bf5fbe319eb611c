// Package applications handles caregiver job applications and their
// review workflow.
package applications

import (
	"errors"
	"time"
)

// Status is the review state of an application.
type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

var legalTransitions = map[Status][]Status{
	StatusSubmitted:   {StatusUnderReview},
	StatusUnderReview: {StatusApproved, StatusRejected},
}

// CanTransition reports whether an application may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrIllegalTransition   = errors.New("illegal application status transition")
)

// Application is a caregiver job application.
type Application struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Position        string    `json:"position"`
	YearsExperience int       `json:"years_experience"`
	Certifications  []string  `json:"certifications"`
	CoverLetter     string    `json:"cover_letter,omitempty"`
	Status          Status    `json:"status"`
	ReviewNote      string    `json:"review_note,omitempty"`
	ReviewedBy      string    `json:"reviewed_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SubmitRequest is the public application form payload. Validation tags
// are enforced with go-playground/validator.
type SubmitRequest struct {
	FullName        string   `json:"full_name" validate:"required,min=2,max=120"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"omitempty,min=7,max=32"`
	Position        string   `json:"position" validate:"required,oneof=companion personal_care skilled_nursing"`
	YearsExperience int      `json:"years_experience" validate:"gte=0,lte=60"`
	Certifications  []string `json:"certifications" validate:"dive,min=2,max=80"`
	CoverLetter     string   `json:"cover_letter" validate:"max=4000"`
}

// ReviewRequest moves an application through the review workflow.
type ReviewRequest struct {
	Status     Status `json:"status" validate:"required,oneof=under_review approved rejected"`
	Note       string `json:"note" validate:"max=1000"`
	ReviewedBy string `json:"reviewed_by" validate:"max=120"`
}
