// Package admin serves the staff dashboard overview built from aggregate
// queries across the platform tables.
package admin

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

// DashboardHandler handles the admin dashboard overview endpoint.
type DashboardHandler struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewDashboardHandler creates an admin dashboard handler.
func NewDashboardHandler(db *sql.DB, logger *logging.Logger) *DashboardHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardHandler{db: db, logger: logger}
}

func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/dashboard", h.GetOverview)
	return r
}

// DashboardOverviewResponse contains the main dashboard metrics.
type DashboardOverviewResponse struct {
	Period         string             `json:"period"`
	Patients       PatientMetrics     `json:"patients"`
	Caregivers     CaregiverMetrics   `json:"caregivers"`
	Requests       RequestMetrics     `json:"requests"`
	Visits         VisitMetrics       `json:"visits"`
	Applications   ApplicationMetrics `json:"applications"`
	PendingActions []PendingAction    `json:"pending_actions"`
}

// PatientMetrics contains patient roster metrics.
type PatientMetrics struct {
	Total       int `json:"total"`
	NewThisWeek int `json:"new_this_week"`
}

// CaregiverMetrics contains caregiver roster metrics.
type CaregiverMetrics struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Available int `json:"available"`
}

// RequestMetrics breaks down service requests by status.
type RequestMetrics struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Assigned   int `json:"assigned"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// VisitMetrics contains scheduled visit metrics.
type VisitMetrics struct {
	Upcoming int `json:"upcoming"`
	ThisWeek int `json:"this_week"`
	Missed   int `json:"missed"`
}

// ApplicationMetrics contains job application metrics.
type ApplicationMetrics struct {
	Submitted   int `json:"submitted"`
	UnderReview int `json:"under_review"`
}

// PendingAction represents an item requiring staff attention.
type PendingAction struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	Link        string `json:"link,omitempty"`
}

// GetOverview returns the main dashboard overview.
// GET /admin/dashboard
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}

	dashboard := DashboardOverviewResponse{Period: period}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)

	// Patient roster
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM patients`,
	).Scan(&dashboard.Patients.Total)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM patients WHERE created_at >= $1`, weekAgo,
	).Scan(&dashboard.Patients.NewThisWeek)

	// Caregiver roster
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM caregivers`,
	).Scan(&dashboard.Caregivers.Total)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM caregivers WHERE active = TRUE`,
	).Scan(&dashboard.Caregivers.Active)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM caregivers WHERE active = TRUE AND available = TRUE`,
	).Scan(&dashboard.Caregivers.Available)

	// Service requests by status
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM service_requests`,
	).Scan(&dashboard.Requests.Total)

	statusCounts := []struct {
		status string
		dst    *int
	}{
		{"pending", &dashboard.Requests.Pending},
		{"assigned", &dashboard.Requests.Assigned},
		{"in_progress", &dashboard.Requests.InProgress},
		{"completed", &dashboard.Requests.Completed},
	}
	for _, sc := range statusCounts {
		h.db.QueryRowContext(r.Context(),
			`SELECT COUNT(*) FROM service_requests WHERE status = $1`, sc.status,
		).Scan(sc.dst)
	}

	// Visits
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM visits WHERE status = 'scheduled' AND starts_at > $1`, now,
	).Scan(&dashboard.Visits.Upcoming)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM visits WHERE starts_at >= $1 AND starts_at < $2`, weekAgo, now,
	).Scan(&dashboard.Visits.ThisWeek)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM visits WHERE status = 'missed'`,
	).Scan(&dashboard.Visits.Missed)

	// Applications
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM applications WHERE status = 'submitted'`,
	).Scan(&dashboard.Applications.Submitted)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM applications WHERE status = 'under_review'`,
	).Scan(&dashboard.Applications.UnderReview)

	dashboard.PendingActions = h.getPendingActions(r)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dashboard); err != nil {
		h.logger.Error("failed to encode dashboard response", "error", err)
	}
}

func (h *DashboardHandler) getPendingActions(r *http.Request) []PendingAction {
	var actions []PendingAction

	var unassigned int
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM service_requests WHERE status = 'pending'`,
	).Scan(&unassigned)
	if unassigned > 0 {
		actions = append(actions, PendingAction{
			Type:        "request",
			Priority:    "high",
			Description: "Service requests awaiting caregiver assignment",
			Count:       unassigned,
			Link:        "/admin/requests",
		})
	}

	var missedVisits int
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM visits WHERE status = 'missed'`,
	).Scan(&missedVisits)
	if missedVisits > 0 {
		actions = append(actions, PendingAction{
			Type:        "visit",
			Priority:    "high",
			Description: "Missed visits need follow-up",
			Count:       missedVisits,
			Link:        "/admin/visits",
		})
	}

	var newApplications int
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM applications WHERE status = 'submitted'`,
	).Scan(&newApplications)
	if newApplications > 0 {
		actions = append(actions, PendingAction{
			Type:        "application",
			Priority:    "medium",
			Description: "New job applications to triage",
			Count:       newApplications,
			Link:        "/reviewer/applications",
		})
	}

	return actions
}
