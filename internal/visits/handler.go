package visits

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Handler handles HTTP requests for visit scheduling.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new visits handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Routes returns a chi router with visit routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ScheduleVisit)
	r.Get("/caregiver/{caregiverID}", h.ListByCaregiver)
	r.Get("/patient/{patientID}", h.ListByPatient)
	r.Post("/{visitID}/status", h.SetStatus)
	return r
}

// ScheduleVisit handles POST /admin/visits.
func (h *Handler) ScheduleVisit(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	v, err := h.repo.Schedule(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrMissingFields) || errors.Is(err, ErrInvalidWindow) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to schedule visit", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("visit scheduled", "id", v.ID, "caregiver_id", v.CaregiverID, "starts_at", v.StartsAt)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(v)
}

// ListVisitsResponse is the response for listing visits.
type ListVisitsResponse struct {
	Visits []*Visit `json:"visits"`
	Count  int      `json:"count"`
}

// ListByCaregiver handles GET /visits/caregiver/{caregiverID}. Used by the
// caregiver portal for the day's schedule.
func (h *Handler) ListByCaregiver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "caregiverID")

	list, err := h.repo.ListByCaregiver(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list visits", "error", err, "caregiver_id", id)
		http.Error(w, "failed to list visits", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListVisitsResponse{Visits: list, Count: len(list)})
}

// ListByPatient handles GET /visits/patient/{patientID}.
func (h *Handler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")

	list, err := h.repo.ListByPatient(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list visits", "error", err, "patient_id", id)
		http.Error(w, "failed to list visits", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListVisitsResponse{Visits: list, Count: len(list)})
}

type setStatusRequest struct {
	Status VisitStatus `json:"status"`
}

// SetStatus handles POST /visits/{visitID}/status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "visitID")

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, ErrVisitNotFound) {
			http.Error(w, "visit not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to set visit status", "error", err, "visit_id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
