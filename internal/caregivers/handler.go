package caregivers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Handler handles HTTP requests for caregiver records.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new caregivers handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Routes returns a chi router with caregiver admin routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateCaregiver)
	r.Get("/", h.ListCaregivers)
	r.Get("/{caregiverID}", h.GetCaregiver)
	r.Put("/{caregiverID}/availability", h.SetAvailability)
	return r
}

// CreateCaregiver handles POST /admin/caregivers.
func (h *Handler) CreateCaregiver(w http.ResponseWriter, r *http.Request) {
	var req CreateCaregiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create caregiver", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("caregiver created", "id", c.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// GetCaregiver handles GET /admin/caregivers/{caregiverID}.
func (h *Handler) GetCaregiver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "caregiverID")

	c, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, ErrCaregiverNotFound) {
		http.Error(w, "caregiver not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to get caregiver", "error", err, "caregiver_id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// ListCaregiversResponse is the response for listing caregivers.
type ListCaregiversResponse struct {
	Caregivers []*Caregiver `json:"caregivers"`
	Count      int          `json:"count"`
}

// ListCaregivers handles GET /admin/caregivers.
func (h *Handler) ListCaregivers(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Limit: 50}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if r.URL.Query().Get("available") == "true" {
		filter.OnlyAvailable = true
	}
	if r.URL.Query().Get("active") == "true" {
		filter.OnlyActive = true
	}

	list, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list caregivers", "error", err)
		http.Error(w, "failed to list caregivers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListCaregiversResponse{Caregivers: list, Count: len(list)})
}

type setAvailabilityRequest struct {
	Available bool `json:"available"`
}

// SetAvailability handles PUT /admin/caregivers/{caregiverID}/availability.
// Caregivers can also hit this through the caregiver portal for their own record.
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "caregiverID")

	var req setAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetAvailability(r.Context(), id, req.Available); err != nil {
		if errors.Is(err, ErrCaregiverNotFound) {
			http.Error(w, "caregiver not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to set availability", "error", err, "caregiver_id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("caregiver availability updated", "caregiver_id", id, "available", req.Available)
	w.WriteHeader(http.StatusNoContent)
}
