package requests

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carebridge/homecare-platform/internal/caregivers"
	"github.com/carebridge/homecare-platform/internal/patients"
	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Handler handles HTTP requests for the service request workflow.
type Handler struct {
	svc    *Service
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new requests handler.
func NewHandler(svc *Service, repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, repo: repo, logger: logger}
}

// Routes returns a chi router with request routes. Creation is reachable
// from the patient portal; assignment and transitions are admin operations.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateRequest)
	r.Get("/", h.ListRequests)
	r.Get("/{requestID}", h.GetRequest)
	r.Post("/{requestID}/assign", h.AssignCaregiver)
	r.Post("/{requestID}/status", h.UpdateStatus)
	return r
}

// CreateRequest handles POST /requests.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sr, err := h.svc.File(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownService), errors.Is(err, ErrMissingPatient), errors.Is(err, ErrMissingService):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, patients.ErrPatientNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			h.logger.Error("failed to file request", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("service request filed", "id", sr.ID, "service", sr.ServiceSlug)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sr)
}

// GetRequest handles GET /requests/{requestID}.
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "requestID")

	sr, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, ErrRequestNotFound) {
		http.Error(w, "request not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to get request", "error", err, "request_id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sr)
}

// ListRequestsResponse is the response for listing requests.
type ListRequestsResponse struct {
	Requests []*ServiceRequest `json:"requests"`
	Count    int               `json:"count"`
}

// ListRequests handles GET /requests.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Limit: 50}

	q := r.URL.Query()
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	filter.PatientID = q.Get("patient_id")
	filter.CaregiverID = q.Get("caregiver_id")
	filter.Status = Status(q.Get("status"))

	list, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list requests", "error", err)
		http.Error(w, "failed to list requests", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListRequestsResponse{Requests: list, Count: len(list)})
}

type assignRequest struct {
	CaregiverID string `json:"caregiver_id"`
}

// AssignCaregiver handles POST /admin/requests/{requestID}/assign.
func (h *Handler) AssignCaregiver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "requestID")

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CaregiverID == "" {
		http.Error(w, "caregiver_id is required", http.StatusBadRequest)
		return
	}

	sr, err := h.svc.Assign(r.Context(), id, req.CaregiverID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound), errors.Is(err, caregivers.ErrCaregiverNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrIllegalTransition), errors.Is(err, ErrCaregiverUnavailable):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.Error("failed to assign caregiver", "error", err, "request_id", id)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("caregiver assigned", "request_id", sr.ID, "caregiver_id", req.CaregiverID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sr)
}

type updateStatusRequest struct {
	Status Status `json:"status"`
}

// UpdateStatus handles POST /admin/requests/{requestID}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "requestID")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	sr, err := h.svc.Transition(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrIllegalTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.Error("failed to update request status", "error", err, "request_id", id)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sr)
}
