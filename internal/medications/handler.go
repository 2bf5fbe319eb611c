package medications

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Handler handles HTTP requests for medication records.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new medications handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Routes returns a chi router with medication routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateMedication)
	r.Get("/patient/{patientID}", h.ListByPatient)
	r.Post("/{medicationID}/discontinue", h.Discontinue)
	return r
}

// CreateMedication handles POST /admin/medications.
func (h *Handler) CreateMedication(w http.ResponseWriter, r *http.Request) {
	var req CreateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	m, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create medication", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("medication recorded", "id", m.ID, "patient_id", m.PatientID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

// ListMedicationsResponse is the response for listing medications.
type ListMedicationsResponse struct {
	Medications []*Medication `json:"medications"`
	Count       int           `json:"count"`
}

// ListByPatient handles GET /admin/medications/patient/{patientID}.
func (h *Handler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	list, err := h.repo.ListByPatient(r.Context(), patientID)
	if err != nil {
		h.logger.Error("failed to list medications", "error", err, "patient_id", patientID)
		http.Error(w, "failed to list medications", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListMedicationsResponse{Medications: list, Count: len(list)})
}

type discontinueRequest struct {
	EndDate *time.Time `json:"end_date"`
}

// Discontinue handles POST /admin/medications/{medicationID}/discontinue.
// Omitting end_date discontinues as of now.
func (h *Handler) Discontinue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "medicationID")

	var req discontinueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	end := time.Now().UTC()
	if req.EndDate != nil {
		end = *req.EndDate
	}

	if err := h.repo.Discontinue(r.Context(), id, end); err != nil {
		if errors.Is(err, ErrMedicationNotFound) {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to discontinue medication", "error", err, "medication_id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
