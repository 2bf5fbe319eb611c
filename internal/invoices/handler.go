package invoices

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carebridge/homecare-platform/internal/requests"
	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Handler exposes invoice generation and lookup endpoints.
type Handler struct {
	generator *Generator
	requests  requests.Repository
	repo      Repository
	logger    *logging.Logger
}

func NewHandler(generator *Generator, reqRepo requests.Repository, repo Repository, logger *logging.Logger) *Handler {
	return &Handler{generator: generator, requests: reqRepo, repo: repo, logger: logger}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/generate", h.Generate)
	r.Get("/patient/{patientID}", h.ListByPatient)
	r.Get("/{invoiceID}", h.GetByID)
	return r
}

type generateRequest struct {
	RequestID  string `json:"request_id"`
	PeriodDays int    `json:"period_days"`
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RequestID == "" {
		writeError(w, http.StatusBadRequest, "request_id is required")
		return
	}

	sr, err := h.requests.GetByID(r.Context(), req.RequestID)
	if err != nil {
		if errors.Is(err, requests.ErrRequestNotFound) {
			writeError(w, http.StatusNotFound, "service request not found")
			return
		}
		h.logger.Error("invoice generate: load request", "error", err, "request_id", req.RequestID)
		writeError(w, http.StatusInternalServerError, "failed to generate invoice")
		return
	}

	inv, err := h.generator.Generate(r.Context(), sr, req.PeriodDays)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPeriod):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUnknownService):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.logger.Error("invoice generate", "error", err, "request_id", req.RequestID)
			writeError(w, http.StatusInternalServerError, "failed to generate invoice")
		}
		return
	}

	if err := h.repo.Create(r.Context(), inv); err != nil {
		h.logger.Error("invoice persist", "error", err, "invoice_id", inv.ID)
		writeError(w, http.StatusInternalServerError, "failed to generate invoice")
		return
	}

	writeJSON(w, http.StatusCreated, inv)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invoiceID")
	inv, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		h.logger.Error("invoice get", "error", err, "invoice_id", id)
		writeError(w, http.StatusInternalServerError, "failed to load invoice")
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")
	invs, err := h.repo.ListByPatient(r.Context(), patientID)
	if err != nil {
		h.logger.Error("invoice list", "error", err, "patient_id", patientID)
		writeError(w, http.StatusInternalServerError, "failed to list invoices")
		return
	}
	if invs == nil {
		invs = []Invoice{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoices": invs, "count": len(invs)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
