package applications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Handler exposes the public submission endpoint and the reviewer workflow.
type Handler struct {
	repo     Repository
	validate *validator.Validate
	logger   *logging.Logger
}

func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	return &Handler{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Routes returns the reviewer-facing routes. Submit is mounted separately
// on the public router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{applicationID}", h.GetByID)
	r.Post("/{applicationID}/review", h.Review)
	return r
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": fieldErrors(verrs),
			})
			return
		}
		writeError(w, http.StatusBadRequest, "validation failed")
		return
	}

	app, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("application submit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit application")
		return
	}

	h.logger.Info("application submitted", "application_id", app.ID, "position", app.Position)
	writeJSON(w, http.StatusCreated, app)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Status: Status(r.URL.Query().Get("status"))}
	apps, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("application list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	if apps == nil {
		apps = []*Application{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": apps, "count": len(apps)})
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "applicationID")
	app, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrApplicationNotFound) {
			writeError(w, http.StatusNotFound, "application not found")
			return
		}
		h.logger.Error("application get", "error", err, "application_id", id)
		writeError(w, http.StatusInternalServerError, "failed to load application")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "applicationID")

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "status must be under_review, approved or rejected")
		return
	}

	app, err := h.repo.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrApplicationNotFound):
			writeError(w, http.StatusNotFound, "application not found")
		case errors.Is(err, ErrIllegalTransition):
			writeError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("application review", "error", err, "application_id", id)
			writeError(w, http.StatusInternalServerError, "failed to review application")
		}
		return
	}

	h.logger.Info("application reviewed", "application_id", app.ID, "status", app.Status)
	writeJSON(w, http.StatusOK, app)
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
