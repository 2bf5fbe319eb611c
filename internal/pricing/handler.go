package pricing

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carebridge/homecare-platform/internal/observability/metrics"
	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Handler serves the catalog endpoints: the admin forest read/write and the
// public per-slug customer view.
type Handler struct {
	store   Store
	metrics *metrics.CatalogMetrics
	logger  *logging.Logger
}

// NewHandler creates a new pricing handler. metrics may be nil.
func NewHandler(store Store, m *metrics.CatalogMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, metrics: m, logger: logger}
}

type forestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    []Item `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// GetCatalog handles GET /pricing. Load failures never surface here: the
// store masks them with the default catalog.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Load(r.Context())
	if err != nil {
		h.metrics.ObserveLoad("error")
		h.logger.Error("failed to load pricing catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load pricing"})
		return
	}
	h.metrics.ObserveLoad("ok")
	writeJSON(w, http.StatusOK, forestResponse{Success: true, Data: items})
}

// saveRequest is the admin bulk-replace payload. Data is raw so a non-array
// value can be rejected with a 400 instead of a decode panic.
type saveRequest struct {
	Data json.RawMessage `json:"data"`
}

// SaveCatalog handles POST /admin/pricing: validates the payload is an
// array, stamps timestamps recursively, and replaces the stored forest
// atomically. All-or-nothing; no partial saves.
func (h *Handler) SaveCatalog(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	var items []Item
	if len(req.Data) == 0 || json.Unmarshal(req.Data, &items) != nil || items == nil {
		h.metrics.ObserveSave("invalid")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrInvalidPayload.Error()})
		return
	}

	saved, err := h.store.Save(r.Context(), items)
	if err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			h.metrics.ObserveSave("invalid")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		h.metrics.ObserveSave("error")
		h.logger.Error("failed to save pricing catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save pricing"})
		return
	}

	h.metrics.ObserveSave("ok")
	writeJSON(w, http.StatusOK, forestResponse{
		Success: true,
		Message: "Pricing saved successfully",
		Data:    saved,
	})
}

type customerServiceResponse struct {
	Success bool             `json:"success"`
	Service *CustomerService `json:"service"`
}

// GetServiceBySlug handles GET /services/{serviceSlug}: resolves the slug
// against the stored forest and returns the customer projection.
func (h *Handler) GetServiceBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "serviceSlug")
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "service slug required"})
		return
	}

	items, err := h.store.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load pricing catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load pricing"})
		return
	}

	svc := ResolveSlug(items, slug)
	h.metrics.ObserveSlugLookup(svc != nil)
	if svc == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Service not found"})
		return
	}

	start := time.Now()
	view := TransformService(svc)
	h.metrics.ObserveTransformLatency(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, customerServiceResponse{Success: true, Service: view})
}

// ListCustomerServices handles GET /services: the full public catalog,
// every service projected into the customer shape.
func (h *Handler) ListCustomerServices(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load pricing catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load pricing"})
		return
	}

	start := time.Now()
	views := make([]*CustomerService, 0, len(items))
	for i := range items {
		if items[i].Type.Canonical() != TypeService {
			continue
		}
		views = append(views, TransformService(&items[i]))
	}
	h.metrics.ObserveTransformLatency(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "services": views})
}

// CloneService handles POST /admin/pricing/services/{itemID}/clone:
// deep-copies a
// subtree with fresh ids and appends the copy next to the original. The
// load-mutate-save cycle is not transactional; concurrent edits race.
func (h *Handler) CloneService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemID")

	items, err := h.store.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load pricing catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load pricing"})
		return
	}

	src := FindItem(items, id)
	if src == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: ErrItemNotFound.Error()})
		return
	}

	clone := CloneItem(*src)
	clone.Name = clone.Name + " (Copy)"
	if clone.ParentID == nil {
		items = append(items, clone)
	} else {
		parent := FindItem(items, *clone.ParentID)
		if parent == nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: ErrItemNotFound.Error()})
			return
		}
		clone.SortOrder = len(parent.Children)
		parent.Children = append(parent.Children, clone)
	}

	saved, err := h.store.Save(r.Context(), items)
	if err != nil {
		h.logger.Error("failed to save cloned item", "error", err, "item_id", id)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save pricing"})
		return
	}

	writeJSON(w, http.StatusOK, forestResponse{
		Success: true,
		Message: "Item cloned",
		Data:    saved,
	})
}

// DeleteItem handles DELETE /admin/pricing/items/{itemID}: removes the subtree
// rooted at the id and persists the pruned forest.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemID")

	items, err := h.store.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load pricing catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load pricing"})
		return
	}

	pruned, removed := RemoveItem(items, id)
	if !removed {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: ErrItemNotFound.Error()})
		return
	}

	saved, err := h.store.Save(r.Context(), pruned)
	if err != nil {
		h.logger.Error("failed to save pruned catalog", "error", err, "item_id", id)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save pricing"})
		return
	}

	writeJSON(w, http.StatusOK, forestResponse{
		Success: true,
		Message: "Item deleted",
		Data:    saved,
	})
}
