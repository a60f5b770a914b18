package exports

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"plancore/internal/blob"
	"plancore/internal/core"
	"plancore/pkg/domain"
)

// Handler exposes plan CRUD, live results, and export jobs over HTTP.
type Handler struct {
	Service *core.Service
	Exports Scheduler
	Store   blob.Store
}

// NewHandler constructs the HTTP handler.
func NewHandler(svc *core.Service, exports Scheduler, store blob.Store) *Handler {
	return &Handler{Service: svc, Exports: exports, Store: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		writeError(w, http.StatusInternalServerError, "plan service not configured")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/api/v1/plans":
		h.handlePlans(w, r)
	case strings.HasPrefix(path, "/api/v1/plans/"):
		h.handlePlan(w, r, strings.TrimPrefix(path, "/api/v1/plans/"))
	case path == "/api/v1/exports":
		h.handleExportCreate(w, r)
	case strings.HasPrefix(path, "/api/v1/exports/"):
		h.handleExport(w, r, strings.TrimPrefix(path, "/api/v1/exports/"))
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handlePlans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"plans": h.Service.ListPlans(r.Context())})
	case http.MethodPost:
		var plan domain.Plan
		if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
			writeError(w, http.StatusBadRequest, "invalid plan payload")
			return
		}
		created, report, err := h.Service.CreatePlan(r.Context(), plan)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"plan": created, "report": report})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request, remainder string) {
	segments := strings.Split(remainder, "/")
	id := segments[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(segments) == 2 && segments[1] == "results" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		ev, err := h.Service.Evaluate(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"evaluation": ev})
		return
	}
	if len(segments) != 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		plan, err := h.Service.GetPlan(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"plan": plan})
	case http.MethodPut:
		var incoming domain.Plan
		if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
			writeError(w, http.StatusBadRequest, "invalid plan payload")
			return
		}
		if _, err := h.Service.GetPlan(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		updated, report, err := h.Service.UpdatePlan(r.Context(), id, func(p *domain.Plan) error {
			base := p.Base
			*p = incoming
			p.Base = base
			return nil
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"plan": updated, "report": report})
	case http.MethodDelete:
		if _, err := h.Service.GetPlan(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		if _, err := h.Service.DeletePlan(r.Context(), id); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type exportRequest struct {
	PlanID      string   `json:"plan_id"`
	Formats     []string `json:"formats"`
	RequestedBy string   `json:"requested_by"`
}

func (h *Handler) handleExportCreate(w http.ResponseWriter, r *http.Request) {
	if h.Exports == nil {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid export request payload")
		return
	}
	formats := make([]Format, 0, len(req.Formats))
	for _, f := range req.Formats {
		parsed, err := ParseFormat(f)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		formats = append(formats, parsed)
	}
	record, err := h.Exports.EnqueueExport(r.Context(), Input{
		PlanID:      req.PlanID,
		Formats:     formats,
		RequestedBy: req.RequestedBy,
	})
	if err != nil {
		var notFound core.ErrNotFound
		if errors.As(err, &notFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"export": record})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, remainder string) {
	if h.Exports == nil {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	segments := strings.Split(remainder, "/")
	record, ok := h.Exports.GetExport(segments[0])
	if !ok {
		writeError(w, http.StatusNotFound, "export not found")
		return
	}

	if len(segments) == 1 {
		writeJSON(w, http.StatusOK, map[string]any{"export": record})
		return
	}
	if len(segments) != 3 || segments[1] != "artifacts" {
		http.NotFound(w, r)
		return
	}
	h.streamArtifact(w, r, record, segments[2])
}

func (h *Handler) streamArtifact(w http.ResponseWriter, r *http.Request, record Record, artifactID string) {
	if h.Store == nil {
		writeError(w, http.StatusInternalServerError, "artifact store not configured")
		return
	}
	for _, artifact := range record.Artifacts {
		if artifact.ID != artifactID {
			continue
		}
		info, rc, err := h.Store.Get(r.Context(), artifact.Key)
		if err != nil {
			writeError(w, http.StatusNotFound, "artifact payload missing")
			return
		}
		defer rc.Close()
		contentType := info.ContentType
		if contentType == "" {
			contentType = artifact.ContentType
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, rc)
		return
	}
	writeError(w, http.StatusNotFound, "artifact not found")
}

func writeServiceError(w http.ResponseWriter, err error) {
	var notFound core.ErrNotFound
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
