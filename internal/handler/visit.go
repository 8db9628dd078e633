package handler

import (
	"log/slog"
	"net/http"

	"github.com/folio/folio/internal/handler/dto"
	"github.com/folio/folio/internal/service"
)

// VisitHandler handles visit tracking requests.
type VisitHandler struct {
	svc    *service.VisitService
	logger *slog.Logger
}

// NewVisitHandler creates a new VisitHandler.
func NewVisitHandler(svc *service.VisitService, logger *slog.Logger) *VisitHandler {
	return &VisitHandler{
		svc:    svc,
		logger: logger,
	}
}

// Record handles POST /api/visit. An empty body records an anonymous visit.
func (h *VisitHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.VisitRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeDecodeError(w, err)
		return
	}

	summary, err := h.svc.RecordVisit(r.Context(), service.VisitInput{
		VisitorID: req.VisitorID,
		Page:      req.Page,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToVisitResponse(summary))
}

// Stats handles GET /api/stats.
func (h *VisitHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.svc.GetStats(r.Context())
	writeJSON(w, http.StatusOK, dto.ToStatsResponse(stats))
}
