package handler

import (
	"log/slog"
	"net/http"

	"github.com/folio/folio/internal/handler/dto"
	"github.com/folio/folio/internal/service"
)

const (
	msgContactAccepted = "Message sent successfully!"
	msgFieldsRequired  = "All fields are required"
)

// ContactHandler handles contact form requests.
type ContactHandler struct {
	svc    *service.ContactService
	logger *slog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		svc:    svc,
		logger: logger,
	}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeDecodeError(w, err)
		return
	}

	if _, err := h.svc.SubmitContact(r.Context(), req.ToInput()); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ContactResponse{
		Success: true,
		Message: msgContactAccepted,
	})
}

// List handles GET /api/contacts. It returns every submission and is meant
// for the site owner only.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListContacts(r.Context()))
}
