package handler

import (
	"log/slog"
	"net/http"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/service"
)

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	svc    *service.ContactService
	logger *slog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, logger: logger}
}

// Submit stores a contact form submission.
// POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in model.Contact
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c, err := h.svc.Submit(r.Context(), &in)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, "Message sent successfully", c)
}

// List returns submissions newest first, optionally filtered by ?status=.
// GET /api/admin/contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.List(r.Context(), queryString(r, "status"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "Contacts fetched successfully", contacts)
}

// Summary returns the number of submissions in each status.
// GET /api/admin/contacts/summary
func (h *ContactHandler) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Counts(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "Contact summary fetched successfully", counts)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a submission to a new status.
// PATCH /api/admin/contacts/{id}/status
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c, err := h.svc.UpdateStatus(r.Context(), pathID(r), req.Status)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "Contact status updated successfully", c)
}

// Delete removes a submission.
// DELETE /api/admin/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), pathID(r)); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "Contact deleted successfully", nil)
}
