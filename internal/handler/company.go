package handler

import (
	"log/slog"
	"net/http"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/service"
)

// CompanyHandler serves the company profile.
type CompanyHandler struct {
	svc    *service.CompanyService
	logger *slog.Logger
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(svc *service.CompanyService, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{svc: svc, logger: logger}
}

// Get returns the company profile, empty if none has been saved.
// GET /api/company, GET /api/admin/company
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "Company info fetched successfully", p)
}

// Save creates or replaces the company profile.
// POST /api/admin/company, PUT /api/admin/company
func (h *CompanyHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in model.CompanyProfile
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := h.svc.SaveOrUpdate(r.Context(), &in)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "Company info saved successfully", p)
}
