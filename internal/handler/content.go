package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corpsite/corpsite/internal/model"
)

// ContentService is the lifecycle every managed content type shares.
type ContentService[T any] interface {
	Create(ctx context.Context, in *T) (*T, error)
	Update(ctx context.Context, id string, in *T) (*T, error)
	Toggle(ctx context.Context, id string) (*T, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]T, error)
	ListActive(ctx context.Context) ([]T, error)
}

// ContentHandler exposes a ContentService over HTTP: a public listing of
// active entries and the admin CRUD routes.
type ContentHandler[T any] struct {
	svc    ContentService[T]
	noun   string // singular, capitalized: "Service"
	plural string // "Services"
	logger *slog.Logger
}

// NewContentHandler creates a ContentHandler. noun and plural name the
// content type in response messages.
func NewContentHandler[T any](svc ContentService[T], noun, plural string, logger *slog.Logger) *ContentHandler[T] {
	return &ContentHandler[T]{svc: svc, noun: noun, plural: plural, logger: logger}
}

// ListPublic returns the active entries, newest first.
// GET /api/{plural}
func (h *ContentHandler[T]) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.ListActive)
}

// ListAdmin returns every entry, newest first. ?active=true limits the
// result to active entries.
// GET /api/admin/{plural}
func (h *ContentHandler[T]) ListAdmin(w http.ResponseWriter, r *http.Request) {
	if queryBool(r, "active") {
		h.list(w, r, h.svc.ListActive)
		return
	}
	h.list(w, r, h.svc.ListAll)
}

// Create adds a new entry.
// POST /api/admin/{plural}
func (h *ContentHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var in T
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	out, err := h.svc.Create(r.Context(), &in)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, h.noun+" created successfully", out)
}

// Update replaces the editable fields of an entry.
// PUT /api/admin/{plural}/{id}
func (h *ContentHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	var in T
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	out, err := h.svc.Update(r.Context(), pathID(r), &in)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, h.noun+" updated successfully", out)
}

// Toggle flips the active flag of an entry.
// PATCH /api/admin/{plural}/{id}/toggle
func (h *ContentHandler[T]) Toggle(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Toggle(r.Context(), pathID(r))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, h.noun+" status updated successfully", out)
}

// Delete removes an entry.
// DELETE /api/admin/{plural}/{id}
func (h *ContentHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), pathID(r)); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, h.noun+" deleted successfully", nil)
}

func (h *ContentHandler[T]) list(w http.ResponseWriter, r *http.Request, fn func(context.Context) ([]T, error)) {
	items, err := fn(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, h.plural+" fetched successfully", items)
}

// ProjectHandler adds the featured listing to the project routes.
type ProjectHandler struct {
	*ContentHandler[model.Project]
	featured func(context.Context) ([]model.Project, error)
}

// FeaturedLister lists featured projects.
type FeaturedLister interface {
	ContentService[model.Project]
	ListFeatured(ctx context.Context) ([]model.Project, error)
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(svc FeaturedLister, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		ContentHandler: NewContentHandler[model.Project](svc, "Project", "Projects", logger),
		featured:       svc.ListFeatured,
	}
}

// ListFeatured returns the featured, active projects.
// GET /api/projects/featured
func (h *ProjectHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	items, err := h.featured(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "Featured projects fetched successfully", items)
}
