package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/corpsite/corpsite/internal/storage"
)

// DefaultMaxUploadSize caps multipart uploads when no limit is configured.
const DefaultMaxUploadSize = 5 << 20

// UploadHandler accepts admin image uploads.
type UploadHandler struct {
	images  *storage.ImageStore
	maxSize int64
	logger  *slog.Logger
}

// NewUploadHandler creates a new UploadHandler. A maxSize of zero selects
// DefaultMaxUploadSize.
func NewUploadHandler(images *storage.ImageStore, maxSize int64, logger *slog.Logger) *UploadHandler {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &UploadHandler{images: images, maxSize: maxSize, logger: logger}
}

// TeamImage stores the multipart "file" field as a team photo and returns
// its public path and absolute URL.
// POST /api/admin/uploads/team-image
func (h *UploadHandler) TeamImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	path, err := h.images.StoreTeamImage(file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, "Image uploaded successfully", map[string]string{
		"path": path,
		"url":  baseURL(r) + path,
	})
}

// baseURL returns scheme://host of the request, honoring X-Forwarded-Proto.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
