package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/service"
	"github.com/corpsite/corpsite/internal/store"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// writeJSON serializes v as JSON and writes it to the response with the given
// HTTP status code. The Content-Type header is set to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeData writes a success envelope carrying data.
func writeData(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, model.APIResponse{Success: true, Message: message, Data: data})
}

// writeError writes a failure envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.NewErrorResponse(status, message))
}

// writeServiceError translates a service or store error into a failure
// envelope. Unrecognized errors are logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		verr *service.ValidationError
		nerr *service.NotFoundError
	)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.As(err, &nerr):
		writeError(w, http.StatusNotFound, nerr.Message)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "Resource already exists")
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// readJSON decodes the request body as JSON into v. The body is capped at
// maxJSONBody and closed after decoding regardless of success or failure.
func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v)
}

// pathID returns the trimmed {id} URL parameter.
func pathID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

// queryString extracts a string query parameter.
func queryString(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}

// queryBool extracts a boolean query parameter. Returns false if the parameter
// is missing or not "true"/"1".
func queryBool(r *http.Request, key string) bool {
	val := r.URL.Query().Get(key)
	return val == "true" || val == "1"
}
