package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/corpsite/corpsite/internal/openapi"
)

// OpenAPIHandler serves the API description. The document does not depend
// on the request, so it is rendered once.
type OpenAPIHandler struct {
	render func() ([]byte, error)
}

// NewOpenAPIHandler creates a new OpenAPIHandler reporting version.
func NewOpenAPIHandler(version string) *OpenAPIHandler {
	return &OpenAPIHandler{
		render: sync.OnceValues(func() ([]byte, error) {
			return json.MarshalIndent(openapi.Generate(version, ""), "", "  ")
		}),
	}
}

// ServeSpec writes the OpenAPI document.
// GET /openapi.json
func (h *OpenAPIHandler) ServeSpec(w http.ResponseWriter, r *http.Request) {
	b, err := h.render()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
