package handler

import (
	"log/slog"
	"net/http"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/server/middleware"
	"github.com/corpsite/corpsite/internal/service"
)

// AuthHandler serves admin login and the current-admin endpoint.
type AuthHandler struct {
	auth   *service.AuthService
	codec  *service.TokenCodec
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, codec *service.TokenCodec, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, codec: codec, logger: logger}
}

// loginRequest is the expected payload for the Login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies admin credentials and returns a bearer token.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	token, err := h.codec.Issue(admin.Email)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "admin login", "email", admin.Email)
	writeJSON(w, http.StatusOK, model.LoginResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(h.codec.TTL().Seconds()),
		Email:     admin.Email,
	})
}

// Me returns the subject of the authenticated request.
// GET /api/admin/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	if p == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeData(w, http.StatusOK, "Authenticated", map[string]interface{}{
		"email":       p.Subject,
		"permissions": p.Permissions,
	})
}
