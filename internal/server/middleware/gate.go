package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/service"
)

type contextKeyAuth string

// AuthPrincipalKey is the context key for the authenticated principal.
const AuthPrincipalKey contextKeyAuth = "auth_principal"

// Principal is the authenticated admin making the request. There are no
// granular permissions, so Permissions is always empty.
type Principal struct {
	Subject     string
	Permissions []string
}

// TokenVerifier verifies a bearer token and returns its subject.
type TokenVerifier interface {
	VerifySubject(token string) (string, error)
}

// Gate returns the access-control middleware. For every request it:
//
//  1. passes OPTIONS pre-flight requests through,
//  2. passes public paths through,
//  3. rejects denied paths with 403,
//  4. hands admin paths to RequireBearer.
//
// A rejected request never reaches next.
func Gate(verifier TokenVerifier, policy *RoutePolicy, logger *slog.Logger) func(http.Handler) http.Handler {
	requireBearer := RequireBearer(verifier, logger)
	return func(next http.Handler) http.Handler {
		admin := requireBearer(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			switch policy.Classify(r.URL.EscapedPath()) {
			case RoutePublic:
				next.ServeHTTP(w, r)
			case RouteAdmin:
				admin.ServeHTTP(w, r)
			default:
				writeGateError(w, http.StatusForbidden, "Access denied")
			}
		})
	}
}

// RequireBearer requires "Authorization: Bearer <token>" on every request,
// rejects a missing or invalid token with 401 and attaches the verified
// Principal to the request context.
func RequireBearer(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeGateError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			subject, err := verifier.VerifySubject(token)
			if err != nil {
				logger.Warn("rejected bearer token",
					"reason", service.FailureKind(err),
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
				)
				writeGateError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := WithPrincipal(r.Context(), &Principal{Subject: subject, Permissions: []string{}})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, AuthPrincipalKey, p)
}

// GetPrincipal extracts the authenticated principal from the context.
// Returns nil if no principal is present (i.e., unauthenticated request).
func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(AuthPrincipalKey).(*Principal); ok {
		return p
	}
	return nil
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeGateError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.NewErrorResponse(status, message))
}
