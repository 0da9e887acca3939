package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/service"
	"github.com/corpsite/corpsite/internal/storage"
	"github.com/corpsite/corpsite/internal/store"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

const (
	testJWTSecret = "test-secret-for-jwt-integration-tests"
	testEmail     = "admin@example.com"
	testPassword  = "supersecretpassword"
)

// testEnv holds all the shared state for integration tests.
type testEnv struct {
	server *Server
	store  *store.Store
	codec  *service.TokenCodec
	images *storage.ImageStore
}

// newTestEnv creates a fresh test environment with an in-memory store and a
// fully wired Server. mutate, when non-nil, adjusts the default config.
func newTestEnv(t *testing.T, mutate ...func(*Config)) *testEnv {
	t.Helper()

	st, err := store.NewStore("") // in-memory SQLite
	if err != nil {
		t.Fatalf("store.NewStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	codec, err := service.NewTokenCodec(testJWTSecret, 0)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	images, err := storage.NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := DefaultConfig()
	cfg.LoginPerMinute = 0
	cfg.ContactPerMinute = 0
	for _, fn := range mutate {
		fn(&cfg)
	}
	srv := New(cfg, st, codec, images, logger)

	return &testEnv{server: srv, store: st, codec: codec, images: images}
}

// seedAdmin creates the default admin account.
func (e *testEnv) seedAdmin(t *testing.T) {
	t.Helper()
	if _, err := e.server.authSvc.SeedAdmin(context.Background(), testEmail, testPassword); err != nil {
		t.Fatalf("seedAdmin: %v", err)
	}
}

// adminToken logs in as the default admin and returns the JWT token string.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	body := jsonBody(t, map[string]string{
		"email":    testEmail,
		"password": testPassword,
	})
	rr := e.do(t, "POST", "/api/auth/login", body, nil)
	assertStatus(t, rr, http.StatusOK)

	var resp model.LoginResponse
	decodeJSON(t, rr, &resp)
	if resp.Token == "" {
		t.Fatal("adminToken: got empty token from login")
	}
	return resp.Token
}

// do executes an HTTP request against the test server and returns the recorder.
// headers is an optional map of header key-value pairs.
func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	e.server.ServeHTTP(rr, req)
	return rr
}

// doAuth executes an authenticated HTTP request using the admin JWT.
func (e *testEnv) doAuth(t *testing.T, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, method, path, body, map[string]string{
		"Authorization": "Bearer " + token,
	})
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("jsonBody: %v", err)
	}
	return buf
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rr.Code, want, rr.Body.String())
	}
}

func assertContentType(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	got := rr.Header().Get("Content-Type")
	if got != want {
		t.Errorf("Content-Type = %q, want %q", got, want)
	}
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decodeJSON: %v; body = %s", err, rr.Body.String())
	}
}

func assertErrorEnvelope(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assertStatus(t, rr, status)
	var resp model.ErrorResponse
	decodeJSON(t, rr, &resp)
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Status != status {
		t.Errorf("envelope status = %d, want %d", resp.Status, status)
	}
	if message != "" && resp.Message != message {
		t.Errorf("message = %q, want %q", resp.Message, message)
	}
}

// signed builds a token with arbitrary claims under the test secret.
func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

// ---------------------------------------------------------------------------
// Health check tests
// ---------------------------------------------------------------------------

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "GET", "/healthz", nil, nil)
	assertStatus(t, rr, http.StatusOK)
	assertContentType(t, rr, "application/json")

	var resp map[string]string
	decodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Errorf("status = %q, want %q", resp["status"], "ok")
	}
}

func TestReadyz(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "GET", "/readyz", nil, nil)
	assertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	decodeJSON(t, rr, &resp)
	if resp["status"] != "ready" {
		t.Errorf("status = %q, want %q", resp["status"], "ready")
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAdminLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	token := env.adminToken(t)
	subject, err := env.codec.VerifySubject(token)
	if err != nil {
		t.Fatalf("VerifySubject: %v", err)
	}
	if subject != testEmail {
		t.Errorf("subject = %q, want %q", subject, testEmail)
	}
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.server.authSvc.CreateAdmin(context.Background(), "x@y.com", "the-right-one"); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	rr := env.do(t, "POST", "/api/auth/login", jsonBody(t, map[string]string{
		"email":    "x@y.com",
		"password": "wrong",
	}), nil)
	assertErrorEnvelope(t, rr, http.StatusUnauthorized, "Invalid credentials")
}

func TestAdminLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	rr := env.do(t, "POST", "/api/auth/login", jsonBody(t, map[string]string{
		"email":    "nobody@example.com",
		"password": testPassword,
	}), nil)
	assertErrorEnvelope(t, rr, http.StatusUnauthorized, "Invalid credentials")
}

func TestAdminLogin_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "POST", "/api/auth/login", strings.NewReader("email=a"), nil)
	assertErrorEnvelope(t, rr, http.StatusBadRequest, "Invalid request body")
}

func TestAdminLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t, func(c *Config) { c.LoginPerMinute = 2 })

	for i := 0; i < 2; i++ {
		rr := env.do(t, "POST", "/api/auth/login", jsonBody(t, map[string]string{"email": "a@b.c", "password": "x"}), nil)
		assertStatus(t, rr, http.StatusUnauthorized)
	}
	rr := env.do(t, "POST", "/api/auth/login", jsonBody(t, map[string]string{"email": "a@b.c", "password": "x"}), nil)
	assertErrorEnvelope(t, rr, http.StatusTooManyRequests, "")

	// Other public routes are not limited.
	assertStatus(t, env.do(t, "GET", "/api/services", nil, nil), http.StatusOK)
}

// ---------------------------------------------------------------------------
// Gate
// ---------------------------------------------------------------------------

func TestGate_PublicPathWithoutHeader(t *testing.T) {
	env := newTestEnv(t)

	// Unrouted but public: the gate lets it through and the router answers.
	rr := env.do(t, "GET", "/api/services/list", nil, nil)
	if rr.Code == http.StatusUnauthorized || rr.Code == http.StatusForbidden {
		t.Fatalf("public path rejected by gate: %d", rr.Code)
	}
	assertErrorEnvelope(t, rr, http.StatusNotFound, "")

	for _, path := range []string{"/api/services", "/api/technologies", "/api/projects", "/api/projects/featured", "/api/team", "/api/testimonials", "/api/company"} {
		assertStatus(t, env.do(t, "GET", path, nil, nil), http.StatusOK)
	}
}

func TestGate_AdminWithoutHeader(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "GET", "/api/admin/contacts", nil, nil)
	assertErrorEnvelope(t, rr, http.StatusUnauthorized, "Unauthorized")
	if rr.Header().Get("WWW-Authenticate") != "" {
		t.Error("expected no WWW-Authenticate header")
	}

	// Encoded separators must not reclassify an admin route as public.
	tests := []struct {
		method string
		path   string
	}{
		{"PUT", "/api/admin/services/..%2F..%2F..%2Fapi%2Fservices"},
		{"DELETE", "/api/admin/contacts/..%2F..%2F..%2Fapi%2Fcontact"},
		{"PATCH", "/api/admin/projects/..%2F..%2F..%2Fapi%2Fprojects/toggle"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := env.do(t, tt.method, tt.path, jsonBody(t, map[string]string{"name": "x"}), nil)
			assertErrorEnvelope(t, rr, http.StatusForbidden, "Access denied")
		})
	}
}

func TestGate_RejectedTokens(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()

	tests := []struct {
		name   string
		header string
	}{
		{"expired", "Bearer " + signed(t, jwt.RegisteredClaims{
			Subject:   testEmail,
			Issuer:    "corpsite",
			IssuedAt:  jwt.NewNumericDate(now.Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
		})},
		{"garbage", "Bearer not-a-token"},
		{"wrong scheme", "Basic YWRtaW46YWRtaW4="},
		{"empty bearer", "Bearer "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, "GET", "/api/admin/contacts", nil, map[string]string{"Authorization": tt.header})
			assertErrorEnvelope(t, rr, http.StatusUnauthorized, "Unauthorized")
		})
	}
}

func TestGate_PreflightBypass(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "OPTIONS", "/api/admin/contacts", nil, nil)
	if rr.Code == http.StatusUnauthorized || rr.Code == http.StatusForbidden {
		t.Fatalf("OPTIONS rejected by gate: %d", rr.Code)
	}
}

func TestGate_DenyByDefault(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)
	token := env.adminToken(t)

	for _, path := range []string{"/", "/api", "/api/servicesx", "/api/internal", "/admin"} {
		t.Run(path, func(t *testing.T) {
			rr := env.doAuth(t, "GET", path, nil, token)
			assertErrorEnvelope(t, rr, http.StatusForbidden, "Access denied")
		})
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)
	token := env.adminToken(t)

	rr := env.doAuth(t, "GET", "/api/admin/me", nil, token)
	assertStatus(t, rr, http.StatusOK)

	var resp struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	decodeJSON(t, rr, &resp)
	if resp.Data.Email != testEmail {
		t.Errorf("email = %q, want %q", resp.Data.Email, testEmail)
	}
}

// ---------------------------------------------------------------------------
// CORS headers test
// ---------------------------------------------------------------------------

func TestCORSHeaders(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "OPTIONS", "/api/admin/services", nil, map[string]string{
		"Origin":                         "http://localhost:5173",
		"Access-Control-Request-Method":  "PUT",
		"Access-Control-Request-Headers": "Authorization,Content-Type",
	})

	if rr.Code < 200 || rr.Code >= 300 {
		t.Errorf("CORS preflight status = %d, want 2xx", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if rr.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("expected credentials to be allowed")
	}

	rr = env.do(t, "OPTIONS", "/api/admin/services", nil, map[string]string{
		"Origin":                        "http://evil.example",
		"Access-Control-Request-Method": "PUT",
	})
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected Access-Control-Allow-Origin %q for unknown origin", got)
	}
}

// ---------------------------------------------------------------------------
// Uploads
// ---------------------------------------------------------------------------

func TestUploadsServed(t *testing.T) {
	env := newTestEnv(t)

	path, err := env.images.StoreTeamImage(strings.NewReader("GIF89a"), "face.gif", "image/gif")
	if err != nil {
		t.Fatalf("StoreTeamImage: %v", err)
	}

	rr := env.do(t, "GET", path, nil, nil)
	assertStatus(t, rr, http.StatusOK)
	if rr.Body.String() != "GIF89a" {
		t.Errorf("body = %q", rr.Body.String())
	}
	if got := rr.Header().Get("Content-Security-Policy"); !strings.Contains(got, "sandbox") {
		t.Errorf("Content-Security-Policy = %q, want sandbox", got)
	}
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}

	rr = env.do(t, "GET", "/uploads/team/", nil, nil)
	assertStatus(t, rr, http.StatusNotFound)
}

// ---------------------------------------------------------------------------
// Full workflow: login -> manage content -> public listing -> contact inbox
// ---------------------------------------------------------------------------

func TestFullWorkflow(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)
	token := env.adminToken(t)

	// Create a testimonial as admin.
	rr := env.doAuth(t, "POST", "/api/admin/testimonials", jsonBody(t, map[string]interface{}{
		"clientName": "Riley",
		"message":    "Shipped on time.",
	}), token)
	assertStatus(t, rr, http.StatusCreated)
	var created struct {
		Data model.Testimonial `json:"data"`
	}
	decodeJSON(t, rr, &created)
	if created.Data.Rating != model.DefaultRating {
		t.Errorf("rating = %d, want default %d", created.Data.Rating, model.DefaultRating)
	}

	// It shows up publicly.
	rr = env.do(t, "GET", "/api/testimonials", nil, nil)
	var public struct {
		Data []model.Testimonial `json:"data"`
	}
	decodeJSON(t, rr, &public)
	if len(public.Data) != 1 {
		t.Fatalf("public testimonials = %d, want 1", len(public.Data))
	}

	// Hide it.
	rr = env.doAuth(t, "PATCH", "/api/admin/testimonials/"+created.Data.ID+"/toggle", nil, token)
	assertStatus(t, rr, http.StatusOK)
	rr = env.do(t, "GET", "/api/testimonials", nil, nil)
	decodeJSON(t, rr, &public)
	if len(public.Data) != 0 {
		t.Errorf("public testimonials after toggle = %d, want 0", len(public.Data))
	}

	// Save the company profile.
	rr = env.doAuth(t, "POST", "/api/admin/company", jsonBody(t, map[string]string{"companyName": "Acme"}), token)
	assertStatus(t, rr, http.StatusOK)

	// A visitor writes in; the admin resolves it.
	rr = env.do(t, "POST", "/api/contact", jsonBody(t, map[string]string{
		"name":    "Sam",
		"email":   "sam@example.com",
		"message": "Quote please",
	}), nil)
	assertStatus(t, rr, http.StatusCreated)
	var contact struct {
		Data model.Contact `json:"data"`
	}
	decodeJSON(t, rr, &contact)

	rr = env.doAuth(t, "PATCH", "/api/admin/contacts/"+contact.Data.ID+"/status", jsonBody(t, map[string]string{"status": "resolved"}), token)
	assertStatus(t, rr, http.StatusOK)

	rr = env.doAuth(t, "GET", "/api/admin/contacts?status=RESOLVED", nil, token)
	var inbox struct {
		Data []model.Contact `json:"data"`
	}
	decodeJSON(t, rr, &inbox)
	if len(inbox.Data) != 1 || inbox.Data[0].Status != model.ContactStatusResolved {
		t.Errorf("unexpected inbox: %+v", inbox.Data)
	}
}

// ---------------------------------------------------------------------------
// Error format
// ---------------------------------------------------------------------------

func TestErrorResponseFormat(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)
	token := env.adminToken(t)

	rr := env.doAuth(t, "PUT", "/api/admin/projects/does-not-exist", jsonBody(t, map[string]string{"title": "X"}), token)
	assertErrorEnvelope(t, rr, http.StatusNotFound, "Project not found")
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "DELETE", "/api/services", nil, nil)
	assertErrorEnvelope(t, rr, http.StatusMethodNotAllowed, "")
}

func TestOpenAPISpec(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "GET", "/openapi.json", nil, nil)
	assertStatus(t, rr, http.StatusOK)
	assertContentType(t, rr, "application/json")
}
