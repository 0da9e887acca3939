package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/corpsite/corpsite/internal/model"
)

// ---------------------------------------------------------------------------
// RequestID middleware tests
// ---------------------------------------------------------------------------

func TestRequestIDGeneratesUUID(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := GetRequestID(r.Context())
		if id == "" {
			t.Error("expected non-empty request ID in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	respID := rr.Header().Get("X-Request-ID")
	if respID == "" {
		t.Error("expected X-Request-ID in response header")
	}
	// UUID v7 format check: 36 chars with dashes
	if len(respID) != 36 {
		t.Errorf("expected UUID-length request ID, got %q (len=%d)", respID, len(respID))
	}
}

func TestRequestIDPreservesClientID(t *testing.T) {
	clientID := "my-custom-trace-id-123"

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := GetRequestID(r.Context())
		if id != clientID {
			t.Errorf("expected context ID %q, got %q", clientID, id)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", clientID)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	respID := rr.Header().Get("X-Request-ID")
	if respID != clientID {
		t.Errorf("expected response X-Request-ID %q, got %q", clientID, respID)
	}
}

func TestRequestIDReplacesMalformedClientID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"newline injection", "abc\nlevel=ERROR"},
		{"spaces", "trace id"},
		{"too long", strings.Repeat("a", 65)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(RequestIDHeader, tt.id)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got == tt.id {
				t.Errorf("malformed client ID %q was kept", tt.id)
			}
			if len(got) != 36 {
				t.Errorf("expected generated UUID, got %q", got)
			}
		})
	}
}

func TestGetRequestIDEmptyContext(t *testing.T) {
	id := GetRequestID(context.Background())
	if id != "" {
		t.Errorf("expected empty string from bare context, got %q", id)
	}
}

// ---------------------------------------------------------------------------
// Logger middleware tests
// ---------------------------------------------------------------------------

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		path   string
		status int
		level  string
	}{
		{"/api/services", http.StatusOK, "INFO"},
		{"/api/admin/services", http.StatusUnauthorized, "WARN"},
		{"/api/services", http.StatusInternalServerError, "ERROR"},
		{"/healthz", http.StatusOK, "DEBUG"},
		{"/readyz", http.StatusServiceUnavailable, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			handler := RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("body"))
			})))

			req := httptest.NewRequest("GET", tt.path, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			out := buf.String()
			if !strings.Contains(out, "level="+tt.level) {
				t.Errorf("expected level %s in %q", tt.level, out)
			}
			if !strings.Contains(out, "status="+strconv.Itoa(tt.status)) {
				t.Errorf("expected status in %q", out)
			}
			if !strings.Contains(out, "request_id=") || !strings.Contains(out, "bytes=4") {
				t.Errorf("expected request_id and bytes in %q", out)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// RateLimit middleware tests
// ---------------------------------------------------------------------------

func TestRateLimitRejectsOverLimit(t *testing.T) {
	handler := RateLimit(2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
		if i < 2 && last.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, last.Code)
		}
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", last.Code)
	}
	var body model.ErrorResponse
	if err := json.NewDecoder(last.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Status != http.StatusTooManyRequests {
		t.Errorf("unexpected body %+v", body)
	}

	// Another client is unaffected.
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "198.51.100.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("other client: expected 200, got %d", rr.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	handler := RateLimit(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 10; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/contact", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}
}
