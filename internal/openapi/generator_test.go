package openapi

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/corpsite/corpsite/internal/model"
)

// ─── MapGoType Tests ────────────────────────────────────────────────────────

func TestMapGoType(t *testing.T) {
	var ptr *int
	tests := []struct {
		value      interface{}
		wantType   string
		wantFormat string
	}{
		{"", "string", ""},
		{true, "boolean", ""},
		{int(1), "integer", "int64"},
		{int32(1), "integer", "int32"},
		{float64(1), "number", "double"},
		{[]string{}, "array", ""},
		{map[string]string{}, "object", ""},
		{time.Time{}, "string", "date-time"},
		{ptr, "integer", "int64"},
	}
	for _, tt := range tests {
		got := MapGoType(reflect.TypeOf(tt.value))
		if got.Type != tt.wantType || got.Format != tt.wantFormat {
			t.Errorf("MapGoType(%T) = %+v, want {%s %s}", tt.value, got, tt.wantType, tt.wantFormat)
		}
	}
}

// ─── SchemaOf Tests ─────────────────────────────────────────────────────────

func TestSchemaOfUsesJSONNames(t *testing.T) {
	s := SchemaOf(model.Project{}, "id")

	for _, name := range []string{"id", "title", "projectUrl", "imageUrl", "technologies", "createdAt"} {
		if s.Properties[name] == nil {
			t.Errorf("missing property %q", name)
		}
	}
	if s.Properties["ProjectURL"] != nil {
		t.Error("Go field names must not leak into the schema")
	}
	if !s.Properties["id"].Value.ReadOnly {
		t.Error("id should be read-only")
	}
	techs := s.Properties["technologies"].Value
	if techs.Items == nil || !techs.Items.Value.Type.Is("string") {
		t.Errorf("technologies should be an array of strings, got %+v", techs)
	}
}

func TestSchemaOfSkipsHiddenFields(t *testing.T) {
	s := SchemaOf(model.Admin{})
	if s.Properties["password_hash"] != nil || s.Properties["PasswordHash"] != nil {
		t.Error("password hash must not appear in the schema")
	}
	if s.Properties["email"] == nil {
		t.Error("expected email property")
	}
}

func TestSchemaOfMaps(t *testing.T) {
	s := SchemaOf(model.TeamMember{})
	links := s.Properties["socialLinks"].Value
	if links.AdditionalProperties.Schema == nil {
		t.Fatal("socialLinks should declare additionalProperties")
	}
}

// ─── Generate Tests ─────────────────────────────────────────────────────────

func TestGenerateValidates(t *testing.T) {
	doc := Generate("1.2.3", "http://localhost:8080/")
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("generated document is invalid: %v", err)
	}
	if doc.Info.Version != "1.2.3" {
		t.Errorf("version: got %q", doc.Info.Version)
	}
	if doc.Servers[0].URL != "http://localhost:8080" {
		t.Errorf("server URL: got %q", doc.Servers[0].URL)
	}
}

func TestGeneratePaths(t *testing.T) {
	doc := Generate("", "")

	paths := []string{
		"/api/auth/login",
		"/api/admin/me",
		"/api/services",
		"/api/technologies",
		"/api/projects",
		"/api/projects/featured",
		"/api/team",
		"/api/testimonials",
		"/api/company",
		"/api/contact",
		"/api/admin/services",
		"/api/admin/services/{id}",
		"/api/admin/services/{id}/toggle",
		"/api/admin/team/{id}/toggle",
		"/api/admin/company",
		"/api/admin/contacts",
		"/api/admin/contacts/summary",
		"/api/admin/contacts/{id}",
		"/api/admin/contacts/{id}/status",
		"/api/admin/uploads/team-image",
		"/healthz",
		"/readyz",
	}
	for _, p := range paths {
		if doc.Paths.Value(p) == nil {
			t.Errorf("missing path %s", p)
		}
	}
}

func TestGenerateSecurity(t *testing.T) {
	doc := Generate("", "")

	login := doc.Paths.Value("/api/auth/login").Post
	if login.Security != nil {
		t.Error("login must not require a bearer token")
	}
	public := doc.Paths.Value("/api/services").Get
	if public.Security != nil {
		t.Error("public listing must not require a bearer token")
	}

	admin := doc.Paths.Value("/api/admin/services").Post
	if admin.Security == nil || len(*admin.Security) != 1 {
		t.Fatal("admin routes must require bearerAuth")
	}
	if _, ok := (*admin.Security)[0]["bearerAuth"]; !ok {
		t.Error("expected bearerAuth requirement")
	}
	if admin.Responses.Value("401") == nil {
		t.Error("admin routes should document 401")
	}
}

func TestGenerateJSON(t *testing.T) {
	b, err := json.Marshal(Generate("1.0.0", ""))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["openapi"] != "3.0.3" {
		t.Errorf("openapi version: got %v", out["openapi"])
	}
}
