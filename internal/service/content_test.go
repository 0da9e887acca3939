package service

import (
	"context"
	"errors"
	"testing"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/store"
)

func TestOfferingLifecycle(t *testing.T) {
	svc := NewOfferingService(newTestStore(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.ServiceOffering{Title: "  Cloud  ", Description: " Migration "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "Cloud" || created.Description != "Migration" {
		t.Errorf("fields not trimmed: %+v", created)
	}
	if !created.Active {
		t.Error("new services must be active")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	toggled, err := svc.Toggle(ctx, created.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if toggled.Active {
		t.Error("toggle should deactivate")
	}
	active, _ := svc.ListActive(ctx)
	if len(active) != 0 {
		t.Errorf("got %d active services, want 0", len(active))
	}

	updated, err := svc.Update(ctx, created.ID, &model.ServiceOffering{Title: "Cloud Ops"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Active {
		t.Error("update must not change active state")
	}

	_, err = svc.Update(ctx, "missing", &model.ServiceOffering{Title: "x"})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Message != "Service not found" {
		t.Errorf("got %v, want NotFoundError(Service not found)", err)
	}
	if !errors.Is(err, store.ErrNotFound) {
		t.Error("NotFoundError should unwrap to store.ErrNotFound")
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.As(err, &nf) {
		t.Errorf("second delete: got %v, want NotFoundError", err)
	}
}

func TestRequiredFields(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{"service title", func() error {
			_, err := NewOfferingService(st).Create(ctx, &model.ServiceOffering{Title: "  "})
			return err
		}, "Title is required"},
		{"technology name", func() error {
			_, err := NewTechnologyService(st).Create(ctx, &model.Technology{})
			return err
		}, "Name is required"},
		{"project title", func() error {
			_, err := NewProjectService(st).Create(ctx, &model.Project{})
			return err
		}, "Title is required"},
		{"team name", func() error {
			_, err := NewTeamService(st).Create(ctx, &model.TeamMember{})
			return err
		}, "Name is required"},
		{"testimonial client", func() error {
			_, err := NewTestimonialService(st).Create(ctx, &model.Testimonial{Message: "Great"})
			return err
		}, "Client name is required"},
		{"testimonial rating", func() error {
			_, err := NewTestimonialService(st).Create(ctx, &model.Testimonial{ClientName: "Ann", Message: "Great", Rating: 6})
			return err
		}, "Rating must be between 1 and 5"},
		{"nil payload", func() error {
			_, err := NewTechnologyService(st).Create(ctx, nil)
			return err
		}, "Technology payload is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *ValidationError
			err := tt.call()
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want ValidationError", err)
			}
			if verr.Message != tt.want {
				t.Errorf("message: got %q, want %q", verr.Message, tt.want)
			}
		})
	}
}

func TestTestimonialDefaultRating(t *testing.T) {
	svc := NewTestimonialService(newTestStore(t))
	got, err := svc.Create(context.Background(), &model.Testimonial{ClientName: "Ann", Message: "Great"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Rating != model.DefaultRating {
		t.Errorf("rating: got %d, want %d", got.Rating, model.DefaultRating)
	}
}

func TestProjectSlugAndFeatured(t *testing.T) {
	svc := NewProjectService(newTestStore(t))
	ctx := context.Background()

	p, err := svc.Create(ctx, &model.Project{
		Title:        "Hello World App",
		Technologies: []string{" Go ", "", "React"},
		Featured:     true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Slug != "hello-world-app" {
		t.Errorf("slug: got %q", p.Slug)
	}
	if len(p.Technologies) != 2 || p.Technologies[0] != "Go" {
		t.Errorf("technologies: got %v", p.Technologies)
	}

	if _, err := svc.Create(ctx, &model.Project{Title: "Internal tool"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	featured, err := svc.ListFeatured(ctx)
	if err != nil {
		t.Fatalf("ListFeatured: %v", err)
	}
	if len(featured) != 1 || featured[0].ID != p.ID {
		t.Fatalf("featured: got %+v", featured)
	}

	// Deactivated projects drop out of the featured list.
	if _, err := svc.Toggle(ctx, p.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	featured, _ = svc.ListFeatured(ctx)
	if len(featured) != 0 {
		t.Errorf("got %d featured projects after deactivation, want 0", len(featured))
	}
}

func TestTeamSocialLinksNormalized(t *testing.T) {
	svc := NewTeamService(newTestStore(t))
	m, err := svc.Create(context.Background(), &model.TeamMember{
		Name:        "Ada",
		SocialLinks: map[string]string{" github ": " https://github.com/ada ", "  ": "dropped"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(m.SocialLinks) != 1 || m.SocialLinks["github"] != "https://github.com/ada" {
		t.Errorf("links: got %v", m.SocialLinks)
	}
}

func TestCompanyProfile(t *testing.T) {
	st := newTestStore(t)
	svc := NewCompanyService(st, nil)
	ctx := context.Background()

	empty, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if empty.CompanyName != "" || empty.ID != model.CompanyProfileID {
		t.Errorf("expected empty profile, got %+v", empty)
	}

	// A profile stored under another id is returned as a fallback.
	if err := st.SaveCompanyProfile(ctx, &model.CompanyProfile{ID: "legacy", CompanyName: "Legacy Co"}); err != nil {
		t.Fatalf("SaveCompanyProfile: %v", err)
	}
	fallback, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fallback.CompanyName != "Legacy Co" {
		t.Errorf("fallback: got %+v", fallback)
	}

	saved, err := svc.SaveOrUpdate(ctx, &model.CompanyProfile{
		CompanyName: " Acme ",
		SocialLinks: map[string]string{"twitter": " @acme ", "": "x"},
	})
	if err != nil {
		t.Fatalf("SaveOrUpdate: %v", err)
	}
	if saved.ID != model.CompanyProfileID || saved.CompanyName != "Acme" {
		t.Errorf("saved: got %+v", saved)
	}
	if len(saved.SocialLinks) != 1 || saved.SocialLinks["twitter"] != "@acme" {
		t.Errorf("links: got %v", saved.SocialLinks)
	}

	all, _ := st.ListCompanyProfiles(ctx)
	if len(all) != 1 {
		t.Fatalf("got %d profiles after save, want exactly 1", len(all))
	}

	if _, err := svc.SaveOrUpdate(ctx, &model.CompanyProfile{CompanyName: "Acme Ltd"}); err != nil {
		t.Fatalf("SaveOrUpdate again: %v", err)
	}
	got, _ := svc.Get(ctx)
	if got.CompanyName != "Acme Ltd" {
		t.Errorf("got %q after update", got.CompanyName)
	}
}

func TestNormalizeContactStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr string
	}{
		{"new", "NEW", ""},
		{" in progress ", "IN_PROGRESS", ""},
		{"in-progress", "IN_PROGRESS", ""},
		{"Resolved", "RESOLVED", ""},
		{"", "", "Status is required"},
		{"   ", "", "Status is required"},
		{"closed", "", "Invalid status. Allowed values: NEW, IN_PROGRESS, RESOLVED"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeContactStatus(tt.in)
			if tt.wantErr != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Message != tt.wantErr {
					t.Fatalf("got %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContactSubmitAndReview(t *testing.T) {
	svc := NewContactService(newTestStore(t))
	ctx := context.Background()

	c, err := svc.Submit(ctx, &model.Contact{Name: " Bob ", Email: " Bob@Example.COM ", Message: "Hi"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if c.Email != "bob@example.com" || c.Status != model.ContactStatusNew {
		t.Errorf("unexpected contact %+v", c)
	}

	if _, err := svc.Submit(ctx, &model.Contact{Name: "Eve", Email: "eve@example.com"}); err == nil {
		t.Error("expected validation error for missing message")
	}

	updated, err := svc.UpdateStatus(ctx, c.ID, "in progress")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != model.ContactStatusInProgress {
		t.Errorf("status: got %q", updated.Status)
	}

	list, err := svc.List(ctx, "in-progress")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d in-progress contacts, want 1", len(list))
	}
	if _, err := svc.List(ctx, "bogus"); err == nil {
		t.Error("expected error for unknown status filter")
	}

	_, err = svc.UpdateStatus(ctx, "missing", "NEW")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Message != "Contact not found" {
		t.Errorf("got %v, want Contact not found", err)
	}

	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
