package service

import (
	"context"
	"strings"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/store"
)

const testimonialNotFound = "Testimonial not found"

// TestimonialService manages client testimonials.
type TestimonialService struct {
	store *store.Store
}

// NewTestimonialService returns a TestimonialService backed by st.
func NewTestimonialService(st *store.Store) *TestimonialService {
	return &TestimonialService{store: st}
}

// Create validates in and stores it as a new, active testimonial.
func (s *TestimonialService) Create(ctx context.Context, in *model.Testimonial) (*model.Testimonial, error) {
	t := &model.Testimonial{Active: true, CreatedAt: timestamp()}
	if err := applyTestimonial(t, in); err != nil {
		return nil, err
	}
	if err := s.store.CreateTestimonial(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the editable fields of the testimonial with id. The active flag
// and creation time are kept.
func (s *TestimonialService) Update(ctx context.Context, id string, in *model.Testimonial) (*model.Testimonial, error) {
	t, err := s.store.GetTestimonial(ctx, id)
	if err != nil {
		return nil, notFound(err, testimonialNotFound)
	}
	if err := applyTestimonial(t, in); err != nil {
		return nil, err
	}
	if err := s.store.UpdateTestimonial(ctx, t); err != nil {
		return nil, notFound(err, testimonialNotFound)
	}
	return t, nil
}

// Toggle flips the active flag of the testimonial with id.
func (s *TestimonialService) Toggle(ctx context.Context, id string) (*model.Testimonial, error) {
	t, err := s.store.GetTestimonial(ctx, id)
	if err != nil {
		return nil, notFound(err, testimonialNotFound)
	}
	t.Active = !t.Active
	if err := s.store.UpdateTestimonial(ctx, t); err != nil {
		return nil, notFound(err, testimonialNotFound)
	}
	return t, nil
}

// Delete removes the testimonial with id.
func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	return notFound(s.store.DeleteTestimonial(ctx, id), testimonialNotFound)
}

// ListAll returns every testimonial, newest first.
func (s *TestimonialService) ListAll(ctx context.Context) ([]model.Testimonial, error) {
	return s.store.ListTestimonials(ctx, false)
}

// ListActive returns the published testimonials, newest first.
func (s *TestimonialService) ListActive(ctx context.Context) ([]model.Testimonial, error) {
	return s.store.ListTestimonials(ctx, true)
}

func applyTestimonial(dst, in *model.Testimonial) error {
	if in == nil {
		return invalid("Testimonial payload is required")
	}
	dst.ClientName = strings.TrimSpace(in.ClientName)
	dst.ClientRole = strings.TrimSpace(in.ClientRole)
	dst.Message = strings.TrimSpace(in.Message)
	dst.PhotoURL = strings.TrimSpace(in.PhotoURL)
	dst.Rating = in.Rating
	if dst.Rating == 0 {
		dst.Rating = model.DefaultRating
	}
	switch {
	case dst.ClientName == "":
		return invalid("Client name is required")
	case dst.Message == "":
		return invalid("Message is required")
	case dst.Rating < model.MinRating || dst.Rating > model.MaxRating:
		return invalid("Rating must be between %d and %d", model.MinRating, model.MaxRating)
	}
	return nil
}
