package store

import (
	"context"

	"github.com/corpsite/corpsite/internal/model"
)

// CreateTestimonial inserts a testimonial. An empty ID is generated.
func (s *Store) CreateTestimonial(ctx context.Context, t *model.Testimonial) error {
	if t.ID == "" {
		t.ID = newID()
	}
	const q = `INSERT INTO testimonials
		(id, client_name, client_role, message, rating, photo_url, active, created_at)
		VALUES
		(:id, :client_name, :client_role, :message, :rating, :photo_url, :active, :created_at)`
	return s.namedExec(ctx, "insert testimonial", q, t, false)
}

// GetTestimonial returns a testimonial by ID.
func (s *Store) GetTestimonial(ctx context.Context, id string) (*model.Testimonial, error) {
	var t model.Testimonial
	if err := s.get(ctx, &t, "testimonial", "SELECT * FROM testimonials WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTestimonial saves every mutable column of an existing testimonial.
func (s *Store) UpdateTestimonial(ctx context.Context, t *model.Testimonial) error {
	const q = `UPDATE testimonials SET
		client_name = :client_name, client_role = :client_role, message = :message,
		rating = :rating, photo_url = :photo_url, active = :active
		WHERE id = :id`
	return s.namedExec(ctx, "update testimonial", q, t, true)
}

// DeleteTestimonial removes a testimonial by ID.
func (s *Store) DeleteTestimonial(ctx context.Context, id string) error {
	return s.exec(ctx, "delete testimonial", "DELETE FROM testimonials WHERE id = ?", true, id)
}

// ListTestimonials returns testimonials newest first, optionally active only.
func (s *Store) ListTestimonials(ctx context.Context, activeOnly bool) ([]model.Testimonial, error) {
	q := "SELECT * FROM testimonials"
	var args []interface{}
	if activeOnly {
		q += " WHERE active = ?"
		args = append(args, true)
	}
	q += " ORDER BY created_at DESC, id DESC"

	items := []model.Testimonial{}
	if err := s.selectAll(ctx, &items, "testimonials", q, args...); err != nil {
		return nil, err
	}
	return items, nil
}
