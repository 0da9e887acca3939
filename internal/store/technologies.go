package store

import (
	"context"

	"github.com/corpsite/corpsite/internal/model"
)

// CreateTechnology inserts a technology. An empty ID is generated.
func (s *Store) CreateTechnology(ctx context.Context, tech *model.Technology) error {
	if tech.ID == "" {
		tech.ID = newID()
	}
	const q = `INSERT INTO technologies (id, name, icon, active, created_at)
		VALUES (:id, :name, :icon, :active, :created_at)`
	return s.namedExec(ctx, "insert technology", q, tech, false)
}

// GetTechnology returns a technology by ID.
func (s *Store) GetTechnology(ctx context.Context, id string) (*model.Technology, error) {
	var tech model.Technology
	if err := s.get(ctx, &tech, "technology", "SELECT * FROM technologies WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &tech, nil
}

// UpdateTechnology saves every mutable column of an existing technology.
func (s *Store) UpdateTechnology(ctx context.Context, tech *model.Technology) error {
	const q = `UPDATE technologies SET name = :name, icon = :icon, active = :active WHERE id = :id`
	return s.namedExec(ctx, "update technology", q, tech, true)
}

// DeleteTechnology removes a technology by ID.
func (s *Store) DeleteTechnology(ctx context.Context, id string) error {
	return s.exec(ctx, "delete technology", "DELETE FROM technologies WHERE id = ?", true, id)
}

// ListTechnologies returns technologies newest first, optionally active only.
func (s *Store) ListTechnologies(ctx context.Context, activeOnly bool) ([]model.Technology, error) {
	q := "SELECT * FROM technologies"
	var args []interface{}
	if activeOnly {
		q += " WHERE active = ?"
		args = append(args, true)
	}
	q += " ORDER BY created_at DESC, id DESC"

	techs := []model.Technology{}
	if err := s.selectAll(ctx, &techs, "technologies", q, args...); err != nil {
		return nil, err
	}
	return techs, nil
}
