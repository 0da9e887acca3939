package service

import (
	"context"
	"strings"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/store"
)

const technologyNotFound = "Technology not found"

// TechnologyService manages the technology stack shown on the site.
type TechnologyService struct {
	store *store.Store
}

// NewTechnologyService returns a TechnologyService backed by st.
func NewTechnologyService(st *store.Store) *TechnologyService {
	return &TechnologyService{store: st}
}

// Create validates in and stores it as a new, active technology.
func (s *TechnologyService) Create(ctx context.Context, in *model.Technology) (*model.Technology, error) {
	tech := &model.Technology{Active: true, CreatedAt: timestamp()}
	if err := applyTechnology(tech, in); err != nil {
		return nil, err
	}
	if err := s.store.CreateTechnology(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

// Update replaces the editable fields of the technology with id. The active flag
// and creation time are kept.
func (s *TechnologyService) Update(ctx context.Context, id string, in *model.Technology) (*model.Technology, error) {
	tech, err := s.store.GetTechnology(ctx, id)
	if err != nil {
		return nil, notFound(err, technologyNotFound)
	}
	if err := applyTechnology(tech, in); err != nil {
		return nil, err
	}
	if err := s.store.UpdateTechnology(ctx, tech); err != nil {
		return nil, notFound(err, technologyNotFound)
	}
	return tech, nil
}

// Toggle flips the active flag of the technology with id.
func (s *TechnologyService) Toggle(ctx context.Context, id string) (*model.Technology, error) {
	tech, err := s.store.GetTechnology(ctx, id)
	if err != nil {
		return nil, notFound(err, technologyNotFound)
	}
	tech.Active = !tech.Active
	if err := s.store.UpdateTechnology(ctx, tech); err != nil {
		return nil, notFound(err, technologyNotFound)
	}
	return tech, nil
}

// Delete removes the technology with id.
func (s *TechnologyService) Delete(ctx context.Context, id string) error {
	return notFound(s.store.DeleteTechnology(ctx, id), technologyNotFound)
}

// ListAll returns every technology, newest first.
func (s *TechnologyService) ListAll(ctx context.Context) ([]model.Technology, error) {
	return s.store.ListTechnologies(ctx, false)
}

// ListActive returns the published technologies, newest first.
func (s *TechnologyService) ListActive(ctx context.Context) ([]model.Technology, error) {
	return s.store.ListTechnologies(ctx, true)
}

func applyTechnology(dst, in *model.Technology) error {
	if in == nil {
		return invalid("Technology payload is required")
	}
	dst.Name = strings.TrimSpace(in.Name)
	dst.Icon = strings.TrimSpace(in.Icon)
	if dst.Name == "" {
		return invalid("Name is required")
	}
	return nil
}
