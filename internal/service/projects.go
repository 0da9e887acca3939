package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/store"
)

const projectNotFound = "Project not found"

// ProjectService manages portfolio projects.
type ProjectService struct {
	store *store.Store
}

// NewProjectService returns a ProjectService backed by st.
func NewProjectService(st *store.Store) *ProjectService {
	return &ProjectService{store: st}
}

// Create stores a new active project. The slug is derived from the title.
func (s *ProjectService) Create(ctx context.Context, in *model.Project) (*model.Project, error) {
	p := &model.Project{Active: true, CreatedAt: timestamp()}
	if err := applyProject(p, in); err != nil {
		return nil, err
	}
	if err := s.store.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields of a project. Active state and
// creation time are kept.
func (s *ProjectService) Update(ctx context.Context, id string, in *model.Project) (*model.Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, notFound(err, projectNotFound)
	}
	if err := applyProject(p, in); err != nil {
		return nil, err
	}
	if err := s.store.UpdateProject(ctx, p); err != nil {
		return nil, notFound(err, projectNotFound)
	}
	return p, nil
}

// Toggle flips the active flag of the project with id.
func (s *ProjectService) Toggle(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, notFound(err, projectNotFound)
	}
	p.Active = !p.Active
	if err := s.store.UpdateProject(ctx, p); err != nil {
		return nil, notFound(err, projectNotFound)
	}
	return p, nil
}

// Delete removes the project with id.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return notFound(s.store.DeleteProject(ctx, id), projectNotFound)
}

// ListAll returns every project, newest first.
func (s *ProjectService) ListAll(ctx context.Context) ([]model.Project, error) {
	return s.store.ListProjects(ctx, store.ProjectFilter{})
}

// ListActive returns the published projects, newest first.
func (s *ProjectService) ListActive(ctx context.Context) ([]model.Project, error) {
	return s.store.ListProjects(ctx, store.ProjectFilter{ActiveOnly: true})
}

// ListFeatured returns projects that are both featured and active.
func (s *ProjectService) ListFeatured(ctx context.Context) ([]model.Project, error) {
	return s.store.ListProjects(ctx, store.ProjectFilter{ActiveOnly: true, FeaturedOnly: true})
}

func applyProject(dst, in *model.Project) error {
	if in == nil {
		return invalid("Project payload is required")
	}
	dst.Title = strings.TrimSpace(in.Title)
	dst.Description = strings.TrimSpace(in.Description)
	dst.Technologies = normalizeList(in.Technologies)
	dst.ProjectURL = strings.TrimSpace(in.ProjectURL)
	dst.ImageURL = strings.TrimSpace(in.ImageURL)
	dst.Featured = in.Featured
	if dst.Title == "" {
		return invalid("Title is required")
	}
	dst.Slug = slug.Make(dst.Title)
	return nil
}
