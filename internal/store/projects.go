package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corpsite/corpsite/internal/model"
)

// projectRow is the database shape of a project. Technologies are kept as a
// JSON array in a text column so that every supported driver can store them.
type projectRow struct {
	ID               string    `db:"id"`
	Title            string    `db:"title"`
	Slug             string    `db:"slug"`
	Description      string    `db:"description"`
	TechnologiesJSON string    `db:"technologies_json"`
	ProjectURL       string    `db:"project_url"`
	ImageURL         string    `db:"image_url"`
	Featured         bool      `db:"featured"`
	Active           bool      `db:"active"`
	CreatedAt        time.Time `db:"created_at"`
}

func newProjectRow(p *model.Project) (*projectRow, error) {
	techs := p.Technologies
	if techs == nil {
		techs = []string{}
	}
	b, err := json.Marshal(techs)
	if err != nil {
		return nil, fmt.Errorf("marshal technologies: %w", err)
	}
	return &projectRow{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		Description:      p.Description,
		TechnologiesJSON: string(b),
		ProjectURL:       p.ProjectURL,
		ImageURL:         p.ImageURL,
		Featured:         p.Featured,
		Active:           p.Active,
		CreatedAt:        p.CreatedAt,
	}, nil
}

func (r *projectRow) toModel() model.Project {
	p := model.Project{
		ID:           r.ID,
		Title:        r.Title,
		Slug:         r.Slug,
		Description:  r.Description,
		Technologies: []string{},
		ProjectURL:   r.ProjectURL,
		ImageURL:     r.ImageURL,
		Featured:     r.Featured,
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
	}
	if r.TechnologiesJSON != "" {
		_ = json.Unmarshal([]byte(r.TechnologiesJSON), &p.Technologies)
	}
	return p
}

// CreateProject inserts a project. An empty ID is generated.
func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	if p.ID == "" {
		p.ID = newID()
	}
	row, err := newProjectRow(p)
	if err != nil {
		return err
	}
	const q = `INSERT INTO projects
		(id, title, slug, description, technologies_json, project_url, image_url, featured, active, created_at)
		VALUES
		(:id, :title, :slug, :description, :technologies_json, :project_url, :image_url, :featured, :active, :created_at)`
	return s.namedExec(ctx, "insert project", q, row, false)
}

// GetProject returns a project by ID.
func (s *Store) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var row projectRow
	if err := s.get(ctx, &row, "project", "SELECT * FROM projects WHERE id = ?", id); err != nil {
		return nil, err
	}
	p := row.toModel()
	return &p, nil
}

// UpdateProject saves every mutable column of an existing project.
func (s *Store) UpdateProject(ctx context.Context, p *model.Project) error {
	row, err := newProjectRow(p)
	if err != nil {
		return err
	}
	const q = `UPDATE projects SET
		title = :title, slug = :slug, description = :description,
		technologies_json = :technologies_json, project_url = :project_url,
		image_url = :image_url, featured = :featured, active = :active
		WHERE id = :id`
	return s.namedExec(ctx, "update project", q, row, true)
}

// DeleteProject removes a project by ID.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.exec(ctx, "delete project", "DELETE FROM projects WHERE id = ?", true, id)
}

// ProjectFilter narrows a project listing. Zero value lists everything.
type ProjectFilter struct {
	ActiveOnly   bool
	FeaturedOnly bool
}

// ListProjects returns projects newest first, narrowed by filter.
func (s *Store) ListProjects(ctx context.Context, filter ProjectFilter) ([]model.Project, error) {
	q := "SELECT * FROM projects WHERE 1=1"
	var args []interface{}
	if filter.ActiveOnly {
		q += " AND active = ?"
		args = append(args, true)
	}
	if filter.FeaturedOnly {
		q += " AND featured = ?"
		args = append(args, true)
	}
	q += " ORDER BY created_at DESC, id DESC"

	var rows []projectRow
	if err := s.selectAll(ctx, &rows, "projects", q, args...); err != nil {
		return nil, err
	}
	projects := make([]model.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, rows[i].toModel())
	}
	return projects, nil
}
