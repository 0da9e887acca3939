package store

import (
	"context"
	"time"

	"github.com/corpsite/corpsite/internal/model"
)

type teamMemberRow struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Role            string    `db:"role"`
	Bio             string    `db:"bio"`
	PhotoURL        string    `db:"photo_url"`
	SocialLinksJSON string    `db:"social_links_json"`
	Active          bool      `db:"active"`
	CreatedAt       time.Time `db:"created_at"`
}

func newTeamMemberRow(m *model.TeamMember) (*teamMemberRow, error) {
	links, err := marshalLinks(m.SocialLinks)
	if err != nil {
		return nil, err
	}
	return &teamMemberRow{
		ID:              m.ID,
		Name:            m.Name,
		Role:            m.Role,
		Bio:             m.Bio,
		PhotoURL:        m.PhotoURL,
		SocialLinksJSON: links,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
	}, nil
}

func (r *teamMemberRow) toModel() model.TeamMember {
	return model.TeamMember{
		ID:          r.ID,
		Name:        r.Name,
		Role:        r.Role,
		Bio:         r.Bio,
		PhotoURL:    r.PhotoURL,
		SocialLinks: unmarshalLinks(r.SocialLinksJSON),
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
	}
}

// CreateTeamMember inserts a team member. An empty ID is generated.
func (s *Store) CreateTeamMember(ctx context.Context, m *model.TeamMember) error {
	if m.ID == "" {
		m.ID = newID()
	}
	row, err := newTeamMemberRow(m)
	if err != nil {
		return err
	}
	const q = `INSERT INTO team_members
		(id, name, role, bio, photo_url, social_links_json, active, created_at)
		VALUES
		(:id, :name, :role, :bio, :photo_url, :social_links_json, :active, :created_at)`
	return s.namedExec(ctx, "insert team member", q, row, false)
}

// GetTeamMember returns a team member by ID.
func (s *Store) GetTeamMember(ctx context.Context, id string) (*model.TeamMember, error) {
	var row teamMemberRow
	if err := s.get(ctx, &row, "team member", "SELECT * FROM team_members WHERE id = ?", id); err != nil {
		return nil, err
	}
	m := row.toModel()
	return &m, nil
}

// UpdateTeamMember saves every mutable column of an existing team member.
func (s *Store) UpdateTeamMember(ctx context.Context, m *model.TeamMember) error {
	row, err := newTeamMemberRow(m)
	if err != nil {
		return err
	}
	const q = `UPDATE team_members SET
		name = :name, role = :role, bio = :bio, photo_url = :photo_url,
		social_links_json = :social_links_json, active = :active
		WHERE id = :id`
	return s.namedExec(ctx, "update team member", q, row, true)
}

// DeleteTeamMember removes a team member by ID.
func (s *Store) DeleteTeamMember(ctx context.Context, id string) error {
	return s.exec(ctx, "delete team member", "DELETE FROM team_members WHERE id = ?", true, id)
}

// ListTeamMembers returns team members newest first, optionally active only.
func (s *Store) ListTeamMembers(ctx context.Context, activeOnly bool) ([]model.TeamMember, error) {
	q := "SELECT * FROM team_members"
	var args []interface{}
	if activeOnly {
		q += " WHERE active = ?"
		args = append(args, true)
	}
	q += " ORDER BY created_at DESC, id DESC"

	var rows []teamMemberRow
	if err := s.selectAll(ctx, &rows, "team members", q, args...); err != nil {
		return nil, err
	}
	members := make([]model.TeamMember, 0, len(rows))
	for i := range rows {
		members = append(members, rows[i].toModel())
	}
	return members, nil
}
