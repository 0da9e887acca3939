package service

import (
	"context"
	"strings"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/store"
)

const teamMemberNotFound = "Team member not found"

// TeamService manages the people shown on the team page.
type TeamService struct {
	store *store.Store
}

// NewTeamService returns a TeamService backed by st.
func NewTeamService(st *store.Store) *TeamService {
	return &TeamService{store: st}
}

// Create validates in and stores it as a new, active team member.
func (s *TeamService) Create(ctx context.Context, in *model.TeamMember) (*model.TeamMember, error) {
	m := &model.TeamMember{Active: true, CreatedAt: timestamp()}
	if err := applyTeamMember(m, in); err != nil {
		return nil, err
	}
	if err := s.store.CreateTeamMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the editable fields of the team member with id. The active flag
// and creation time are kept.
func (s *TeamService) Update(ctx context.Context, id string, in *model.TeamMember) (*model.TeamMember, error) {
	m, err := s.store.GetTeamMember(ctx, id)
	if err != nil {
		return nil, notFound(err, teamMemberNotFound)
	}
	if err := applyTeamMember(m, in); err != nil {
		return nil, err
	}
	if err := s.store.UpdateTeamMember(ctx, m); err != nil {
		return nil, notFound(err, teamMemberNotFound)
	}
	return m, nil
}

// Toggle flips the active flag of the team member with id.
func (s *TeamService) Toggle(ctx context.Context, id string) (*model.TeamMember, error) {
	m, err := s.store.GetTeamMember(ctx, id)
	if err != nil {
		return nil, notFound(err, teamMemberNotFound)
	}
	m.Active = !m.Active
	if err := s.store.UpdateTeamMember(ctx, m); err != nil {
		return nil, notFound(err, teamMemberNotFound)
	}
	return m, nil
}

// Delete removes the team member with id.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	return notFound(s.store.DeleteTeamMember(ctx, id), teamMemberNotFound)
}

// ListAll returns every team member, newest first.
func (s *TeamService) ListAll(ctx context.Context) ([]model.TeamMember, error) {
	return s.store.ListTeamMembers(ctx, false)
}

// ListActive returns the published team members, newest first.
func (s *TeamService) ListActive(ctx context.Context) ([]model.TeamMember, error) {
	return s.store.ListTeamMembers(ctx, true)
}

func applyTeamMember(dst, in *model.TeamMember) error {
	if in == nil {
		return invalid("Team member payload is required")
	}
	dst.Name = strings.TrimSpace(in.Name)
	dst.Role = strings.TrimSpace(in.Role)
	dst.Bio = strings.TrimSpace(in.Bio)
	dst.PhotoURL = strings.TrimSpace(in.PhotoURL)
	dst.SocialLinks = normalizeLinks(in.SocialLinks)
	if dst.Name == "" {
		return invalid("Name is required")
	}
	return nil
}
