package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/store"
)

// CompanyService manages the singleton company profile.
type CompanyService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCompanyService returns a CompanyService backed by st.
func NewCompanyService(st *store.Store, logger *slog.Logger) *CompanyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyService{store: st, logger: logger}
}

// Get returns the company profile. When the fixed-id record is absent any
// stored profile is returned instead, and when none exists an empty profile
// is returned.
func (s *CompanyService) Get(ctx context.Context) (*model.CompanyProfile, error) {
	p, err := s.store.GetCompanyProfile(ctx, model.CompanyProfileID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	all, err := s.store.ListCompanyProfiles(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > 0 {
		return &all[0], nil
	}
	return &model.CompanyProfile{ID: model.CompanyProfileID, SocialLinks: map[string]string{}}, nil
}

// SaveOrUpdate writes the profile under the fixed id and removes any other
// profile rows, so at most one profile remains.
func (s *CompanyService) SaveOrUpdate(ctx context.Context, in *model.CompanyProfile) (*model.CompanyProfile, error) {
	if in == nil {
		return nil, invalid("Company info payload is required")
	}
	p := &model.CompanyProfile{
		ID:          model.CompanyProfileID,
		CompanyName: strings.TrimSpace(in.CompanyName),
		About:       strings.TrimSpace(in.About),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		SocialLinks: normalizeLinks(in.SocialLinks),
	}
	if err := s.store.SaveCompanyProfile(ctx, p); err != nil {
		return nil, err
	}

	removed, err := s.store.DeleteCompanyProfilesExcept(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		s.logger.Info("removed duplicate company profiles", "count", removed)
	}
	return p, nil
}
