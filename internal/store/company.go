package store

import (
	"context"
	"time"

	"github.com/corpsite/corpsite/internal/model"
)

type companyProfileRow struct {
	ID              string    `db:"id"`
	CompanyName     string    `db:"company_name"`
	About           string    `db:"about"`
	Email           string    `db:"email"`
	Phone           string    `db:"phone"`
	Address         string    `db:"address"`
	SocialLinksJSON string    `db:"social_links_json"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r *companyProfileRow) toModel() *model.CompanyProfile {
	return &model.CompanyProfile{
		ID:          r.ID,
		CompanyName: r.CompanyName,
		About:       r.About,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		SocialLinks: unmarshalLinks(r.SocialLinksJSON),
		UpdatedAt:   r.UpdatedAt,
	}
}

// GetCompanyProfile returns the profile stored under id.
func (s *Store) GetCompanyProfile(ctx context.Context, id string) (*model.CompanyProfile, error) {
	var row companyProfileRow
	if err := s.get(ctx, &row, "company profile", "SELECT * FROM company_profiles WHERE id = ?", id); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// ListCompanyProfiles returns every stored profile, most recently updated
// first. More than one row only exists in databases written before the
// singleton was enforced.
func (s *Store) ListCompanyProfiles(ctx context.Context) ([]model.CompanyProfile, error) {
	var rows []companyProfileRow
	if err := s.selectAll(ctx, &rows, "company profiles",
		"SELECT * FROM company_profiles ORDER BY updated_at DESC, id"); err != nil {
		return nil, err
	}
	profiles := make([]model.CompanyProfile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, *rows[i].toModel())
	}
	return profiles, nil
}

// SaveCompanyProfile writes the profile under its ID, updating the row when
// it exists and inserting it otherwise. UpdatedAt is set to now.
func (s *Store) SaveCompanyProfile(ctx context.Context, p *model.CompanyProfile) error {
	links, err := marshalLinks(p.SocialLinks)
	if err != nil {
		return err
	}
	p.UpdatedAt = now()
	row := &companyProfileRow{
		ID:              p.ID,
		CompanyName:     p.CompanyName,
		About:           p.About,
		Email:           p.Email,
		Phone:           p.Phone,
		Address:         p.Address,
		SocialLinksJSON: links,
		UpdatedAt:       p.UpdatedAt,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.NamedExecContext(ctx, `UPDATE company_profiles SET
		company_name = :company_name, about = :about, email = :email, phone = :phone,
		address = :address, social_links_json = :social_links_json, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return classifyError(err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO company_profiles
			(id, company_name, about, email, phone, address, social_links_json, updated_at)
			VALUES
			(:id, :company_name, :about, :email, :phone, :address, :social_links_json, :updated_at)`, row); err != nil {
			return classifyError(err)
		}
	}
	return tx.Commit()
}

// DeleteCompanyProfilesExcept removes every profile row other than keepID and
// returns how many were removed.
func (s *Store) DeleteCompanyProfilesExcept(ctx context.Context, keepID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM company_profiles WHERE id <> ?"), keepID)
	if err != nil {
		return 0, classifyError(err)
	}
	return result.RowsAffected()
}
