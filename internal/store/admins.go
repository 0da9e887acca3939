package store

import (
	"context"

	"github.com/corpsite/corpsite/internal/model"
)

// CreateAdmin inserts a new admin account. The ID, CreatedAt, and UpdatedAt
// fields are populated before insert. The email must already be normalized.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	ts := now()
	if admin.ID == "" {
		admin.ID = newID()
	}
	admin.CreatedAt = ts
	admin.UpdatedAt = ts

	const q = `INSERT INTO admins (id, email, password_hash, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :created_at, :updated_at)`
	return s.namedExec(ctx, "insert admin", q, admin, false)
}

// GetAdminByEmail returns an admin by normalized email address.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := s.get(ctx, &admin, "admin by email", "SELECT * FROM admins WHERE email = ?", email); err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpdateAdminPassword replaces the password hash of the admin with the given
// email.
func (s *Store) UpdateAdminPassword(ctx context.Context, email, passwordHash string) error {
	return s.exec(ctx, "update admin password",
		"UPDATE admins SET password_hash = ?, updated_at = ? WHERE email = ?", true,
		passwordHash, now(), email)
}

// ListAdmins returns all admin accounts ordered by email.
func (s *Store) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := s.selectAll(ctx, &admins, "admins", "SELECT * FROM admins ORDER BY email"); err != nil {
		return nil, err
	}
	return admins, nil
}

// HasAnyAdmin reports whether at least one admin account exists.
func (s *Store) HasAnyAdmin(ctx context.Context) (bool, error) {
	var count int
	if err := s.get(ctx, &count, "admin count", "SELECT COUNT(*) FROM admins"); err != nil {
		return false, err
	}
	return count > 0, nil
}
