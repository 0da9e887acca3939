package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/store"
)

// Default bootstrap admin, used when admin.email and admin.password are not
// configured.
const (
	DefaultAdminEmail    = "admin@gmail.com"
	DefaultAdminPassword = "admin123"
)

// MinPasswordLength is enforced when creating admins from the CLI.
const MinPasswordLength = 8

// dummyHash is compared against when no admin matches the login email, so a
// missing account costs the same as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("corpsite-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// AuthService verifies admin credentials and manages admin accounts.
type AuthService struct {
	store  *store.Store
	logger *slog.Logger
	cost   int
}

// NewAuthService creates an AuthService backed by st.
func NewAuthService(st *store.Store, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{store: st, logger: logger, cost: bcrypt.DefaultCost}
}

// Authenticate checks email and password against the stored admin. Every
// credential failure returns ErrInvalidCredentials; only store failures
// surface as other errors.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.Admin, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.store.GetAdminByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// CreateAdmin hashes password and stores a new admin under the normalized
// email. A duplicate email surfaces as store.ErrConflict.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) (*model.Admin, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, invalid("Email is required")
	}
	if password == "" {
		return nil, invalid("Password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	admin := &model.Admin{Email: email, PasswordHash: string(hash)}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// ResetPassword replaces the password of an existing admin.
func (s *AuthService) ResetPassword(ctx context.Context, email, password string) error {
	if password == "" {
		return invalid("Password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	err = s.store.UpdateAdminPassword(ctx, NormalizeEmail(email), string(hash))
	return notFound(err, "Admin not found")
}

// SeedAdmin creates the bootstrap admin if no admin with that email exists.
// It reports whether an account was created.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	email = NormalizeEmail(email)
	_, err := s.store.GetAdminByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	if _, err := s.CreateAdmin(ctx, email, password); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	s.logger.Info("admin account created", "email", email)
	return true, nil
}
