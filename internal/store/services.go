package store

import (
	"context"

	"github.com/corpsite/corpsite/internal/model"
)

// CreateService inserts a service offering. An empty ID is generated.
func (s *Store) CreateService(ctx context.Context, svc *model.ServiceOffering) error {
	if svc.ID == "" {
		svc.ID = newID()
	}
	const q = `INSERT INTO services (id, title, description, icon, active, created_at)
		VALUES (:id, :title, :description, :icon, :active, :created_at)`
	return s.namedExec(ctx, "insert service", q, svc, false)
}

// GetService returns a service offering by ID.
func (s *Store) GetService(ctx context.Context, id string) (*model.ServiceOffering, error) {
	var svc model.ServiceOffering
	if err := s.get(ctx, &svc, "service", "SELECT * FROM services WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &svc, nil
}

// UpdateService saves every mutable column of an existing service offering.
func (s *Store) UpdateService(ctx context.Context, svc *model.ServiceOffering) error {
	const q = `UPDATE services SET
		title = :title, description = :description, icon = :icon, active = :active
		WHERE id = :id`
	return s.namedExec(ctx, "update service", q, svc, true)
}

// DeleteService removes a service offering by ID.
func (s *Store) DeleteService(ctx context.Context, id string) error {
	return s.exec(ctx, "delete service", "DELETE FROM services WHERE id = ?", true, id)
}

// ListServices returns service offerings newest first. With activeOnly set,
// inactive entries are skipped.
func (s *Store) ListServices(ctx context.Context, activeOnly bool) ([]model.ServiceOffering, error) {
	q := "SELECT * FROM services"
	var args []interface{}
	if activeOnly {
		q += " WHERE active = ?"
		args = append(args, true)
	}
	q += " ORDER BY created_at DESC, id DESC"

	services := []model.ServiceOffering{}
	if err := s.selectAll(ctx, &services, "services", q, args...); err != nil {
		return nil, err
	}
	return services, nil
}
