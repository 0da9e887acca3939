package service

import (
	"context"
	"strings"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/store"
)

const serviceNotFound = "Service not found"

// OfferingService manages the services the company offers.
type OfferingService struct {
	store *store.Store
}

// NewOfferingService returns an OfferingService backed by st.
func NewOfferingService(st *store.Store) *OfferingService {
	return &OfferingService{store: st}
}

// Create validates in and stores it as a new, active service.
func (s *OfferingService) Create(ctx context.Context, in *model.ServiceOffering) (*model.ServiceOffering, error) {
	svc := &model.ServiceOffering{Active: true, CreatedAt: timestamp()}
	if err := applyOffering(svc, in); err != nil {
		return nil, err
	}
	if err := s.store.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Update replaces the editable fields of the service with id. The active flag
// and creation time are kept.
func (s *OfferingService) Update(ctx context.Context, id string, in *model.ServiceOffering) (*model.ServiceOffering, error) {
	svc, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, notFound(err, serviceNotFound)
	}
	if err := applyOffering(svc, in); err != nil {
		return nil, err
	}
	if err := s.store.UpdateService(ctx, svc); err != nil {
		return nil, notFound(err, serviceNotFound)
	}
	return svc, nil
}

// Toggle flips the active flag of the service with id.
func (s *OfferingService) Toggle(ctx context.Context, id string) (*model.ServiceOffering, error) {
	svc, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, notFound(err, serviceNotFound)
	}
	svc.Active = !svc.Active
	if err := s.store.UpdateService(ctx, svc); err != nil {
		return nil, notFound(err, serviceNotFound)
	}
	return svc, nil
}

// Delete removes the service with id.
func (s *OfferingService) Delete(ctx context.Context, id string) error {
	return notFound(s.store.DeleteService(ctx, id), serviceNotFound)
}

// ListAll returns every service, newest first.
func (s *OfferingService) ListAll(ctx context.Context) ([]model.ServiceOffering, error) {
	return s.store.ListServices(ctx, false)
}

// ListActive returns the services shown on the public site, newest first.
func (s *OfferingService) ListActive(ctx context.Context) ([]model.ServiceOffering, error) {
	return s.store.ListServices(ctx, true)
}

func applyOffering(dst, in *model.ServiceOffering) error {
	if in == nil {
		return invalid("Service payload is required")
	}
	dst.Title = strings.TrimSpace(in.Title)
	dst.Description = strings.TrimSpace(in.Description)
	dst.Icon = strings.TrimSpace(in.Icon)
	if dst.Title == "" {
		return invalid("Title is required")
	}
	return nil
}
