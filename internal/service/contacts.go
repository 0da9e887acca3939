package service

import (
	"context"
	"strings"

	"github.com/corpsite/corpsite/internal/model"
	"github.com/corpsite/corpsite/internal/store"
)

const contactNotFound = "Contact not found"

// ContactService handles contact form submissions and their review status.
type ContactService struct {
	store *store.Store
}

// NewContactService returns a ContactService backed by st.
func NewContactService(st *store.Store) *ContactService {
	return &ContactService{store: st}
}

// Submit stores a new contact submission. The email is lower-cased and the
// status defaults to NEW.
func (s *ContactService) Submit(ctx context.Context, in *model.Contact) (*model.Contact, error) {
	if in == nil {
		return nil, invalid("Contact payload is required")
	}
	c := &model.Contact{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Message:   strings.TrimSpace(in.Message),
		Status:    model.ContactStatusNew,
		CreatedAt: timestamp(),
	}
	switch {
	case c.Name == "":
		return nil, invalid("Name is required")
	case c.Email == "":
		return nil, invalid("Email is required")
	case c.Message == "":
		return nil, invalid("Message is required")
	}
	if strings.TrimSpace(in.Status) != "" {
		status, err := NormalizeContactStatus(in.Status)
		if err != nil {
			return nil, err
		}
		c.Status = status
	}

	if err := s.store.CreateContact(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns submissions newest first. A non-empty status is normalized
// and restricts the result to that status.
func (s *ContactService) List(ctx context.Context, status string) ([]model.Contact, error) {
	if strings.TrimSpace(status) == "" {
		return s.store.ListContacts(ctx, "")
	}
	normalized, err := NormalizeContactStatus(status)
	if err != nil {
		return nil, err
	}
	return s.store.ListContacts(ctx, normalized)
}

// UpdateStatus moves a submission to the given status.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) (*model.Contact, error) {
	normalized, err := NormalizeContactStatus(status)
	if err != nil {
		return nil, err
	}
	c, err := s.store.GetContact(ctx, id)
	if err != nil {
		return nil, notFound(err, contactNotFound)
	}
	if err := s.store.UpdateContactStatus(ctx, id, normalized); err != nil {
		return nil, notFound(err, contactNotFound)
	}
	c.Status = normalized
	return c, nil
}

// Delete removes the contact submission with id.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return notFound(s.store.DeleteContact(ctx, id), contactNotFound)
}

// Counts returns the number of submissions per status.
func (s *ContactService) Counts(ctx context.Context) (map[string]int, error) {
	return s.store.CountContactsByStatus(ctx)
}

// NormalizeContactStatus maps user input such as "in progress" or
// "in-progress" onto one of model.ContactStatuses.
func NormalizeContactStatus(status string) (string, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return "", invalid("Status is required")
	}
	normalized := strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(status))
	for _, allowed := range model.ContactStatuses {
		if normalized == allowed {
			return normalized, nil
		}
	}
	return "", invalid("Invalid status. Allowed values: %s", strings.Join(model.ContactStatuses, ", "))
}
