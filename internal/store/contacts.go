package store

import (
	"context"

	"github.com/corpsite/corpsite/internal/model"
)

// CreateContact inserts a contact submission. An empty ID is generated.
func (s *Store) CreateContact(ctx context.Context, c *model.Contact) error {
	if c.ID == "" {
		c.ID = newID()
	}
	const q = `INSERT INTO contacts (id, name, email, phone, message, status, created_at)
		VALUES (:id, :name, :email, :phone, :message, :status, :created_at)`
	return s.namedExec(ctx, "insert contact", q, c, false)
}

// GetContact returns a contact submission by ID.
func (s *Store) GetContact(ctx context.Context, id string) (*model.Contact, error) {
	var c model.Contact
	if err := s.get(ctx, &c, "contact", "SELECT * FROM contacts WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateContactStatus sets the status of a contact submission. The status
// must already be normalized.
func (s *Store) UpdateContactStatus(ctx context.Context, id, status string) error {
	return s.exec(ctx, "update contact status",
		"UPDATE contacts SET status = ? WHERE id = ?", true, status, id)
}

// DeleteContact removes a contact submission by ID.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	return s.exec(ctx, "delete contact", "DELETE FROM contacts WHERE id = ?", true, id)
}

// ListContacts returns contact submissions newest first. A non-empty status
// restricts the result to that status.
func (s *Store) ListContacts(ctx context.Context, status string) ([]model.Contact, error) {
	q := "SELECT * FROM contacts"
	var args []interface{}
	if status != "" {
		q += " WHERE status = ?"
		args = append(args, status)
	}
	q += " ORDER BY created_at DESC, id DESC"

	contacts := []model.Contact{}
	if err := s.selectAll(ctx, &contacts, "contacts", q, args...); err != nil {
		return nil, err
	}
	return contacts, nil
}

// CountContactsByStatus returns the number of submissions in each status.
func (s *Store) CountContactsByStatus(ctx context.Context) (map[string]int, error) {
	type row struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}
	var rows []row
	if err := s.selectAll(ctx, &rows, "contact counts",
		"SELECT status, COUNT(*) AS n FROM contacts GROUP BY status"); err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(model.ContactStatuses))
	for _, st := range model.ContactStatuses {
		counts[st] = 0
	}
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
