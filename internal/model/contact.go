package model

import "time"

// Contact submission lifecycle states.
const (
	ContactStatusNew        = "NEW"
	ContactStatusInProgress = "IN_PROGRESS"
	ContactStatusResolved   = "RESOLVED"
)

// ContactStatuses lists the accepted contact states in display order.
var ContactStatuses = []string{
	ContactStatusNew,
	ContactStatusInProgress,
	ContactStatusResolved,
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Message   string    `json:"message" db:"message"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
