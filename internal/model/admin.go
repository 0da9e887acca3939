package model

import "time"

// Admin is the single principal type of the site backend. The email is
// stored normalized (trimmed, lower-cased) and is unique. Passwords are
// stored as bcrypt hashes.
type Admin struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // bcrypt hash, never expose
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
