package model

import "time"

// Testimonial ratings are on a five star scale.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Testimonial is a client quote shown on the public site.
type Testimonial struct {
	ID         string    `json:"id" db:"id"`
	ClientName string    `json:"clientName" db:"client_name"`
	ClientRole string    `json:"clientRole" db:"client_role"`
	Message    string    `json:"message" db:"message"`
	Rating     int       `json:"rating" db:"rating"`
	PhotoURL   string    `json:"photoUrl" db:"photo_url"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
