package store

import "github.com/google/uuid"

// newID returns a time-ordered UUID v7 string so that ids sort roughly by
// insertion order.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
