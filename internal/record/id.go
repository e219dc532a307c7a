// Package record defines the immutable task and note values kept by the
// stores, plus the filtered views the front ends render.
package record

import "github.com/google/uuid"

// NewID returns a fresh record identity.
//
// IDs are UUIDv7 so they sort in creation order within one process. They are
// never written to disk: the markdown files carry content only, so every load
// assigns new IDs.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}

	return id.String()
}
