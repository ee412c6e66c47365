package types

import "github.com/google/uuid"

// NewID mints a capture identifier. Centralized here so every record
// constructor (benchmark, journey, static) stamps IDs the same way.
func NewID() string {
	return uuid.NewString()
}
