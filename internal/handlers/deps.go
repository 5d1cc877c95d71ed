package handlers

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new prompts.
type IDGenerator interface {
	NewID() string
}

// Clock supplies the timestamps written to createdAt and updatedAt.
type Clock interface {
	Now() time.Time
}

// UUIDGenerator returns random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
