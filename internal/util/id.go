package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a random identifier for records created on this side of the
// wire.
func NewID() string {
	return uuid.NewString()
}

// NewObjectID returns a 24-character hex identifier in the style the backend
// assigns to persisted records.
func NewObjectID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hex[:24]
}
