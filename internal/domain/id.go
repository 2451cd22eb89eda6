package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LoanIDLength is the length of generated loan identifiers.
const LoanIDLength = 8

// RandomIDGenerator derives short opaque tokens from random UUIDs.
type RandomIDGenerator struct{}

// NewID returns an 8-character token taken from a fresh random UUID.
func (RandomIDGenerator) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:LoanIDLength]
}

// SystemClock reports today's date in UTC, truncated to midnight.
type SystemClock struct{}

// Today returns the current date.
func (SystemClock) Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
