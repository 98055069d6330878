// Package entity defines the URL mapping served by the shortener and the
// errors shared between its layers.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrShortCodeExists is returned when a short code is already taken by another mapping.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when no mapping exists for the requested short code.
	ErrURLNotFound = errors.New("url not found")
)

// URL maps a short code to the original URL it redirects to.
// A mapping is never modified after it has been stored.
type URL struct {
	ID          int64     // ID is assigned by the database.
	ShortCode   string    // ShortCode is the public lookup key, unique across all mappings.
	OriginalURL string    // OriginalURL is the redirect target, stored exactly as submitted.
	CreatedAt   time.Time // CreatedAt is the time the mapping was stored.
}
