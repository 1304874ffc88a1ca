// Package id generates identifiers for books and anonymous user identities.
package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "book-V1StGXR8_Z5jdHi6B-myT")
//
// NanoIDs are URL-friendly, compact (21 characters vs UUID's 36),
// and use a larger alphabet for better entropy per character.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
// Use this only when you're certain the system entropy is available,
// or when failure should crash the program (e.g., during initialization).
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// NewUserID generates an anonymous user identifier.
// Format: user_<unix-millis>_<random fragment>. Combining a high-resolution
// timestamp with a random component makes collisions across sessions
// overwhelmingly unlikely, and the timestamp fragment doubles as the seed
// for the default display name.
func NewUserID() string {
	fragment := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("user_%d_%s", time.Now().UnixMilli(), fragment)
}
