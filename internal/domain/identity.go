package domain

import "strings"

// Identity is the pseudonymous local user. There is no account; the ID is
// generated on first use and every personal record is scoped to it.
type Identity struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// DefaultDisplayName derives a starter display name from a user ID of the
// form user_<millis>_<fragment>, using the first six digits of the timestamp
// part. Falls back to "Pengguna_Anonim" for IDs that don't match.
func DefaultDisplayName(userID string) string {
	parts := strings.Split(userID, "_")
	if len(parts) < 2 || parts[1] == "" {
		return "Pengguna_Anonim"
	}
	fragment := parts[1]
	if len(fragment) > 6 {
		fragment = fragment[:6]
	}
	return "Pengguna_" + fragment
}
