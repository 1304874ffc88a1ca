package store

import "fmt"

// DemoLoaded reports whether the starter collection has ever been seeded.
// Emptying the shelf leaves the marker in place, so an empty list stays
// empty; a full data wipe removes it and behaves like a fresh install.
func (s *BadgerStore) DemoLoaded() (bool, error) {
	ok, err := s.exists([]byte(keyDemoLoaded))
	if err != nil {
		return false, fmt.Errorf("failed to read demo marker: %w", err)
	}
	return ok, nil
}

// MarkDemoLoaded records that the starter collection was seeded.
func (s *BadgerStore) MarkDemoLoaded() error {
	if err := s.setRaw([]byte(keyDemoLoaded), []byte("1")); err != nil {
		return fmt.Errorf("failed to write demo marker: %w", err)
	}
	return nil
}

// ClearDemoMarker removes the seed marker. Used by full data wipes.
func (s *BadgerStore) ClearDemoMarker() error {
	if err := s.delete([]byte(keyDemoLoaded)); err != nil {
		return fmt.Errorf("failed to clear demo marker: %w", err)
	}
	return nil
}
