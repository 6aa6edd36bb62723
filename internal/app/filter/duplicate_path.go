package filter

import (
	"context"
	"path/filepath"
)

// UsedPaths is the generation-scoped set of accepted track paths.
type UsedPaths map[string]struct{}

// NewUsedPaths creates an empty set.
func NewUsedPaths() UsedPaths {
	return make(UsedPaths)
}

// Contains reports whether the path was already accepted.
func (u UsedPaths) Contains(path string) bool {
	_, ok := u[filepath.Clean(path)]
	return ok
}

// Add marks a path as accepted.
func (u UsedPaths) Add(path string) {
	u[filepath.Clean(path)] = struct{}{}
}

// Len returns the number of accepted paths.
func (u UsedPaths) Len() int {
	return len(u)
}

// DuplicatePathFilter rejects files already placed anywhere in the playlist.
type DuplicatePathFilter struct {
	used UsedPaths
}

// NewDuplicatePathFilter creates a duplicate filter over the given set.
func NewDuplicatePathFilter(used UsedPaths) *DuplicatePathFilter {
	return &DuplicatePathFilter{used: used}
}

// Name returns the filter name.
func (f *DuplicatePathFilter) Name() string {
	return "duplicate_track_filter"
}

// Description returns the filter description.
func (f *DuplicatePathFilter) Description() string {
	return "Rejects files already scheduled in an earlier position of the day"
}

// ReturnCodes returns possible return codes.
func (f *DuplicatePathFilter) ReturnCodes() []string {
	return []string{"duplicate_track"}
}

// ValidateConfig validates the filter configuration.
func (f *DuplicatePathFilter) ValidateConfig(settings map[string]any) error {
	// No configuration needed
	return nil
}

// Check checks if the candidate path was already used.
func (f *DuplicatePathFilter) Check(ctx context.Context, c Candidate) Result {
	if f.used.Contains(c.Path) {
		return Reject("duplicate_track")
	}
	return Accept()
}
