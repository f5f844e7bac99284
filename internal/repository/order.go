package repository

import "github.com/google/uuid"

// orderMatches reports whether submitted is a permutation of current.
// A reorder that drops, duplicates, or invents a child ID would silently
// orphan records if applied wholesale, so the repositories reject any
// submitted order that fails this check.
func orderMatches(current, submitted []uuid.UUID) bool {
	if len(current) != len(submitted) {
		return false
	}
	seen := make(map[uuid.UUID]struct{}, len(submitted))
	for _, id := range submitted {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	for _, id := range current {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}
