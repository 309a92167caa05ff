// Package memory provides map-backed implementations of the repository
// contracts, guarded by a RWMutex per store. It backs the unit tests and
// serves as the store when no MongoDB connection is configured, so the
// service can run standalone in development.
//
// Field-level updates accept the same field names the document store uses,
// keeping usecases oblivious to which implementation is wired in.
package memory

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

func addToSet(set []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if slices.Contains(set, id) {
		return set
	}

	return append(set, id)
}

func pullFromSet(set []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(set, func(member uuid.UUID) bool {
		return member == id
	})
}

// sortByID gives map iteration a stable order for listings.
func sortByID[T any](items []T, id func(T) uuid.UUID) {
	slices.SortFunc(items, func(a, b T) int {
		return strings.Compare(id(a).String(), id(b).String())
	})
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}
