// Package engine holds the event-matching and participation logic. All
// persistence goes through the store gateway; session checking happens
// before any of these operations, in the HTTP middleware.
package engine

import (
	"errors"

	"github.com/radu-bors/Clique-backend/store"
)

var (
	// ErrUnauthorized marks an acting-user mismatch, e.g. accepting a
	// participant on someone else's event.
	ErrUnauthorized = errors.New("not allowed to act on this resource")

	// ErrInvalidInput marks malformed coordinates, inverted age ranges, and
	// empty activity or gender sets.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is part of the error taxonomy but deliberately unused for
	// duplicate join requests, which are allowed.
	ErrConflict = errors.New("conflict")

	// ErrNotFound aliases the store sentinel so callers can match either.
	ErrNotFound = store.ErrNotFound
)

// Engine runs matching and participation against the persistence gateway.
type Engine struct {
	Store store.Store
}

func New(s store.Store) *Engine {
	return &Engine{Store: s}
}
