package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrColumnNotFound is returned when a column is not found
	ErrColumnNotFound = errors.New("column not found")

	// ErrTicketNotFound is returned when a ticket is not found,
	// or no longer belongs to the column the caller named
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrBoardExists is returned when the user already owns a board
	ErrBoardExists = errors.New("user already has a board")

	// ErrOrderMismatch is returned when a submitted order list is not a
	// permutation of the parent's current children
	ErrOrderMismatch = errors.New("order list does not match current children")

	// ErrVersionConflict is returned when the caller's order version is
	// stale, meaning the parent changed since the caller read it
	ErrVersionConflict = errors.New("order version conflict")
)
