package userdb

import "errors"

// Sentinel errors for the user repository layer. They describe row-level
// outcomes; the service decides which domain error each one becomes.
var (
	// ErrNotFound indicates the requested user or game account does not exist.
	ErrNotFound = errors.New("user record not found")

	// ErrNoRowsAffected indicates an UPDATE/DELETE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")

	// ErrDuplicate indicates a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate user record")
)
