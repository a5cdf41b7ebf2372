package defensedb

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrNoRowsAffected = errors.New("no rows affected")
	ErrDuplicate      = errors.New("duplicate")
)
