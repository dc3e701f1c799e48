package walletdb

import "errors"

var (
	// ErrNotFound is returned when an expense or payment does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoRowsAffected is returned when an update or delete matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)
