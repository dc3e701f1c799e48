package tripdb

import "errors"

// Sentinel errors for the repository layer. Infrastructure signals only; the
// service layer decides whether a miss is a domain failure.
var (
	ErrNotFound       = errors.New("trip record not found")
	ErrNoRowsAffected = errors.New("no rows affected")
)
