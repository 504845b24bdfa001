package services

import "errors"

// Error taxonomy surfaced to the HTTP layer. Controllers map these to status
// codes; anything else is a 500 with the detail kept server-side.
var (
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("room capacity is full")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrConflict         = errors.New("conflict")
)
