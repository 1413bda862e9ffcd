package domain

import "errors"

// ErrNotFound is returned when a user or product is absent from a catalog.
var ErrNotFound = errors.New("not found")
