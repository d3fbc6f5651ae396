package repository

import "errors"

// ErrVersionConflict signals a lost compare-and-swap: another request
// persisted the same cart or project since it was read.
var ErrVersionConflict = errors.New("stale write: row version changed")

// ErrNotFound is returned by writes whose WHERE clause matched no rows.
// Reads keep the nil-on-no-rows convention instead.
var ErrNotFound = errors.New("record not found")
