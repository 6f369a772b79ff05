package repository

import "errors"

var ErrNotFound = errors.New("not found")

// ErrConstraint wraps not-null, foreign key and unique violations.
var ErrConstraint = errors.New("constraint violation")
