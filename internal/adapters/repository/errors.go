package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("identity not found")
	ErrInvalidLimit = errors.New("invalid ranking limit")
)
