package store

import "errors"

var (
	ErrLocked      = errors.New("a lockfile already exists")
	ErrEmptyKey    = errors.New("empty key")
	ErrKeyNotFound = errors.New("error finding data for the given key")
	ErrKeyMismatch = errors.New("index entry points at a different key")
)
