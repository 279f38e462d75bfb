package model

import "errors"

// ErrNotFound is returned by stores and caches when the requested
// record or key does not exist.
var ErrNotFound = errors.New("not found")
