// Package shared holds domain errors common to every aggregate.
package shared

import "errors"

// ErrConcurrentModification is returned by repositories when an optimistic
// version check fails because another writer updated the row first.
var ErrConcurrentModification = errors.New("resource was modified concurrently")
