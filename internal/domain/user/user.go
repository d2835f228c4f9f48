// Package user is a read-only view of accounts owned by the authentication
// service. This service never changes users; it reads them for ownership
// checks, listing joins and as the per-user approval lock.
package user

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

type Repository interface {
	// GetByID returns (nil, nil) when the user does not exist.
	GetByID(ctx context.Context, id uint) (*User, error)

	// LockForUpdate takes a row lock on the user inside the current
	// transaction. Returns ErrUserNotFound when the row is missing.
	LockForUpdate(ctx context.Context, id uint) error
}
