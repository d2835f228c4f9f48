package usecases

import "context"

// QuotaChecker is satisfied by the entitlement QuotaGuard.
type QuotaChecker interface {
	Check(ctx context.Context, userID uint) error
}

// TransactionRunner is satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
