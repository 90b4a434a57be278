package ports

import (
	"context"

	"github.com/lawmate/account-service/internal/core/domain"
)

// UserRepository is the durable account store, keyed by unique email.
type UserRepository interface {
	// FindByEmail returns the account for the email, or
	// domain.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByEmailAndRole returns the account only if both email and role
	// match, or domain.ErrNotFound.
	FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)

	// Create persists a new account. A concurrent insert for the same
	// email loses with domain.ErrDuplicateAccount.
	Create(ctx context.Context, user *domain.User) error

	// MarkVerified atomically flips an unverified account to verified and
	// clears its OTP fields. If the account was already verified (for
	// example by a racing call) it returns domain.ErrAlreadyVerified.
	MarkVerified(ctx context.Context, email string) error
}
