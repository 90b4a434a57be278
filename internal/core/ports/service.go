package ports

import (
	"context"
	"time"

	"github.com/lawmate/account-service/internal/core/domain"
)

// RegisterUserInput carries the validated end-user registration fields.
// Field validation happens at the HTTP boundary; the service trusts it.
type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// RegisterLawyerInput adds the lawyer-only fields.
type RegisterLawyerInput struct {
	RegisterUserInput
	Specialization string
	Experience     int
	Location       string
	BarNumber      string
	Bio            string
}

// LoginResult is what both login paths hand back on success.
type LoginResult struct {
	Token string
	User  domain.PublicUser
}

type AccountService interface {
	RegisterUser(ctx context.Context, in RegisterUserInput) (string, error)
	RegisterLawyer(ctx context.Context, in RegisterLawyerInput) (string, error)
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	LoginWithOTP(ctx context.Context, email string, role domain.Role) (*LoginResult, error)
}

// PasswordHasher is the one-way credential hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// OTPGenerator produces a 6-digit numeric code and its absolute expiry.
// The code stays a string end to end; it is never parsed back to a number.
type OTPGenerator interface {
	Generate() (code string, expiresAt time.Time, err error)
}

// TokenIssuer signs a self-contained bearer token binding identity and role.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}
