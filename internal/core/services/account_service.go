package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/lawmate/account-service/internal/core/domain"
	"github.com/lawmate/account-service/internal/core/ports"
)

// AccountService orchestrates registration, OTP verification and both
// login paths. It holds no state between calls; everything lives in the
// user repository.
type AccountService struct {
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
	otp      ports.OTPGenerator
	issuer   ports.TokenIssuer
	notifier ports.Notifier
	now      func() time.Time
}

var _ ports.AccountService = (*AccountService)(nil)

func NewAccountService(
	userRepo ports.UserRepository,
	hasher ports.PasswordHasher,
	otp ports.OTPGenerator,
	issuer ports.TokenIssuer,
	notifier ports.Notifier,
) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		hasher:   hasher,
		otp:      otp,
		issuer:   issuer,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *AccountService) RegisterUser(ctx context.Context, in ports.RegisterUserInput) (string, error) {
	user := &domain.User{
		ID:        uuid.NewString(),
		Role:      domain.RoleEndUser,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	}
	return s.register(ctx, user, in.Password)
}

func (s *AccountService) RegisterLawyer(ctx context.Context, in ports.RegisterLawyerInput) (string, error) {
	user := &domain.User{
		ID:        uuid.NewString(),
		Role:      domain.RoleLawyer,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Lawyer: &domain.LawyerProfile{
			Specialization: in.Specialization,
			Experience:     in.Experience,
			Location:       in.Location,
			BarNumber:      in.BarNumber,
			Bio:            in.Bio,
		},
	}
	return s.register(ctx, user, in.Password)
}

// register persists the new unverified account and then records the OTP
// email. The record is written before the notification and is NOT rolled
// back if recording the notification fails; the caller sees a generic
// failure while the unverified account remains.
func (s *AccountService) register(ctx context.Context, user *domain.User, password string) (string, error) {
	if _, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
		return "", domain.ErrDuplicateAccount
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	code, expiresAt, err := s.otp.Generate()
	if err != nil {
		return "", err
	}

	now := s.now()
	user.PasswordHash = hash
	user.AgreedToTerms = true
	user.Verified = false
	user.OTPCode = &code
	user.OTPExpiresAt = &expiresAt
	user.CreatedAt = now
	user.UpdatedAt = now

	// Two racing registrations for the same email are settled by the
	// store's uniqueness constraint, not by the lookup above.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	if err := s.notifier.SendOTPEmail(ctx, user.Email, user.FirstName, code); err != nil {
		log.Printf("account: failed to record otp email for %s: %v", user.Email, err)
		return "", err
	}

	return "Signup successful! OTP sent to your email.", nil
}

// VerifyOTP is one-shot: a second call on a verified account always
// fails with ErrAlreadyVerified. The code is compared as text and the
// expiry check is strict, so a code submitted at the expiry instant is
// already expired.
func (s *AccountService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user.Verified {
		return "", domain.ErrAlreadyVerified
	}
	if user.OTPCode == nil || user.OTPExpiresAt == nil {
		return "", domain.ErrInvalidOrExpiredOTP
	}
	if *user.OTPCode != code || !s.now().Before(*user.OTPExpiresAt) {
		return "", domain.ErrInvalidOrExpiredOTP
	}

	if err := s.userRepo.MarkVerified(ctx, email); err != nil {
		return "", err
	}
	return "Email verified successfully", nil
}

// Login checks the password against the stored hash and issues a token.
// Unknown email and wrong password are indistinguishable to the caller;
// an unverified account gets the more specific ErrEmailNotVerified.
func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Verified {
		return nil, domain.ErrEmailNotVerified
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, User: user.Public()}, nil
}

// LoginWithOTP looks the account up by (email, role) and issues a token
// if it completed verification. Despite the name it takes no OTP code;
// it only checks the verified flag recorded by VerifyOTP.
func (s *AccountService) LoginWithOTP(ctx context.Context, email string, role domain.Role) (*ports.LoginResult, error) {
	if email == "" || role == "" {
		return nil, domain.ErrMissingParameters
	}

	user, err := s.userRepo.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		return nil, err
	}
	if !user.Verified {
		return nil, domain.ErrOTPNotVerified
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, User: user.Public()}, nil
}
