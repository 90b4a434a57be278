package domain

import "errors"

var (
	// ErrDuplicateAccount: an account with the same email already exists.
	ErrDuplicateAccount = errors.New("account with this email already exists")

	// ErrNotFound: no account matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrAlreadyVerified: the account completed OTP verification earlier;
	// verification is one-shot.
	ErrAlreadyVerified = errors.New("account already verified")

	// ErrInvalidOrExpiredOTP covers both a wrong code and an expired one.
	// Callers are deliberately not told which.
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired otp")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password on password login, to resist account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified: password login on an account that never
	// completed OTP verification.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrOTPNotVerified: OTP-assisted login on an unverified account.
	ErrOTPNotVerified = errors.New("otp not verified")

	// ErrMissingParameters: OTP-assisted login without email or role.
	ErrMissingParameters = errors.New("email and role are required")
)
