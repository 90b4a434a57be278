package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lawmate/account-service/internal/core/domain"
	"github.com/lawmate/account-service/internal/core/ports"
	"github.com/lawmate/account-service/test/mocks"
)

type stubIssuer struct {
	token string
	err   error
}

func (s *stubIssuer) Issue(user *domain.User) (string, error) {
	return s.token, s.err
}

func newTestService(repo *mocks.MockUserRepository, notif *mocks.MockNotifier, otp ports.OTPGenerator) *AccountService {
	return NewAccountService(repo, mocks.FakeHasher{}, otp, &stubIssuer{token: "signed-token"}, notif)
}

func userInput(email string) ports.RegisterUserInput {
	return ports.RegisterUserInput{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     email,
		Phone:     "5551234567",
		Password:  "abc123",
	}
}

func lawyerInput(email string) ports.RegisterLawyerInput {
	return ports.RegisterLawyerInput{
		RegisterUserInput: userInput(email),
		Specialization:    "Family Law",
		Experience:        7,
		Location:          "Pune",
		BarNumber:         "BAR12345",
		Bio:               "A decade of family law practice.",
	}
}

func seedUnverified(repo *mocks.MockUserRepository, email, code string, expiresAt time.Time) *domain.User {
	user := &domain.User{
		ID:           "id-" + email,
		Role:         domain.RoleEndUser,
		FirstName:    "Asha",
		LastName:     "Rao",
		Email:        email,
		Phone:        "5551234567",
		PasswordHash: "hashed:abc123",
		Verified:     false,
		OTPCode:      &code,
		OTPExpiresAt: &expiresAt,
	}
	repo.SeedUser(user)
	return user
}

func seedVerified(repo *mocks.MockUserRepository, email string, role domain.Role) *domain.User {
	user := &domain.User{
		ID:           "id-" + email,
		Role:         role,
		FirstName:    "Asha",
		LastName:     "Rao",
		Email:        email,
		PasswordHash: "hashed:abc123",
		Verified:     true,
	}
	repo.SeedUser(user)
	return user
}

func TestRegisterUser_StoresUnverifiedRecordWithOTP(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	notif := mocks.NewMockNotifier()
	expiresAt := time.Now().Add(10 * time.Minute)
	svc := newTestService(repo, notif, &mocks.StubOTPGenerator{Code: "042137", ExpiresAt: expiresAt})

	msg, err := svc.RegisterUser(context.Background(), userInput("a@x.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Signup successful! OTP sent to your email." {
		t.Errorf("unexpected message: %q", msg)
	}

	stored := repo.Stored("a@x.com")
	if stored == nil {
		t.Fatal("record was not stored")
	}
	if stored.Verified {
		t.Error("new record must start unverified")
	}
	if !stored.AgreedToTerms {
		t.Error("record must carry consent")
	}
	if stored.PasswordHash != "hashed:abc123" {
		t.Errorf("password was not hashed: %q", stored.PasswordHash)
	}
	if stored.OTPCode == nil || *stored.OTPCode != "042137" {
		t.Errorf("stored OTP = %v, want 042137", stored.OTPCode)
	}
	if stored.OTPExpiresAt == nil || !stored.OTPExpiresAt.Equal(expiresAt) {
		t.Errorf("stored expiry = %v, want %v", stored.OTPExpiresAt, expiresAt)
	}
	if stored.Role != domain.RoleEndUser || stored.Lawyer != nil {
		t.Errorf("end-user record carries lawyer payload: %+v", stored.Lawyer)
	}

	if len(notif.Sent) != 1 {
		t.Fatalf("expected 1 OTP email, got %d", len(notif.Sent))
	}
	sent := notif.Sent[0]
	if sent.To != "a@x.com" || sent.FirstName != "Asha" || sent.Code != "042137" {
		t.Errorf("unexpected OTP email: %+v", sent)
	}
}

func TestRegisterLawyer_StoresLawyerPayload(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	svc := newTestService(repo, mocks.NewMockNotifier(), &mocks.StubOTPGenerator{Code: "654321", ExpiresAt: time.Now().Add(10 * time.Minute)})

	if _, err := svc.RegisterLawyer(context.Background(), lawyerInput("lw@x.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.Stored("lw@x.com")
	if stored == nil {
		t.Fatal("record was not stored")
	}
	if stored.Role != domain.RoleLawyer {
		t.Errorf("role = %q, want lawyer", stored.Role)
	}
	if stored.Lawyer == nil {
		t.Fatal("lawyer record missing profile payload")
	}
	if stored.Lawyer.BarNumber != "BAR12345" || stored.Lawyer.Experience != 7 {
		t.Errorf("unexpected lawyer payload: %+v", stored.Lawyer)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	svc := newTestService(repo, mocks.NewMockNotifier(), &mocks.StubOTPGenerator{Code: "111111", ExpiresAt: time.Now().Add(10 * time.Minute)})

	if _, err := svc.RegisterUser(context.Background(), userInput("dup@x.com")); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	// Second attempt fails regardless of which role is used.
	if _, err := svc.RegisterUser(context.Background(), userInput("dup@x.com")); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Errorf("second user registration: got %v, want ErrDuplicateAccount", err)
	}
	if _, err := svc.RegisterLawyer(context.Background(), lawyerInput("dup@x.com")); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Errorf("lawyer registration on same email: got %v, want ErrDuplicateAccount", err)
	}

	if got := len(repo.CreateCalls); got != 1 {
		t.Errorf("store insert attempted %d times, want 1", got)
	}
}

func TestRegister_NotifierFailureKeepsRecord(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	notif := mocks.NewMockNotifier()
	notif.SendError = errors.New("smtp relay down")
	svc := newTestService(repo, notif, &mocks.StubOTPGenerator{Code: "222222", ExpiresAt: time.Now().Add(10 * time.Minute)})

	_, err := svc.RegisterUser(context.Background(), userInput("nf@x.com"))
	if err == nil {
		t.Fatal("expected error when notification cannot be recorded")
	}

	// Best-effort semantics: the record stays even though the caller
	// sees a failure.
	if repo.Stored("nf@x.com") == nil {
		t.Error("record should remain after notifier failure")
	}
}

func TestVerifyOTP(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		seed    func(repo *mocks.MockUserRepository)
		email   string
		code    string
		wantErr error
	}{
		{
			name:    "unknown_email",
			seed:    func(repo *mocks.MockUserRepository) {},
			email:   "ghost@x.com",
			code:    "123456",
			wantErr: domain.ErrNotFound,
		},
		{
			name: "already_verified",
			seed: func(repo *mocks.MockUserRepository) {
				seedVerified(repo, "done@x.com", domain.RoleEndUser)
			},
			email:   "done@x.com",
			code:    "123456",
			wantErr: domain.ErrAlreadyVerified,
		},
		{
			name: "wrong_code",
			seed: func(repo *mocks.MockUserRepository) {
				seedUnverified(repo, "w@x.com", "123456", now.Add(5*time.Minute))
			},
			email:   "w@x.com",
			code:    "000000",
			wantErr: domain.ErrInvalidOrExpiredOTP,
		},
		{
			name: "expired_code",
			seed: func(repo *mocks.MockUserRepository) {
				seedUnverified(repo, "e@x.com", "123456", now.Add(-time.Second))
			},
			email:   "e@x.com",
			code:    "123456",
			wantErr: domain.ErrInvalidOrExpiredOTP,
		},
		{
			name: "exactly_at_expiry_is_expired",
			seed: func(repo *mocks.MockUserRepository) {
				seedUnverified(repo, "b@x.com", "123456", now)
			},
			email:   "b@x.com",
			code:    "123456",
			wantErr: domain.ErrInvalidOrExpiredOTP,
		},
		{
			name: "valid_code_before_expiry",
			seed: func(repo *mocks.MockUserRepository) {
				seedUnverified(repo, "ok@x.com", "123456", now.Add(time.Minute))
			},
			email:   "ok@x.com",
			code:    "123456",
			wantErr: nil,
		},
		{
			name: "leading_zeros_compared_as_text",
			seed: func(repo *mocks.MockUserRepository) {
				seedUnverified(repo, "z@x.com", "012345", now.Add(time.Minute))
			},
			email:   "z@x.com",
			code:    "12345",
			wantErr: domain.ErrInvalidOrExpiredOTP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepository()
			tt.seed(repo)
			svc := newTestService(repo, mocks.NewMockNotifier(), &mocks.StubOTPGenerator{})
			svc.now = func() time.Time { return now }

			msg, err := svc.VerifyOTP(context.Background(), tt.email, tt.code)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				// A failed attempt must leave the record untouched.
				if stored := repo.Stored(tt.email); stored != nil && !stored.Verified && stored.OTPCode == nil {
					t.Error("failed verification cleared the OTP fields")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if msg != "Email verified successfully" {
				t.Errorf("unexpected message: %q", msg)
			}
			stored := repo.Stored(tt.email)
			if !stored.Verified {
				t.Error("record not flipped to verified")
			}
			if stored.OTPCode != nil || stored.OTPExpiresAt != nil {
				t.Error("OTP fields not cleared on verification")
			}
		})
	}
}

func TestVerifyOTP_IsOneShot(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	repo := mocks.NewMockUserRepository()
	seedUnverified(repo, "once@x.com", "123456", now.Add(time.Minute))
	svc := newTestService(repo, mocks.NewMockNotifier(), &mocks.StubOTPGenerator{})
	svc.now = func() time.Time { return now }

	if _, err := svc.VerifyOTP(context.Background(), "once@x.com", "123456"); err != nil {
		t.Fatalf("first verification failed: %v", err)
	}
	if _, err := svc.VerifyOTP(context.Background(), "once@x.com", "123456"); !errors.Is(err, domain.ErrAlreadyVerified) {
		t.Errorf("second verification: got %v, want ErrAlreadyVerified", err)
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		seed     func(repo *mocks.MockUserRepository)
		email    string
		password string
		wantErr  error
	}{
		{
			name: "success",
			seed: func(repo *mocks.MockUserRepository) {
				seedVerified(repo, "v@x.com", domain.RoleEndUser)
			},
			email:    "v@x.com",
			password: "abc123",
		},
		{
			name:     "unknown_email",
			seed:     func(repo *mocks.MockUserRepository) {},
			email:    "ghost@x.com",
			password: "abc123",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name: "wrong_password",
			seed: func(repo *mocks.MockUserRepository) {
				seedVerified(repo, "v@x.com", domain.RoleEndUser)
			},
			email:    "v@x.com",
			password: "wrong1",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name: "unverified_account",
			seed: func(repo *mocks.MockUserRepository) {
				seedUnverified(repo, "u@x.com", "123456", time.Now().Add(time.Minute))
			},
			email:    "u@x.com",
			password: "abc123",
			wantErr:  domain.ErrEmailNotVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepository()
			tt.seed(repo)
			svc := newTestService(repo, mocks.NewMockNotifier(), &mocks.StubOTPGenerator{})

			result, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				if result != nil {
					t.Error("no token may be issued on a failed login")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Token != "signed-token" {
				t.Errorf("token = %q", result.Token)
			}
			if result.User.Email != tt.email || result.User.ID == "" {
				t.Errorf("unexpected projection: %+v", result.User)
			}
		})
	}
}

// Unknown email and wrong password must be indistinguishable to the
// caller.
func TestLogin_NoAccountEnumeration(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	seedVerified(repo, "v@x.com", domain.RoleEndUser)
	svc := newTestService(repo, mocks.NewMockNotifier(), &mocks.StubOTPGenerator{})

	_, errUnknown := svc.Login(context.Background(), "ghost@x.com", "abc123")
	_, errWrongPw := svc.Login(context.Background(), "v@x.com", "nope99")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) || !errors.Is(errWrongPw, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", errUnknown, errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("error text differs: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestLoginWithOTP(t *testing.T) {
	tests := []struct {
		name    string
		seed    func(repo *mocks.MockUserRepository)
		email   string
		role    domain.Role
		wantErr error
	}{
		{
			name: "success",
			seed: func(repo *mocks.MockUserRepository) {
				seedVerified(repo, "lw@x.com", domain.RoleLawyer)
			},
			email: "lw@x.com",
			role:  domain.RoleLawyer,
		},
		{
			name:    "missing_email",
			seed:    func(repo *mocks.MockUserRepository) {},
			email:   "",
			role:    domain.RoleEndUser,
			wantErr: domain.ErrMissingParameters,
		},
		{
			name: "missing_role",
			seed: func(repo *mocks.MockUserRepository) {
				seedVerified(repo, "v@x.com", domain.RoleEndUser)
			},
			email:   "v@x.com",
			role:    "",
			wantErr: domain.ErrMissingParameters,
		},
		{
			name: "role_mismatch",
			seed: func(repo *mocks.MockUserRepository) {
				seedVerified(repo, "v@x.com", domain.RoleEndUser)
			},
			email:   "v@x.com",
			role:    domain.RoleLawyer,
			wantErr: domain.ErrNotFound,
		},
		{
			name: "unverified_account",
			seed: func(repo *mocks.MockUserRepository) {
				seedUnverified(repo, "u@x.com", "123456", time.Now().Add(time.Minute))
			},
			email:   "u@x.com",
			role:    domain.RoleEndUser,
			wantErr: domain.ErrOTPNotVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepository()
			tt.seed(repo)
			svc := newTestService(repo, mocks.NewMockNotifier(), &mocks.StubOTPGenerator{})

			result, err := svc.LoginWithOTP(context.Background(), tt.email, tt.role)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Token != "signed-token" {
				t.Errorf("token = %q", result.Token)
			}
			if result.User.Role != tt.role {
				t.Errorf("projection role = %q, want %q", result.User.Role, tt.role)
			}
		})
	}
}

// Full journey: register, fail a verification with a wrong code, verify
// with the real code, then log in with the password.
func TestAccountLifecycle(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	notif := mocks.NewMockNotifier()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	svc := newTestService(repo, notif, &mocks.StubOTPGenerator{Code: "314159", ExpiresAt: now.Add(10 * time.Minute)})
	svc.now = func() time.Time { return now }

	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, userInput("a@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	code := notif.Sent[0].Code

	if _, err := svc.VerifyOTP(ctx, "a@x.com", "000000"); !errors.Is(err, domain.ErrInvalidOrExpiredOTP) {
		t.Fatalf("wrong code: got %v, want ErrInvalidOrExpiredOTP", err)
	}
	if repo.Stored("a@x.com").Verified {
		t.Fatal("record verified despite wrong code")
	}

	// Login before verification must be refused with the specific error.
	if _, err := svc.Login(ctx, "a@x.com", "abc123"); !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Fatalf("login before verify: got %v, want ErrEmailNotVerified", err)
	}

	svc.now = func() time.Time { return now.Add(5 * time.Minute) }
	if _, err := svc.VerifyOTP(ctx, "a@x.com", code); err != nil {
		t.Fatalf("verify: %v", err)
	}

	result, err := svc.Login(ctx, "a@x.com", "abc123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Error("login returned no token")
	}
}
