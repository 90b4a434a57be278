package mocks

import (
	"context"

	"github.com/lawmate/account-service/internal/core/domain"
	"github.com/lawmate/account-service/internal/core/ports"
)

// MockAccountService lets handler tests script any outcome per
// operation without standing up the real service.
type MockAccountService struct {
	RegisterUserFunc   func(ctx context.Context, in ports.RegisterUserInput) (string, error)
	RegisterLawyerFunc func(ctx context.Context, in ports.RegisterLawyerInput) (string, error)
	VerifyOTPFunc      func(ctx context.Context, email, code string) (string, error)
	LoginFunc          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	LoginWithOTPFunc   func(ctx context.Context, email string, role domain.Role) (*ports.LoginResult, error)
}

var _ ports.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) RegisterUser(ctx context.Context, in ports.RegisterUserInput) (string, error) {
	return m.RegisterUserFunc(ctx, in)
}

func (m *MockAccountService) RegisterLawyer(ctx context.Context, in ports.RegisterLawyerInput) (string, error) {
	return m.RegisterLawyerFunc(ctx, in)
}

func (m *MockAccountService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	return m.VerifyOTPFunc(ctx, email, code)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *MockAccountService) LoginWithOTP(ctx context.Context, email string, role domain.Role) (*ports.LoginResult, error) {
	return m.LoginWithOTPFunc(ctx, email, role)
}
