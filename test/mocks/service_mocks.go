package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/lawmate/account-service/internal/core/ports"
)

// MockNotifier records every OTP email instead of delivering it.
type MockNotifier struct {
	mu sync.Mutex

	Sent      []SentOTPEmail
	SendError error
}

type SentOTPEmail struct {
	To        string
	FirstName string
	Code      string
}

var _ ports.Notifier = (*MockNotifier)(nil)

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendOTPEmail(ctx context.Context, to, firstName, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendError != nil {
		return m.SendError
	}
	m.Sent = append(m.Sent, SentOTPEmail{To: to, FirstName: firstName, Code: code})
	return nil
}

// FakeHasher is a transparent stand-in for bcrypt so service tests stay
// fast and hashes stay assertable.
type FakeHasher struct{}

var _ ports.PasswordHasher = (*FakeHasher)(nil)

func (FakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (FakeHasher) Verify(password, hash string) bool {
	return strings.TrimPrefix(hash, "hashed:") == password
}

// StubOTPGenerator hands out a fixed code and expiry.
type StubOTPGenerator struct {
	Code      string
	ExpiresAt time.Time
	Err       error
}

var _ ports.OTPGenerator = (*StubOTPGenerator)(nil)

func (s *StubOTPGenerator) Generate() (string, time.Time, error) {
	if s.Err != nil {
		return "", time.Time{}, s.Err
	}
	return s.Code, s.ExpiresAt, nil
}
