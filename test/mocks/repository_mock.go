// Package mocks provides mock implementations of port interfaces for
// testing. The core services depend only on the interfaces, so the
// same service code runs against the real adapters in production and
// against these in-memory fakes in tests.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/lawmate/account-service/internal/core/domain"
	"github.com/lawmate/account-service/internal/core/ports"
)

// MockUserRepository implements ports.UserRepository in memory.
type MockUserRepository struct {
	mu sync.RWMutex

	users map[string]*domain.User

	// Call tracking for verification
	FindByEmailCalls  []string
	CreateCalls       []string
	MarkVerifiedCalls []string

	// Error injection for testing failure scenarios
	FindByEmailError  error
	CreateError       error
	MarkVerifiedError error
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// SeedUser adds a user to the mock repository for test setup.
func (m *MockUserRepository) SeedUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
}

// Stored returns the stored record for an email, or nil.
func (m *MockUserRepository) Stored(email string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[email]
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindByEmailCalls = append(m.FindByEmailCalls, email)

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}
	user, ok := m.users[email]
	if !ok || user.Role != role {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, user.Email)

	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.users[user.Email]; exists {
		return domain.ErrDuplicateAccount
	}
	copied := *user
	m.users[user.Email] = &copied
	return nil
}

// MarkVerified mirrors the compare-and-set behavior of the SQL store:
// flipping an already-verified record fails.
func (m *MockUserRepository) MarkVerified(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkVerifiedCalls = append(m.MarkVerifiedCalls, email)

	if m.MarkVerifiedError != nil {
		return m.MarkVerifiedError
	}
	user, ok := m.users[email]
	if !ok || user.Verified {
		return domain.ErrAlreadyVerified
	}
	user.Verified = true
	user.OTPCode = nil
	user.OTPExpiresAt = nil
	user.UpdatedAt = time.Now()
	return nil
}
