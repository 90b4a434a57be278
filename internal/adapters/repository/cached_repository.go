package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/lawmate/account-service/internal/config"
	"github.com/lawmate/account-service/internal/core/domain"
	"github.com/lawmate/account-service/internal/core/ports"
)

const cacheTTL = 5 * time.Minute

// CachedUserRepository is a best-effort read-through cache in front of
// the SQL store. Cache faults never fail the request; the store stays
// authoritative. Entries are invalidated when verification mutates the
// record, the only mutation this subsystem performs.
type CachedUserRepository struct {
	inner ports.UserRepository
	rdb   *redis.Client
	cb    *gobreaker.CircuitBreaker
}

var _ ports.UserRepository = (*CachedUserRepository)(nil)

func NewCachedUserRepository(inner ports.UserRepository, rdb *redis.Client) *CachedUserRepository {
	return &CachedUserRepository{
		inner: inner,
		rdb:   rdb,
		cb:    config.NewCircuitBreaker("Redis-UserCache"),
	}
}

func cacheKey(email string) string {
	return "user:" + email
}

func (r *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user := r.fromCache(ctx, email); user != nil {
		return user, nil
	}

	user, err := r.inner.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r.toCache(ctx, user)
	return user, nil
}

func (r *CachedUserRepository) FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	if user := r.fromCache(ctx, email); user != nil {
		if user.Role != role {
			return nil, domain.ErrNotFound
		}
		return user, nil
	}

	user, err := r.inner.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		return nil, err
	}
	r.toCache(ctx, user)
	return user, nil
}

func (r *CachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.inner.Create(ctx, user)
}

func (r *CachedUserRepository) MarkVerified(ctx context.Context, email string) error {
	if err := r.inner.MarkVerified(ctx, email); err != nil {
		return err
	}
	r.invalidate(ctx, email)
	return nil
}

func (r *CachedUserRepository) fromCache(ctx context.Context, email string) *domain.User {
	raw, err := r.cb.Execute(func() (interface{}, error) {
		return r.rdb.Get(ctx, cacheKey(email)).Bytes()
	})
	if err != nil {
		return nil
	}

	var user domain.User
	if err := json.Unmarshal(raw.([]byte), &user); err != nil {
		log.Printf("user cache: dropping corrupt entry for %s: %v", email, err)
		r.invalidate(ctx, email)
		return nil
	}
	return &user
}

func (r *CachedUserRepository) toCache(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	_, err = r.cb.Execute(func() (interface{}, error) {
		return nil, r.rdb.Set(ctx, cacheKey(user.Email), raw, cacheTTL).Err()
	})
	if err != nil {
		log.Printf("user cache: failed to store %s: %v", user.Email, err)
	}
}

func (r *CachedUserRepository) invalidate(ctx context.Context, email string) {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.rdb.Del(ctx, cacheKey(email)).Err()
	})
	if err != nil {
		log.Printf("user cache: failed to invalidate %s: %v", email, err)
	}
}
