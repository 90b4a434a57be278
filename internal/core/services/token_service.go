package services

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lawmate/account-service/internal/core/domain"
)

// TokenTTL is the fixed validity of issued bearer tokens. There is no
// refresh or revocation; tokens simply expire.
const TokenTTL = 7 * 24 * time.Hour

// TokenService mints RS256 tokens carrying the account id and role.
type TokenService struct {
	privateKey *rsa.PrivateKey
	now        func() time.Time
}

func NewTokenService(privateKey *rsa.PrivateKey) *TokenService {
	return &TokenService{
		privateKey: privateKey,
		now:        time.Now,
	}
}

func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}
