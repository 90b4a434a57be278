package services

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lawmate/account-service/internal/core/domain"
)

func TestTokenService_Issue(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService(privateKey)
	svc.now = func() time.Time { return now }

	user := &domain.User{ID: "user-123", Role: domain.RoleLawyer}
	signed, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return &privateKey.PublicKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !token.Valid {
		t.Fatal("token did not validate against the public key")
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "user-123" {
		t.Errorf("sub = %v, want user-123", claims["sub"])
	}
	if claims["role"] != "lawyer" {
		t.Errorf("role = %v, want lawyer", claims["role"])
	}

	exp := int64(claims["exp"].(float64))
	if want := now.Add(7 * 24 * time.Hour).Unix(); exp != want {
		t.Errorf("exp = %d, want %d (7 days after issue)", exp, want)
	}
}
