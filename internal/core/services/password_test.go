package services

import "testing"

func TestBcryptHasher_VerifyRoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash("abc123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "abc123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !h.Verify("abc123", hash) {
		t.Error("correct password failed verification")
	}
	if h.Verify("abc124", hash) {
		t.Error("wrong password passed verification")
	}
	if h.Verify("abc123", "not-a-bcrypt-hash") {
		t.Error("garbage hash passed verification")
	}
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	h := NewBcryptHasher()

	a, err := h.Hash("abc123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("abc123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password must differ")
	}
}
