package service

import "testing"

func TestHashPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "secret1" || hash == "" {
		t.Fatalf("expected hashed digest, got %q", hash)
	}

	ok, err := CheckPassword("secret1", hash)
	if err != nil {
		t.Fatalf("check password: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}

	ok, err = CheckPassword("wrong", hash)
	if err != nil {
		t.Fatalf("check wrong password: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestHashPasswordSaltPerCall(t *testing.T) {
	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct digests for same password")
	}
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	if _, err := CheckPassword("secret1", "not-a-bcrypt-digest"); err == nil {
		t.Fatalf("expected error for malformed digest")
	}
}
