package security

import (
	"strings"
	"testing"
)

func TestHashAndVerifySuccess(t *testing.T) {
	hasher := NewBcryptHasher()
	password := "correct horse battery staple"

	encoded, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if encoded == "" {
		t.Fatal("Hash returned empty string")
	}
	if encoded == password {
		t.Fatal("Hash returned the plaintext password")
	}
	if !strings.HasPrefix(encoded, "$2") {
		t.Fatalf("unexpected hash format: %q", encoded)
	}

	ok, err := hasher.Verify(password, encoded)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatal("Verify returned false for correct password")
	}
}

func TestVerifyIncorrectPassword(t *testing.T) {
	hasher := NewBcryptHasher()

	encoded, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	ok, err := hasher.Verify("Tr0ub4dor&3", encoded)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatal("Verify returned true for incorrect password")
	}
}

func TestHashSaltsEveryCall(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password are identical, salt is not random")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	hasher := NewBcryptHasher()

	if _, err := hasher.Hash(""); err == nil {
		t.Fatal("Hash expected to return error for empty password")
	}
}

func TestVerifyEmptyInputs(t *testing.T) {
	hasher := NewBcryptHasher()

	ok, err := hasher.Verify("", "")
	if err != nil {
		t.Fatalf("Verify returned error for empty inputs: %v", err)
	}
	if ok {
		t.Fatal("Verify should return false for empty inputs")
	}
}

func TestVerifyInvalidFormat(t *testing.T) {
	hasher := NewBcryptHasher()

	if _, err := hasher.Verify("password", "not-a-bcrypt-hash"); err == nil {
		t.Fatal("Verify expected to return error for invalid hash format")
	}
}
