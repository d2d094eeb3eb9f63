package auth

import (
	"errors"
	"strings"
	"testing"
)

// Tests use the reduced-cost service; hashing at production parameters
// would dominate the suite's runtime.

func TestHash_VerifyRoundTrip(t *testing.T) {
	ps := NewPasswordServiceForTest()

	hash, err := ps.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "secret123"); err != nil {
		t.Errorf("Verify() with correct password: %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := NewPasswordServiceForTest()

	hash, err := ps.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	err = ps.Verify(hash, "not-the-password")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("Verify() error = %v, want ErrPasswordMismatch", err)
	}
}

func TestHash_FreshSaltPerCall(t *testing.T) {
	ps := NewPasswordServiceForTest()

	h1, err := ps.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := ps.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// Identical passwords must still produce distinct hashes — each call
	// draws a fresh random salt.
	if h1 == h2 {
		t.Error("Hash() produced identical output for two calls")
	}

	// Both must still verify.
	if err := ps.Verify(h1, "same-password"); err != nil {
		t.Errorf("Verify(h1): %v", err)
	}
	if err := ps.Verify(h2, "same-password"); err != nil {
		t.Errorf("Verify(h2): %v", err)
	}
}

func TestHash_PHCFormat(t *testing.T) {
	ps := NewPasswordServiceForTest()

	hash, err := ps.Hash("whatever")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=") {
		t.Errorf("Hash() = %q, want PHC-encoded argon2id string", hash)
	}
	if parts := strings.Split(hash, "$"); len(parts) != 6 {
		t.Errorf("Hash() has %d segments, want 6", len(parts))
	}
}

func TestVerify_MalformedStoredHash(t *testing.T) {
	ps := NewPasswordServiceForTest()

	cases := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=1024,t=1,p=1$c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$ZGlnZXN0",
	}
	for _, bad := range cases {
		err := ps.Verify(bad, "password")
		if err == nil {
			t.Errorf("Verify(%q) expected error", bad)
		}
		// A corrupt row is not a wrong password.
		if errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("Verify(%q) = ErrPasswordMismatch, want decode error", bad)
		}
	}
}

func TestVerify_ProductionParamsEmbeddedInHash(t *testing.T) {
	// A hash produced with one parameter set must verify with a service
	// configured differently — the stored string carries its own parameters.
	prod := NewPasswordService()
	test := NewPasswordServiceForTest()

	hash, err := test.Hash("portable")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if err := prod.Verify(hash, "portable"); err != nil {
		t.Errorf("Verify() across parameter sets: %v", err)
	}
}
