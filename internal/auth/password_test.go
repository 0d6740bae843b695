package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheck_Success(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(4)

	digest, err := h.Hash("p1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "p1" || strings.Contains(digest, "p1") {
		t.Fatalf("digest must not contain the plaintext: %q", digest)
	}
	if !h.Check("p1", digest) {
		t.Fatalf("expected password to verify against its own hash")
	}
}

func TestHash_NonDeterministic(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(4)

	first, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
	if !h.Check("same-password", first) || !h.Check("same-password", second) {
		t.Fatalf("both hashes must verify")
	}
}

func TestCheck_Mismatch(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(4)

	digest, err := h.Hash("right")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h.Check("wrong", digest) {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestCheck_MalformedDigest(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(4)

	if h.Check("anything", "not-a-bcrypt-digest") {
		t.Fatalf("malformed digest must verify as false, not panic")
	}
}

func TestNewPasswordHasher_DefaultCost(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(0)

	digest, err := h.Hash("p")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !h.Check("p", digest) {
		t.Fatalf("default-cost hash must verify")
	}
}
