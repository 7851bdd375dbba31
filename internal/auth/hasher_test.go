package auth

import (
	"bytes"
	"testing"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(Config{})

	digest, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if len(digest) == 0 {
		t.Fatal("expected non-empty digest")
	}

	if bytes.Equal(digest, []byte("password123")) {
		t.Fatal("digest must not equal the plaintext")
	}

	if !hasher.Verify("password123", digest) {
		t.Error("expected digest to verify against original password")
	}

	if hasher.Verify("password124", digest) {
		t.Error("expected digest to reject a different password")
	}
}

func TestPasswordHasher_SaltRandomization(t *testing.T) {
	hasher := NewPasswordHasher(Config{})

	first, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	second, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if bytes.Equal(first, second) {
		t.Error("hashing the same password twice must yield different digests")
	}

	if !hasher.Verify("password123", first) || !hasher.Verify("password123", second) {
		t.Error("both digests must verify against the password")
	}
}

func TestPasswordHasher_VerifyGarbageDigest(t *testing.T) {
	hasher := NewPasswordHasher(Config{})

	if hasher.Verify("password123", []byte("not-a-bcrypt-digest")) {
		t.Error("expected malformed digest to read as mismatch")
	}

	if hasher.Verify("password123", nil) {
		t.Error("expected empty digest to read as mismatch")
	}
}
