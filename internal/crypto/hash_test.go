package crypto

import (
	"errors"
	"strings"
	"testing"
)

// cheap parameters keep the suite fast; production uses DefaultHashParams.
func testHasher() *PasswordHasher {
	return NewPasswordHasher(HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
}

func TestHash_Format(t *testing.T) {
	hash, err := NewPasswordHasher(HashParams{}).Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash() expected 6 parts, got %d: %q", len(parts), hash)
	}
	if parts[1] != "argon2id" {
		t.Errorf("Hash() algorithm = %q, want %q", parts[1], "argon2id")
	}
	if parts[2] != "v=19" {
		t.Errorf("Hash() version = %q, want %q", parts[2], "v=19")
	}
	if parts[3] != "m=65536,t=3,p=2" {
		t.Errorf("Hash() params = %q, want %q", parts[3], "m=65536,t=3,p=2")
	}
	if strings.Contains(hash, "correct-horse-battery-staple") {
		t.Error("Hash() leaked the plaintext password")
	}
}

func TestVerify(t *testing.T) {
	h := testHasher()
	hash, err := h.Hash("Secret123")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "correct password", password: "Secret123", want: true},
		{name: "wrong password", password: "Secret124", want: false},
		{name: "case differs", password: "secret123", want: false},
		{name: "empty password", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Verify(tt.password, hash)
			if err != nil {
				t.Fatalf("Verify() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHash_SaltDiffers(t *testing.T) {
	h := testHasher()

	hash1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	hash2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for same password (salt should differ)")
	}
}

func TestVerify_UsesStoredParams(t *testing.T) {
	hash, err := testHasher().Hash("Secret123")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	ok, err := NewPasswordHasher(HashParams{}).Verify("Secret123", hash)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if !ok {
		t.Error("Verify() should accept a hash produced with different parameters")
	}
}

func TestVerify_InvalidHash(t *testing.T) {
	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{name: "garbage", hash: "invalid-hash-format", wantErr: ErrInvalidHashFormat},
		{name: "bcrypt hash", hash: "$2a$10$abcdefghijklmnopqrstuv", wantErr: ErrInvalidHashFormat},
		{name: "wrong version", hash: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5", wantErr: ErrIncompatibleVersion},
		{name: "bad params", hash: "$argon2id$v=19$m=x$c2FsdA$a2V5", wantErr: ErrInvalidHashFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testHasher().Verify("password", tt.hash)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
