package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher_CostClamping(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"valid cost", 10, 10},
		{"min cost", bcrypt.MinCost, bcrypt.MinCost},
		{"below min", bcrypt.MinCost - 1, DefaultCost},
		{"above max", bcrypt.MaxCost + 1, DefaultCost},
		{"zero", 0, DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewPasswordHasher(tt.cost)
			if hasher.cost != tt.want {
				t.Errorf("cost = %v, want %v", hasher.cost, tt.want)
			}
		})
	}
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" {
		t.Fatal("Hash() returned empty string")
	}
	if hash == "correct horse battery staple" {
		t.Error("Hash() returned the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash %q is not a bcrypt hash", hash)
	}

	if !hasher.Verify("correct horse battery staple", hash) {
		t.Error("Verify() = false for the correct password")
	}
	if hasher.Verify("wrong password", hash) {
		t.Error("Verify() = true for a wrong password")
	}
	if hasher.Verify("correct horse battery staple", "not-a-hash") {
		t.Error("Verify() = true for a malformed hash")
	}
}

func TestPasswordHasher_HashesDiffer(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}
