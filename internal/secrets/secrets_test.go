package secrets

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("super-secret")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("Hash() = %q, want argon2id encoding", hash)
	}

	if !Verify("super-secret", hash) {
		t.Errorf("Verify() rejected the original secret")
	}
	if Verify("wrong-secret", hash) {
		t.Errorf("Verify() accepted a wrong secret")
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	first, err := Hash("same-secret")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	second, err := Hash("same-secret")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	if first == second {
		t.Errorf("Hash() produced identical encodings for two calls")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not argon2", "$bcrypt$whatever"},
		{"truncated", "$argon2id$v=19$m=65536,t=2,p=2"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=2,p=2$!!!$AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify("secret", tt.hash) {
				t.Errorf("Verify() accepted malformed hash %q", tt.hash)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !Equal("token", "token") {
		t.Errorf("Equal() rejected identical values")
	}
	if Equal("token", "other") {
		t.Errorf("Equal() accepted differing values")
	}
	if Equal("token", "token-longer") {
		t.Errorf("Equal() accepted values of different lengths")
	}
}
