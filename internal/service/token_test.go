package service

import (
	"encoding/base64"
	"encoding/hex"
	"testing"
)

func TestTokenCodec_Generate(t *testing.T) {
	codec := NewTokenCodec([]byte("test-key"))

	token, verifier, err := codec.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not valid base64url: %v", err)
	}
	if len(raw) != tokenBytes {
		t.Errorf("token entropy = %d bytes, want %d", len(raw), tokenBytes)
	}

	if _, err := hex.DecodeString(verifier); err != nil {
		t.Fatalf("verifier is not valid hex: %v", err)
	}
	if len(verifier) != 64 {
		t.Errorf("verifier length = %d, want 64", len(verifier))
	}

	if codec.Verifier(token) != verifier {
		t.Error("Verifier(token) does not match the verifier returned by Generate()")
	}
}

func TestTokenCodec_Generate_Unique(t *testing.T) {
	codec := NewTokenCodec([]byte("test-key"))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, _, err := codec.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[token] {
			t.Fatalf("Generate() produced a duplicate token after %d iterations", i)
		}
		seen[token] = true
	}
}

func TestTokenCodec_Verifier(t *testing.T) {
	codec := NewTokenCodec([]byte("test-key"))
	other := NewTokenCodec([]byte("other-key"))

	if codec.Verifier("abc") != codec.Verifier("abc") {
		t.Error("Verifier is not deterministic for the same key and input")
	}
	if codec.Verifier("abc") == other.Verifier("abc") {
		t.Error("Verifiers under different keys should not match")
	}
	if codec.Verifier("abc") == codec.Verifier("abd") {
		t.Error("Verifiers of different tokens should not match")
	}
}

// Malformed scans are hashed as-is: they take the same path as well-formed
// unknown tokens instead of producing a distinguishable parse error.
func TestTokenCodec_Verifier_OpaqueInput(t *testing.T) {
	codec := NewTokenCodec([]byte("test-key"))

	inputs := []string{"", "not base64 at all!!", "short", string([]byte{0xff, 0x00, 0x7f})}
	for _, in := range inputs {
		verifier := codec.Verifier(in)
		if len(verifier) != 64 {
			t.Errorf("Verifier(%q) length = %d, want 64", in, len(verifier))
		}
		if _, err := hex.DecodeString(verifier); err != nil {
			t.Errorf("Verifier(%q) is not valid hex: %v", in, err)
		}
	}
}
