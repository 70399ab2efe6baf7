package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// tokenBytes is the entropy of a ticket token. 32 bytes keeps guessing and
// enumeration infeasible and collision probability negligible.
const tokenBytes = 32

// TokenCodec generates ticket tokens and derives their stored verification
// form. The raw token is never persisted: the verifier is a keyed
// HMAC-SHA256 of it, so reading storage yields nothing that can be presented
// at a door.
type TokenCodec struct {
	key []byte
}

// NewTokenCodec creates a TokenCodec with the given HMAC key
func NewTokenCodec(key []byte) *TokenCodec {
	return &TokenCodec{key: key}
}

// Generate returns a fresh random token and its verifier
func (c *TokenCodec) Generate() (token, verifier string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = base64.RawURLEncoding.EncodeToString(buf)
	return token, c.Verifier(token), nil
}

// Verifier derives the stored verification form of a presented token. It
// accepts any input: a malformed scan simply hashes to a verifier that
// matches nothing, so unknown and malformed tokens are indistinguishable in
// both response shape and latency.
func (c *TokenCodec) Verifier(token string) string {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
