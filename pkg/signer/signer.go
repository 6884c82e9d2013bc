// Package signer signs and verifies opaque values with HMAC-SHA256.
// The HomeGame API uses it for session cookies: the cookie carries
// "<session-id>.<signature>" and the server-side session record holds
// everything else.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	// ErrInvalidSignature indicates the value was tampered with or signed
	// with a different secret.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrMalformedValue indicates the value is not in "<id>.<sig>" form.
	ErrMalformedValue = errors.New("malformed signed value")
)

// Signer signs values with a shared secret.
type Signer struct {
	secret []byte
}

// New creates a Signer from a secret.
func New(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns "<value>.<base64url(hmac)>".
func (s *Signer) Sign(value string) string {
	return value + "." + s.signature(value)
}

// Verify checks a signed value and returns the embedded value.
func (s *Signer) Verify(signed string) (string, error) {
	idx := strings.LastIndexByte(signed, '.')
	if idx <= 0 || idx == len(signed)-1 {
		return "", ErrMalformedValue
	}

	value, sig := signed[:idx], signed[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(s.signature(value))) {
		return "", ErrInvalidSignature
	}
	return value, nil
}

func (s *Signer) signature(value string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
