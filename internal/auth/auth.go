// Package auth decides whether a bearer token may use the API. The HTTP
// layer extracts the token; this package only answers yes or no.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

// ErrInvalidToken is returned for any token a Verifier rejects. It carries
// no detail about why, so callers cannot leak it.
var ErrInvalidToken = errors.New("auth: invalid token")

// Verifier checks a bearer token.
type Verifier interface {
	Verify(token string) error
}

// PrefixVerifier accepts any non-empty token that starts with Prefix and has
// at least one character after it. It is the demo policy.
type PrefixVerifier struct {
	Prefix string
}

func (v PrefixVerifier) Verify(token string) error {
	if v.Prefix == "" || len(token) <= len(v.Prefix) || !strings.HasPrefix(token, v.Prefix) {
		return ErrInvalidToken
	}
	return nil
}

// StaticVerifier accepts only tokens from a fixed list. Comparison is
// constant-time per candidate.
type StaticVerifier struct {
	tokens [][]byte
}

// NewStaticVerifier ignores blank entries.
func NewStaticVerifier(tokens []string) *StaticVerifier {
	v := &StaticVerifier{}
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			v.tokens = append(v.tokens, []byte(t))
		}
	}
	return v
}

func (v *StaticVerifier) Verify(token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	got := []byte(token)
	ok := 0
	for _, want := range v.tokens {
		ok |= subtle.ConstantTimeCompare(got, want)
	}
	if ok != 1 {
		return ErrInvalidToken
	}
	return nil
}

// New picks the policy: an explicit token list wins; otherwise tokens are
// accepted by prefix.
func New(tokens []string, prefix string) Verifier {
	if sv := NewStaticVerifier(tokens); len(sv.tokens) > 0 {
		return sv
	}
	return PrefixVerifier{Prefix: prefix}
}
