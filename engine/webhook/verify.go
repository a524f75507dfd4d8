// Package webhook authenticates inbound webhook requests against a shared
// secret and reads their raw bodies.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	// HeaderSignature carries the body signature.
	HeaderSignature = "X-Hub-Signature-256"
	prefixSHA256    = "sha256="
)

var (
	ErrMissingSignature = errors.New("missing signature header")
	ErrInvalidSignature = errors.New("signature mismatch")
)

// Verifier validates an incoming webhook request using the given raw body.
type Verifier interface {
	Verify(ctx context.Context, r *http.Request, body []byte) error
}

// NewVerifier returns a signature verifier for secret. An empty secret turns
// verification off and every request is accepted.
func NewVerifier(secret string) Verifier {
	if secret == "" {
		return noneVerifier{}
	}
	return signatureVerifier{secret: []byte(secret)}
}

// Enabled reports whether v checks signatures.
func Enabled(v Verifier) bool {
	_, none := v.(noneVerifier)
	return !none
}

type noneVerifier struct{}

func (noneVerifier) Verify(_ context.Context, _ *http.Request, _ []byte) error {
	return nil
}

type signatureVerifier struct {
	secret []byte
}

func (v signatureVerifier) Verify(_ context.Context, r *http.Request, body []byte) error {
	sig := r.Header.Get(HeaderSignature)
	if sig == "" {
		return ErrMissingSignature
	}
	hexsig, ok := strings.CutPrefix(sig, prefixSHA256)
	if !ok {
		return fmt.Errorf("%w: header must start with %s", ErrInvalidSignature, prefixSHA256)
	}
	got, err := hex.DecodeString(strings.TrimSpace(hexsig))
	if err != nil {
		return fmt.Errorf("%w: invalid encoding: %w", ErrInvalidSignature, err)
	}
	if !hmac.Equal(sum(v.secret, body), got) {
		return ErrInvalidSignature
	}
	return nil
}

func sum(secret, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	_, _ = mac.Write(body)
	return mac.Sum(nil)
}

// Sign returns the header value a sender would attach to body.
func Sign(secret string, body []byte) string {
	return prefixSHA256 + hex.EncodeToString(sum([]byte(secret), body))
}
