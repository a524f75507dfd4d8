package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signedRequest(body, signature string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/copilot", strings.NewReader(body))
	if signature != "" {
		r.Header.Set(HeaderSignature, signature)
	}
	return r
}

func TestVerifier(t *testing.T) {
	body := []byte(`{"messages":[]}`)

	t.Run("Should accept a signature produced by Sign", func(t *testing.T) {
		v := NewVerifier("s3cret")
		err := v.Verify(t.Context(), signedRequest(string(body), Sign("s3cret", body)), body)
		assert.NoError(t, err)
	})

	t.Run("Should reject a signature made with another secret", func(t *testing.T) {
		v := NewVerifier("s3cret")
		err := v.Verify(t.Context(), signedRequest(string(body), Sign("other", body)), body)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Should reject a signature over different bytes", func(t *testing.T) {
		v := NewVerifier("s3cret")
		other := []byte(`{"messages": []}`)
		err := v.Verify(t.Context(), signedRequest(string(body), Sign("s3cret", other)), body)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Should reject a missing header", func(t *testing.T) {
		err := NewVerifier("s3cret").Verify(t.Context(), signedRequest(string(body), ""), body)
		assert.ErrorIs(t, err, ErrMissingSignature)
	})

	t.Run("Should reject a header without the algorithm prefix", func(t *testing.T) {
		sig := strings.TrimPrefix(Sign("s3cret", body), "sha256=")
		err := NewVerifier("s3cret").Verify(t.Context(), signedRequest(string(body), sig), body)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Should reject a non-hex digest", func(t *testing.T) {
		err := NewVerifier("s3cret").Verify(t.Context(), signedRequest(string(body), "sha256=zz"), body)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Should accept everything without a secret", func(t *testing.T) {
		v := NewVerifier("")
		assert.False(t, Enabled(v))
		assert.NoError(t, v.Verify(t.Context(), signedRequest(string(body), "sha256=bad"), body))
	})

	t.Run("Should report verification as enabled with a secret", func(t *testing.T) {
		assert.True(t, Enabled(NewVerifier("s3cret")))
	})
}

func TestSign(t *testing.T) {
	t.Run("Should produce a prefixed hex digest", func(t *testing.T) {
		sig := Sign("key", []byte("The quick brown fox jumps over the lazy dog"))
		assert.Equal(t, "sha256=f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", sig)
	})
}
