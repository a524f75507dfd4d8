package webhook

import (
	"errors"
	"fmt"
	"io"
)

// DefaultMaxBody bounds request bodies when no limit is configured.
const DefaultMaxBody int64 = 1 << 20

// ErrPayloadTooLarge is returned when a body exceeds the limit.
var ErrPayloadTooLarge = errors.New("payload too large")

// ReadRaw reads at most maxBytes from r and returns the exact bytes. Bodies
// longer than maxBytes yield ErrPayloadTooLarge; other read failures are
// returned wrapped.
func ReadRaw(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBody
	}
	b, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(b)) > maxBytes {
		return nil, ErrPayloadTooLarge
	}
	return b, nil
}
