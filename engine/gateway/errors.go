package gateway

import "errors"

// Error taxonomy; the router maps each to an HTTP response.
var (
	ErrUnauthorized    = errors.New("invalid signature")
	ErrInvalidJSON     = errors.New("invalid json")
	ErrNoUserMessage   = errors.New("no user message found")
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrAbandoned means the caller went away while the body was read.
	ErrAbandoned = errors.New("request abandoned")
)
