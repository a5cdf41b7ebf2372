package authjwt

import "errors"

// Validation failures. Callers treat all of them as an unauthenticated request;
// the distinction only reaches the logs.
var (
	ErrInvalidToken     = errors.New("malformed bearer token")
	ErrExpiredToken     = errors.New("bearer token expired")
	ErrInvalidSignature = errors.New("bearer token signature mismatch")
	ErrInvalidIssuer    = errors.New("bearer token from another issuer")
)
