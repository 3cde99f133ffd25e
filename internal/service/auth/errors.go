package auth

import "errors"

// Authentication errors returned by the JWT service.
var (
	// ErrInvalidToken is returned when a token is malformed, has a bad
	// signature, or fails validation for any reason other than expiry.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when an access token has expired.
	ErrExpiredToken = errors.New("token expired")

	// ErrInvalidRefreshToken is returned when a refresh token fails validation.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken is returned when a refresh token has expired.
	ErrExpiredRefreshToken = errors.New("refresh token expired")

	// ErrWrongTokenType is returned when an access token is presented where a
	// refresh token is expected, or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")
)
