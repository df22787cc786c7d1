package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	refreshTokenBytes = 32
	sessionIDBytes    = 20
)

// NewOpaqueToken returns byteLen random bytes hex-encoded. Used for the
// credentials that live only in redis and never inside a JWT.
func NewOpaqueToken(byteLen int) (string, error) {
	if byteLen <= 0 {
		return "", fmt.Errorf("invalid token size")
	}

	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// NewRefreshToken mints the rotating refresh credential for a session.
func NewRefreshToken() (string, error) {
	return NewOpaqueToken(refreshTokenBytes)
}

// NewSessionID mints the session identifier carried in access tokens.
func NewSessionID() (string, error) {
	return NewOpaqueToken(sessionIDBytes)
}
