package auth

import "time"

// Authenticator verifies staff tokens issued by the upstream identity
// provider. GenerateToken mints equivalent tokens for local development.
type Authenticator interface {
	GenerateToken(email string, ttl time.Duration) (string, error)
	ValidateToken(token string) (*Claims, error)
}
