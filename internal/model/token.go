package model

import "time"

// TokenManager issues and decodes signed access/refresh tokens bound to
// an opaque subject handle. Decode always verifies the signature.
type TokenManager interface {
	IssueAccessToken(subject string) (string, error)
	IssueRefreshToken(subject string) (string, error)
	Decode(token string) (TokenClaims, error)
}

// TokenClaims are the verified claims extracted from a token.
type TokenClaims struct {
	JTI       string
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
