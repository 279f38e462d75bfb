package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/phananhtu/authcore/internal/model"
)

// JWT implements TokenManager backed by symmetric HMAC. Access and
// refresh tokens share the claim shape and differ only in lifetime.
type JWT struct {
	secretKey  string
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWT creates a JWT token manager with the provided secret key,
// issuer and lifetimes.
func NewJWT(secretKey, issuer string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{
		secretKey:  secretKey,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

var _ model.TokenManager = (*JWT)(nil)

// IssueAccessToken creates a short-lived token bound to the subject handle.
func (j *JWT) IssueAccessToken(subject string) (string, error) {
	return j.issue(subject, j.accessTTL)
}

// IssueRefreshToken creates a long-lived token bound to the subject handle.
func (j *JWT) IssueRefreshToken(subject string) (string, error) {
	return j.issue(subject, j.refreshTTL)
}

func (j *JWT) issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    j.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Decode verifies the signature and temporal claims of a token and
// returns its claims. The signature check is mandatory.
func (j *JWT) Decode(tokenString string) (model.TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.TokenClaims{}, classifyParseError(err)
	}
	if !token.Valid {
		return model.TokenClaims{}, model.ErrTokenMalformed
	}

	out := model.TokenClaims{
		JTI:     claims.ID,
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", model.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %w", model.ErrTokenNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", model.ErrTokenSignature, err)
	default:
		return fmt.Errorf("%w: %w", model.ErrTokenMalformed, err)
	}
}
