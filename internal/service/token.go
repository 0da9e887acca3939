package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window of an issued admin token.
const DefaultTokenTTL = 24 * time.Hour

const tokenIssuer = "corpsite"

// Failure kinds reported by FailureKind for diagnostics. Clients only ever
// see a generic unauthorized response.
const (
	FailureMalformed = "malformed"
	FailureSignature = "signature"
	FailureExpired   = "expired"
	FailureClaims    = "claims"
)

// TokenCodec issues and verifies the HS256 bearer tokens that authenticate
// admin requests. It is safe for concurrent use; the secret and TTL never
// change after construction.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec returns a codec signing with secret. A zero ttl selects
// DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("jwt expiry must be positive, got %s", ttl)
	}
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the validity window of issued tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject, normalized to a trimmed lower-case email.
func (c *TokenCodec) Issue(subject string) (string, error) {
	subject = NormalizeEmail(subject)
	if subject == "" {
		return "", errors.New("token subject must not be empty")
	}
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// VerifySubject checks the signature, issuer, and expiry of token and returns
// its subject. Every failure wraps ErrInvalidToken; a token is rejected at
// any instant at or after its expiry.
func (c *TokenCodec) VerifySubject(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, jwt.ErrTokenInvalidClaims)
	}
	subject := NormalizeEmail(claims.Subject)
	if subject == "" {
		return "", fmt.Errorf("%w: %w: missing subject", ErrInvalidToken, jwt.ErrTokenInvalidClaims)
	}
	return subject, nil
}

// FailureKind classifies a verification error for logging. It returns ""
// for errors that did not come from VerifySubject.
func FailureKind(err error) string {
	switch {
	case err == nil || !errors.Is(err, ErrInvalidToken):
		return ""
	case errors.Is(err, jwt.ErrTokenMalformed):
		return FailureMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return FailureSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return FailureExpired
	default:
		return FailureClaims
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
