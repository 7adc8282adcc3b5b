package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignisguard/server/internal/domain"
)

// Claims is the JWT payload carried by bearer tokens. The role travels in
// the token so request handling never needs a user lookup; roles are
// normalized when the principal is rebuilt.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the given HMAC secret and token
// lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user.
func (t *TokenIssuer) Issue(u *domain.User, now time.Time) (string, error) {
	claims := Claims{
		Name: u.Name,
		Role: string(domain.NormalizeRole(u.Role)),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, returning the principal it
// carries.
func (t *TokenIssuer) Verify(tokenString string) (domain.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return domain.Principal{}, domain.Errorf(domain.EUNAUTHORIZED, "auth.verify", "invalid or expired token")
	}
	if !token.Valid {
		return domain.Principal{}, domain.Errorf(domain.EUNAUTHORIZED, "auth.verify", "invalid token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Principal{}, domain.Errorf(domain.EUNAUTHORIZED, "auth.verify", "malformed subject claim")
	}

	return domain.Principal{
		ID:   id,
		Name: claims.Name,
		Role: domain.NormalizeRole(claims.Role),
	}, nil
}
