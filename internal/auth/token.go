package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType is carried in the "typ" claim as a small integer.
type TokenType uint8

const (
	AccessToken TokenType = iota
	RefreshToken
	UnknownToken
)

func TokenTypeFrom(v uint8) TokenType {
	switch v {
	case 0:
		return AccessToken
	case 1:
		return RefreshToken
	default:
		return UnknownToken
	}
}

func (t TokenType) String() string {
	switch t {
	case AccessToken:
		return "access"
	case RefreshToken:
		return "refresh"
	default:
		return "unknown"
	}
}

// Claims is the capability set shared by every claim variant. The revocation
// guard and the auth middleware depend on it rather than on a concrete type.
type Claims interface {
	Subject() string
	TokenID() string
	IssuedAtUnix() int64
	ExpiresAtUnix() int64
}

// TokenConfig holds the signing key material and validation policy.
type TokenConfig struct {
	Secret    string
	AccessTTL time.Duration
	Leeway    time.Duration
}

// AccessClaims is the payload of an issued access token. Immutable after
// issuance; the server keeps no copy outside an active request.
type AccessClaims struct {
	Sub   string `json:"sub"`
	ID    string `json:"jti"`
	Iat   int64  `json:"iat"`
	Exp   int64  `json:"exp"`
	Typ   uint8  `json:"typ"`
	Roles string `json:"roles"`
}

func (c *AccessClaims) Subject() string      { return c.Sub }
func (c *AccessClaims) TokenID() string      { return c.ID }
func (c *AccessClaims) IssuedAtUnix() int64  { return c.Iat }
func (c *AccessClaims) ExpiresAtUnix() int64 { return c.Exp }

// jwt.Claims implementation so the parser validates exp/iat natively.

func (c *AccessClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Exp, 0)), nil
}

func (c *AccessClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Iat, 0)), nil
}

func (c *AccessClaims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c *AccessClaims) GetIssuer() (string, error)              { return "", nil }
func (c *AccessClaims) GetSubject() (string, error)             { return c.Sub, nil }
func (c *AccessClaims) GetAudience() (jwt.ClaimStrings, error)  { return nil, nil }

// IssueAccessToken mints a signed access token for the user. Each call draws
// a fresh jti, so two issuances for the same user are never bit-identical and
// can be revoked independently.
func IssueAccessToken(userID string, roles string, cfg TokenConfig) (string, error) {
	now := time.Now().UTC()

	claims := &AccessClaims{
		Sub:   userID,
		ID:    uuid.NewString(),
		Iat:   now.Unix(),
		Exp:   now.Add(cfg.AccessTTL).Unix(),
		Typ:   uint8(AccessToken),
		Roles: roles,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreation, err)
	}

	return signed, nil
}

// DecodeAccessToken parses and verifies a presented token. Every parse or
// verification failure (malformed structure, signature mismatch, expiry
// beyond leeway) collapses into ErrInvalidBearerToken so callers cannot be
// used as a verification oracle; the wrapped cause stays available for
// server-side logging. A well-signed token of the wrong kind is the one
// distinct failure, reported as ErrInvalidToken.
func DecodeAccessToken(tokenString string, cfg TokenConfig) (*AccessClaims, error) {
	claims := &AccessClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(cfg.Leeway))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBearerToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidBearerToken
	}

	// A refresh or unknown token can carry a valid signature; it still must
	// not open access-token endpoints.
	if kind := TokenTypeFrom(claims.Typ); kind != AccessToken {
		return nil, fmt.Errorf("%w: %s token presented as access token", ErrInvalidToken, kind)
	}

	return claims, nil
}
