package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// RevocationStore is the read side of the shared revocation state. All three
// entries are independent; a missing entry means "not revoked".
type RevocationStore interface {
	// GlobalRevokeBefore returns the global revoke-before epoch, if set.
	GlobalRevokeBefore(ctx context.Context) (int64, bool, error)
	// UserRevokeBefore returns the revoke-before epoch for one user, if set.
	UserRevokeBefore(ctx context.Context, userID string) (int64, bool, error)
	// IsTokenRevoked reports membership of a jti in the revoked-token set.
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RevocationGuard decides whether an otherwise-valid token must be treated as
// revoked. It is evaluated only after the token's signature has verified.
type RevocationGuard struct {
	store RevocationStore
}

func NewRevocationGuard(store RevocationStore) *RevocationGuard {
	return &RevocationGuard{store: store}
}

// IsRevoked runs the global, per-user and per-token checks in that order,
// short-circuiting on the first hit. A store failure propagates instead of
// defaulting to "not revoked": failing open here would silently defeat
// revocation. The specific reason is logged server-side only; callers report
// a revoked token as wrong credentials.
func (g *RevocationGuard) IsRevoked(ctx context.Context, claims Claims) (bool, error) {
	before, ok, err := g.store.GlobalRevokeBefore(ctx)
	if err != nil {
		return false, fmt.Errorf("global revocation check: %w", err)
	}
	if ok && before >= claims.IssuedAtUnix() {
		slog.Warn("access denied (globally revoked)", "sub", claims.Subject(), "jti", claims.TokenID(), "iat", claims.IssuedAtUnix())
		return true, nil
	}

	before, ok, err = g.store.UserRevokeBefore(ctx, claims.Subject())
	if err != nil {
		return false, fmt.Errorf("user revocation check: %w", err)
	}
	if ok && before >= claims.IssuedAtUnix() {
		slog.Warn("access denied (user revoked)", "sub", claims.Subject(), "jti", claims.TokenID(), "iat", claims.IssuedAtUnix())
		return true, nil
	}

	revoked, err := g.store.IsTokenRevoked(ctx, claims.TokenID())
	if err != nil {
		return false, fmt.Errorf("token revocation check: %w", err)
	}
	if revoked {
		slog.Warn("access denied (token revoked)", "sub", claims.Subject(), "jti", claims.TokenID())
		return true, nil
	}

	return false, nil
}
