package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRevocationStore struct {
	globalBefore  int64
	globalSet     bool
	userBefore    map[string]int64
	revokedTokens map[string]struct{}
	failWith      error

	globalCalls int
	userCalls   int
	tokenCalls  int
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{
		userBefore:    map[string]int64{},
		revokedTokens: map[string]struct{}{},
	}
}

func (s *fakeRevocationStore) GlobalRevokeBefore(context.Context) (int64, bool, error) {
	s.globalCalls++
	if s.failWith != nil {
		return 0, false, s.failWith
	}
	return s.globalBefore, s.globalSet, nil
}

func (s *fakeRevocationStore) UserRevokeBefore(_ context.Context, userID string) (int64, bool, error) {
	s.userCalls++
	if s.failWith != nil {
		return 0, false, s.failWith
	}
	before, ok := s.userBefore[userID]
	return before, ok, nil
}

func (s *fakeRevocationStore) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	s.tokenCalls++
	if s.failWith != nil {
		return false, s.failWith
	}
	_, revoked := s.revokedTokens[tokenID]
	return revoked, nil
}

func claimsAt(sub string, jti string, iat int64) *AccessClaims {
	return &AccessClaims{Sub: sub, ID: jti, Iat: iat, Exp: iat + 900, Typ: uint8(AccessToken)}
}

func TestRevocationGuard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("nothing revoked", func(t *testing.T) {
		guard := NewRevocationGuard(newFakeRevocationStore())

		revoked, err := guard.IsRevoked(ctx, claimsAt("u1", "t1", 1000))
		require.NoError(t, err)
		require.False(t, revoked)
	})

	t.Run("global mark revokes any token issued at or before it", func(t *testing.T) {
		store := newFakeRevocationStore()
		store.globalSet = true
		store.globalBefore = 1000
		// User and token state would pass; the global mark alone decides.
		guard := NewRevocationGuard(store)

		revoked, err := guard.IsRevoked(ctx, claimsAt("u1", "t1", 1000))
		require.NoError(t, err)
		require.True(t, revoked)

		revoked, err = guard.IsRevoked(ctx, claimsAt("u1", "t2", 999))
		require.NoError(t, err)
		require.True(t, revoked)

		revoked, err = guard.IsRevoked(ctx, claimsAt("u1", "t3", 1001))
		require.NoError(t, err)
		require.False(t, revoked)
	})

	t.Run("global hit short-circuits the remaining checks", func(t *testing.T) {
		store := newFakeRevocationStore()
		store.globalSet = true
		store.globalBefore = 1000
		guard := NewRevocationGuard(store)

		revoked, err := guard.IsRevoked(ctx, claimsAt("u1", "t1", 500))
		require.NoError(t, err)
		require.True(t, revoked)
		require.Equal(t, 1, store.globalCalls)
		require.Zero(t, store.userCalls)
		require.Zero(t, store.tokenCalls)
	})

	t.Run("user mark only affects that user", func(t *testing.T) {
		store := newFakeRevocationStore()
		store.userBefore["alice"] = 2000
		guard := NewRevocationGuard(store)

		revoked, err := guard.IsRevoked(ctx, claimsAt("alice", "t1", 1500))
		require.NoError(t, err)
		require.True(t, revoked)

		revoked, err = guard.IsRevoked(ctx, claimsAt("bob", "t2", 1500))
		require.NoError(t, err)
		require.False(t, revoked)

		// Tokens issued after the mark stay valid.
		revoked, err = guard.IsRevoked(ctx, claimsAt("alice", "t3", 2001))
		require.NoError(t, err)
		require.False(t, revoked)
	})

	t.Run("individual token revocation ignores issuance time", func(t *testing.T) {
		store := newFakeRevocationStore()
		store.revokedTokens["t1"] = struct{}{}
		guard := NewRevocationGuard(store)

		revoked, err := guard.IsRevoked(ctx, claimsAt("u1", "t1", 9999999))
		require.NoError(t, err)
		require.True(t, revoked)

		revoked, err = guard.IsRevoked(ctx, claimsAt("u1", "t2", 9999999))
		require.NoError(t, err)
		require.False(t, revoked)
	})

	t.Run("store failure propagates instead of failing open", func(t *testing.T) {
		store := newFakeRevocationStore()
		store.failWith = errors.New("connection refused")
		guard := NewRevocationGuard(store)

		_, err := guard.IsRevoked(ctx, claimsAt("u1", "t1", 1000))
		require.Error(t, err)
		require.ErrorContains(t, err, "connection refused")
	})
}
