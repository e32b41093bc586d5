package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// signClaims produces a correctly-signed token for arbitrary claim contents.
func signClaims(t *testing.T, claims *AccessClaims, secret string) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testTokenConfig() TokenConfig {
	return TokenConfig{
		Secret:    "test-secret-at-least-32-bytes-long!!",
		AccessTTL: 15 * time.Minute,
		Leeway:    30 * time.Second,
	}
}

func TestIssueAccessToken(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()
	userID := uuid.NewString()

	t.Run("round trip preserves claims", func(t *testing.T) {
		token, err := IssueAccessToken(userID, "user,admin", cfg)
		require.NoError(t, err)

		claims, err := DecodeAccessToken(token, cfg)
		require.NoError(t, err)
		require.Equal(t, userID, claims.Subject())
		require.Equal(t, "user,admin", claims.Roles)
		require.Equal(t, AccessToken, TokenTypeFrom(claims.Typ))
		require.InDelta(t, time.Now().Unix(), claims.IssuedAtUnix(), 5)
		require.Equal(t, claims.IssuedAtUnix()+int64(cfg.AccessTTL.Seconds()), claims.ExpiresAtUnix())
	})

	t.Run("jti is a fresh UUID per issuance", func(t *testing.T) {
		first, err := IssueAccessToken(userID, "user", cfg)
		require.NoError(t, err)
		second, err := IssueAccessToken(userID, "user", cfg)
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		firstClaims, err := DecodeAccessToken(first, cfg)
		require.NoError(t, err)
		secondClaims, err := DecodeAccessToken(second, cfg)
		require.NoError(t, err)

		_, err = uuid.Parse(firstClaims.TokenID())
		require.NoError(t, err)
		require.NotEqual(t, firstClaims.TokenID(), secondClaims.TokenID())
	})
}

func TestDecodeAccessToken(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := DecodeAccessToken("not.a.token", cfg)
		require.ErrorIs(t, err, ErrInvalidBearerToken)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		other := cfg
		other.Secret = "a-completely-different-secret-key!!!"
		token, err := IssueAccessToken(uuid.NewString(), "user", other)
		require.NoError(t, err)

		_, err = DecodeAccessToken(token, cfg)
		require.ErrorIs(t, err, ErrInvalidBearerToken)
	})

	t.Run("rejects expiry beyond leeway", func(t *testing.T) {
		expired := cfg
		expired.AccessTTL = -2 * time.Minute
		token, err := IssueAccessToken(uuid.NewString(), "user", expired)
		require.NoError(t, err)

		_, err = DecodeAccessToken(token, cfg)
		require.ErrorIs(t, err, ErrInvalidBearerToken)
	})

	t.Run("accepts expiry within leeway", func(t *testing.T) {
		justExpired := cfg
		justExpired.AccessTTL = -5 * time.Second
		token, err := IssueAccessToken(uuid.NewString(), "user", justExpired)
		require.NoError(t, err)

		_, err = DecodeAccessToken(token, cfg)
		require.NoError(t, err)
	})

	t.Run("rejects well-signed tokens of another kind", func(t *testing.T) {
		now := time.Now().Unix()
		for _, typ := range []uint8{uint8(RefreshToken), 7} {
			token := signClaims(t, &AccessClaims{
				Sub:   uuid.NewString(),
				ID:    uuid.NewString(),
				Iat:   now,
				Exp:   now + 900,
				Typ:   typ,
				Roles: "user",
			}, cfg.Secret)

			_, err := DecodeAccessToken(token, cfg)
			require.ErrorIs(t, err, ErrInvalidToken, "typ: %d", typ)
			require.NotErrorIs(t, err, ErrInvalidBearerToken)
		}
	})

	t.Run("rejects a tampered payload", func(t *testing.T) {
		token, err := IssueAccessToken(uuid.NewString(), "user", cfg)
		require.NoError(t, err)

		tampered := []byte(token)
		middle := len(tampered) / 2
		if tampered[middle] == 'A' {
			tampered[middle] = 'B'
		} else {
			tampered[middle] = 'A'
		}

		_, err = DecodeAccessToken(string(tampered), cfg)
		require.ErrorIs(t, err, ErrInvalidBearerToken)
	})
}

func TestTokenTypeFrom(t *testing.T) {
	t.Parallel()

	require.Equal(t, AccessToken, TokenTypeFrom(0))
	require.Equal(t, RefreshToken, TokenTypeFrom(1))
	require.Equal(t, UnknownToken, TokenTypeFrom(2))
	require.Equal(t, UnknownToken, TokenTypeFrom(250))
	require.Equal(t, "access", AccessToken.String())
	require.Equal(t, "refresh", RefreshToken.String())
	require.Equal(t, "unknown", UnknownToken.String())
}
