package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a username identifier", func(t *testing.T) {
		fields := LoginRequest{Identifier: "alice", Password: "secret"}.Validate()
		require.Empty(t, fields)
	})

	t.Run("accepts an email identifier", func(t *testing.T) {
		fields := LoginRequest{Identifier: "alice@example.com", Password: "secret"}.Validate()
		require.Empty(t, fields)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		fields := LoginRequest{Identifier: "alice@", Password: "secret"}.Validate()
		require.Contains(t, fields, "identifier")
		require.Contains(t, fields["identifier"][0], "invalid email format")
	})

	t.Run("rejects a short username", func(t *testing.T) {
		fields := LoginRequest{Identifier: "al", Password: "secret"}.Validate()
		require.Contains(t, fields, "identifier")
		require.Contains(t, fields["identifier"][0], "at least 3 characters")
	})

	t.Run("rejects an out-of-range password", func(t *testing.T) {
		fields := LoginRequest{Identifier: "alice", Password: "ab"}.Validate()
		require.Contains(t, fields, "password")

		fields = LoginRequest{Identifier: "alice", Password: "abcdefghijklmnopqrstu"}.Validate()
		require.Contains(t, fields, "password")
	})

	t.Run("collects failures across fields", func(t *testing.T) {
		fields := LoginRequest{Identifier: "a@", Password: ""}.Validate()
		require.Len(t, fields, 2)
	})
}

func TestUserHasRole(t *testing.T) {
	t.Parallel()

	u := User{Roles: "user, admin"}
	require.True(t, u.HasRole("admin"))
	require.True(t, u.HasRole("USER"))
	require.False(t, u.HasRole("auditor"))
}

func TestRolesContain(t *testing.T) {
	t.Parallel()

	require.True(t, RolesContain("user,admin", "admin"))
	require.True(t, RolesContain(" user , Admin ", "admin"))
	require.False(t, RolesContain("user", "admin"))
	// A substring of a role name is not a match.
	require.False(t, RolesContain("administrator", "admin"))
	require.False(t, RolesContain("", "admin"))
}
