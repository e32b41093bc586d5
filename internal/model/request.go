package model

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// LoginRequest is the login payload. The identifier is either an email or a
// username.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate returns field-level failures keyed by field name. An empty map
// means the payload is valid.
func (r LoginRequest) Validate() map[string][]string {
	fields := map[string][]string{}

	if strings.Contains(r.Identifier, "@") {
		if !emailPattern.MatchString(r.Identifier) {
			fields["identifier"] = append(fields["identifier"], "invalid email format")
		}
	} else if len(r.Identifier) < 3 {
		fields["identifier"] = append(fields["identifier"], "username must be at least 3 characters long")
	}

	if len(r.Password) < 3 || len(r.Password) > 20 {
		fields["password"] = append(fields["password"], "password must be between 3 and 20 characters")
	}

	return fields
}

// RevokeUserRequest names the user whose tokens should be revoked.
type RevokeUserRequest struct {
	UserID string `json:"user_id"`
}

// RolesContain reports whether a comma-separated roles string carries the
// given role. It is the single parser of that format.
func RolesContain(roles string, role string) bool {
	for _, candidate := range strings.Split(roles, ",") {
		if strings.EqualFold(strings.TrimSpace(candidate), role) {
			return true
		}
	}

	return false
}
