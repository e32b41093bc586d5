package auth

import "errors"

var (
	// Credential errors
	ErrWrongCredentials   = errors.New("invalid credential combination")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrEmptyPassword      = errors.New("password cannot be empty")
	ErrInvalidHashFormat  = errors.New("invalid password hash format")
	ErrHashing            = errors.New("error while hashing password")

	// Token errors
	ErrTokenCreation              = errors.New("token creation error")
	ErrInvalidToken               = errors.New("invalid token")
	ErrInvalidBearerToken         = errors.New("invalid bearer token")
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)
