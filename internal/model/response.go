package model

// TokenResponse is the successful login body.
type TokenResponse struct {
	Token string `json:"token"`
}

// RevocationResponse acknowledges a revocation request.
type RevocationResponse struct {
	Revoked bool `json:"revoked"`
}
