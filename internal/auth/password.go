package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters, sized for interactive login latency.
const (
	argonMemory  uint32 = 15 * 1024
	argonTime    uint32 = 2
	argonThreads uint8  = 1
	argonSaltLen        = 16
	argonKeyLen  uint32 = 32
)

type argonParams struct {
	version int
	memory  uint32
	time    uint32
	threads uint8
}

// HashPassword derives an Argon2id hash of the password under a fresh random
// salt and returns it as a PHC-format string that embeds the parameters.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}

	digest := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest))

	return encoded, nil
}

// VerifyPassword recomputes the hash of password under the parameters embedded
// in the stored PHC string and compares digests in constant time. A mismatched
// password returns (false, nil); only empty input or an unparseable stored
// hash produce an error.
func VerifyPassword(password string, encodedHash string) (bool, error) {
	if password == "" {
		return false, ErrEmptyPassword
	}

	params, salt, digest, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(digest)))

	return subtle.ConstantTimeCompare(computed, digest) == 1, nil
}

func decodeHash(encodedHash string) (argonParams, []byte, []byte, error) {
	var params argonParams

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, ErrInvalidHashFormat
	}

	if _, err := fmt.Sscanf(parts[2], "v=%d", &params.version); err != nil {
		return params, nil, nil, ErrInvalidHashFormat
	}
	if params.version != argon2.Version {
		return params, nil, nil, ErrInvalidHashFormat
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return params, nil, nil, ErrInvalidHashFormat
	}
	// argon2.IDKey panics on cost parameters below its minimums, so a hash
	// that parses but carries t=0, p=0 or too little memory is still invalid.
	if params.time < 1 || params.threads < 1 || params.memory < 8*uint32(params.threads) {
		return params, nil, nil, ErrInvalidHashFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, ErrInvalidHashFormat
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return params, nil, nil, ErrInvalidHashFormat
	}

	return params, salt, digest, nil
}
