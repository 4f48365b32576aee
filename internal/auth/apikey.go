// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// API key format: <prefix><base64url(32 random bytes)>
//
//	sgc_3q2+7w...   company key
//	sgs_Xk9f0b...   sensor key
//
// Only the SHA-256 hex digest and the first keyPrefixDisplayLength
// characters are stored. Keys carry 256 bits of entropy.
const (
	CompanyKeyPrefix = "sgc_"
	SensorKeyPrefix  = "sgs_"

	// keySecretLength is the length of the random secret portion (bytes).
	keySecretLength = 32

	// keyPrefixDisplayLength is the number of leading characters kept for
	// identification in listings and logs.
	keyPrefixDisplayLength = 12
)

// APIKey is a freshly generated credential. Plaintext is handed to the
// caller exactly once and never persisted.
type APIKey struct {
	Plaintext string
	Prefix    string
	Hash      string
}

// GenerateKey creates a new key for the given role. Only RoleCompany and
// RoleSensor carry API keys.
func GenerateKey(role Role) (APIKey, error) {
	var prefix string
	switch role {
	case RoleCompany:
		prefix = CompanyKeyPrefix
	case RoleSensor:
		prefix = SensorKeyPrefix
	default:
		return APIKey{}, fmt.Errorf("no API key type for role %q", role)
	}

	secret := make([]byte, keySecretLength)
	if _, err := rand.Read(secret); err != nil {
		return APIKey{}, fmt.Errorf("failed to generate key secret: %w", err)
	}

	plaintext := prefix + base64.RawURLEncoding.EncodeToString(secret)
	return APIKey{
		Plaintext: plaintext,
		Prefix:    DisplayPrefix(plaintext),
		Hash:      HashKey(plaintext),
	}, nil
}

// HashKey returns the hex SHA-256 digest used to look a key up.
func HashKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// DisplayPrefix returns the identifying prefix stored alongside the hash.
func DisplayPrefix(plaintext string) string {
	if len(plaintext) <= keyPrefixDisplayLength {
		return plaintext
	}
	return plaintext[:keyPrefixDisplayLength]
}
