// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// GenerateUserToken creates a random secure token identifying a user.
// Presented via the X-User-Token header on every authenticated request.
func GenerateUserToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate user token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// GenerateAdminKey creates an HMAC-based admin key for a group.
// Deterministic from the group ID and salt, so it can be validated without
// storing the key.
func GenerateAdminKey(groupID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(groupID))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the group
func ValidateAdminKey(groupID, adminKey, salt string) error {
	expected := GenerateAdminKey(groupID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateInviteSlug creates a short, deterministic URL slug a group owner
// can share to let others join. Base62 keeps it free of URL-special chars.
func GenerateInviteSlug(groupID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(groupID))
	sum := h.Sum(nil)

	// First 8 bytes keep the slug short while leaving collisions negligible
	return base62Encode(sum[:8])
}

// base62Encode converts up to 8 bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

// HashIP creates a one-way salted hash of an IP address so comparison audit
// rows never store raw addresses.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 8 bytes (16 hex chars) are enough for deduplication
	return hex.EncodeToString(sum[:8])
}
