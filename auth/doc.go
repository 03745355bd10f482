// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and validation utilities.

# User Tokens

User tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateUserToken()

Tokens are URL-safe base64 encoded and presented via the X-User-Token
header to authenticate every per-user operation.

# Admin Keys

Group admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(groupID, salt)
	err := auth.ValidateAdminKey(groupID, adminKey, salt)

Since the key is deterministic from the group ID and salt, validation
needs no database lookup.

# Invite Slugs

Invite slugs create URL-friendly join codes for groups:

	slug := auth.GenerateInviteSlug(groupID, salt)

Slugs are base62 encoded (alphanumeric only) for easy sharing and are
deterministic from the group ID and salt.

# IP Hashing

For privacy-preserving audit logging of recorded comparisons:

	hash := auth.HashIP(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
