// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidOwnerKey = errors.New("invalid owner key")

// ownerKeyContext keeps owner keys distinct from any other HMAC made with
// the same salt.
const ownerKeyContext = "calendar-owner:"

// NewID returns a random UUIDv4 string for a database record.
func NewID() string {
	return uuid.NewString()
}

// GenerateOwnerKey creates an HMAC-based owner key for a calendar.
// This is deterministic and verifiable
func GenerateOwnerKey(calendarID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ownerKeyContext + calendarID))
	sum := h.Sum(nil)
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateOwnerKey checks the provided key against the calendar ID.
func ValidateOwnerKey(calendarID, ownerKey, salt string) error {
	if ownerKey == "" {
		return ErrInvalidOwnerKey
	}
	expected := GenerateOwnerKey(calendarID, salt)
	if !hmac.Equal([]byte(ownerKey), []byte(expected)) {
		return ErrInvalidOwnerKey
	}
	return nil
}
