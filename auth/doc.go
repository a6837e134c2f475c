// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides record IDs and calendar owner keys.

# Owner Keys

Owner keys use HMAC-SHA256 to create deterministic, verifiable keys:

	ownerKey := auth.GenerateOwnerKey(calendarID, salt)
	err := auth.ValidateOwnerKey(calendarID, ownerKey, salt)

The key is returned once when the calendar is created and sent back in the
X-Owner-Key header on every owner operation. It is URL-safe base64 encoded
without padding. Since it's deterministic, the same calendar ID and salt
always produce the same key, so nothing is stored in the database.

# ID Generation

Record IDs are random UUIDs from github.com/google/uuid:

	id := auth.NewID()
*/
package auth
