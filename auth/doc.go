// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity extraction and ID generation.

# Identity

Authentication happens upstream: a fronting auth service validates
credentials and forwards the result as trusted headers. Handlers pull the
caller out of the request:

	identity, err := auth.FromRequest(r)
	if err != nil {
		// 401
	}
	if !identity.IsAdmin() {
		// 403
	}

Headers:

  - X-User-ID: the authenticated user's ID (required)
  - X-User-Role: "user" or "admin" (anything else is treated as "user")

# ID Generation

GenerateID produces random hex identifiers:

	drawID, err := auth.GenerateID(16) // 32 hex chars
*/
package auth
