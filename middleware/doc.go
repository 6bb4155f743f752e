// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Response Helpers

All responses use the envelope shape the front end expects:

	middleware.JSONResponse(w, http.StatusOK, draw, "")
	// {"success":true,"data":{...}}

	middleware.ErrorResponse(w, http.StatusConflict, "draw is full")
	// {"success":false,"message":"draw is full"}

# Request Helpers

	var req models.JoinDrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil { ... }

# Middleware

  - WithLogging: logs request start/completion with duration
  - CORS: permissive cross-origin headers plus preflight handling
*/
package middleware
