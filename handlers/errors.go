// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/lucky-draw/auth"
	"github.com/danielhkuo/lucky-draw/draws"
	"github.com/danielhkuo/lucky-draw/middleware"
)

// writeDomainError maps ledger and lifecycle errors onto HTTP statuses.
// Every handler funnels service errors through here so the status mapping
// stays in one place.
func writeDomainError(w http.ResponseWriter, err error) {
	var vErr *draws.ValidationError
	switch {
	case errors.As(err, &vErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, draws.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Draw not found")
	case errors.Is(err, draws.ErrDrawNotActive):
		middleware.ErrorResponse(w, http.StatusConflict, "Draw is not open for participation")
	case errors.Is(err, draws.ErrDrawDateElapsed):
		middleware.ErrorResponse(w, http.StatusConflict, "Draw date has already passed")
	case errors.Is(err, draws.ErrCapacityReached):
		middleware.ErrorResponse(w, http.StatusConflict, "Draw has reached its participant limit")
	case errors.Is(err, draws.ErrAlreadyJoined):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already joined this draw")
	case errors.Is(err, draws.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, "Status change not allowed from the draw's current state")
	case errors.Is(err, draws.ErrAlreadyFinalized):
		middleware.ErrorResponse(w, http.StatusConflict, "Winners have already been drawn")
	case errors.Is(err, draws.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Conflicting update, please retry")
	case errors.Is(err, draws.ErrGenerationExhausted):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Could not assign a reference number, please retry")
	case errors.Is(err, context.DeadlineExceeded):
		middleware.ErrorResponse(w, http.StatusGatewayTimeout, "Request timed out")
	default:
		slog.Error("Unhandled service error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// requireIdentity extracts the caller's identity or writes a 401.
// Returns false when the response has already been written.
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, err := auth.FromRequest(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return auth.Identity{}, false
	}
	return id, true
}

// requireAdmin extracts the caller's identity and enforces the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return auth.Identity{}, false
	}
	if !id.IsAdmin() {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin access required")
		return auth.Identity{}, false
	}
	return id, true
}
