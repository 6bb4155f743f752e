// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/lucky-draw/models"
)

var ErrNoIdentity = errors.New("missing caller identity")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Identity is the request-scoped caller identity. The authentication
// service in front of this API terminates credentials and forwards the
// result in headers; the core trusts them and never validates credentials
// itself.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// FromRequest extracts the authenticated identity from the trusted
// X-User-ID and X-User-Role headers. A missing user ID means the request
// never passed the authentication layer.
func FromRequest(r *http.Request) (Identity, error) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		return Identity{}, ErrNoIdentity
	}

	role := r.Header.Get("X-User-Role")
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	return Identity{UserID: userID, Role: role}, nil
}
