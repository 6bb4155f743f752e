// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draws

import (
	"time"

	"github.com/danielhkuo/lucky-draw/models"
)

// CanJoin decides whether a user may enter a draw at the given instant.
// Pure: no clock, no storage. Checks run in a fixed order so the same state
// always surfaces the same reason:
//
//  1. draw must be active
//  2. the draw date must not have elapsed
//  3. capacity must remain (when maxParticipants is set)
//  4. the user must not already hold an entry
//
// Returns nil when the user is eligible. Callers must re-evaluate against
// live state inside the committing transaction; a stale count or status
// here is only advisory.
func CanJoin(d *models.Draw, participantCount int, alreadyJoined bool, now time.Time) error {
	if d.Status != models.StatusActive {
		return ErrDrawNotActive
	}
	if !now.Before(d.DrawDate) {
		return ErrDrawDateElapsed
	}
	if d.MaxParticipants != nil && participantCount >= *d.MaxParticipants {
		return ErrCapacityReached
	}
	if alreadyJoined {
		return ErrAlreadyJoined
	}
	return nil
}
