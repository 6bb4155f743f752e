// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package draws is the domain core of the lucky-draw service: the draw
lifecycle, the participation ledger, eligibility rules, and winner
selection. Handlers translate HTTP to these operations and back; nothing in
this package knows about HTTP.

# Service

All operations hang off a Service bound to a *sql.DB:

	svc := draws.NewService(db, cfg.QueryTimeout(), rand.New(rand.NewSource(time.Now().UnixNano())))

The rand source is injected so winner selection is reproducible under test.

# Draw Lifecycle

	upcoming ──→ active ──→ completed
	    │           │
	    └───────────┴─────→ cancelled

CreateDraw admits active or upcoming. Transition enforces the machine;
completed and cancelled are terminal. Only SelectWinners moves a draw to
completed.

# Joining

Join re-checks eligibility against live state, generates a reference
number, and inserts - all inside one transaction that holds a write lock on
the draw row. The lock serializes joins and winner selection per draw, so
capacity and uniqueness hold under concurrency; a UNIQUE (draw_id, user_id)
index and a unique reference_number column back the same invariants at the
schema level.

Eligibility reasons, checked in order by CanJoin:

	ErrDrawNotActive
	ErrDrawDateElapsed
	ErrCapacityReached
	ErrAlreadyJoined

# Winner Selection

SelectWinners draws min(count, pool) distinct winners with a partial
Fisher-Yates shuffle, marks every other entry a non-winner, and completes
the draw. The operation is one-shot: any existing winner fails the call
with ErrAlreadyFinalized.

# References

NewReference produces codes like REF-MFJ0X2K1-A83Z9. The ledger retries
collisions up to three times before failing with ErrGenerationExhausted.
*/
package draws
