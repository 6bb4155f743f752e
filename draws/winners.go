// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draws

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/danielhkuo/lucky-draw/models"
)

// pickWinners draws a uniform without-replacement sample of up to n
// entries by partial Fisher-Yates: after i swaps, candidates[:i] is an
// unbiased sample of the pool. Mutates candidates; the returned slice
// aliases its front.
func pickWinners(rng *rand.Rand, candidates []models.Participation, n int) []models.Participation {
	if n > len(candidates) {
		n = len(candidates)
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:n]
}

// SelectWinners finalizes a draw: it picks up to count distinct winners
// uniformly at random from the undecided participant pool, marks everyone
// else a non-winner, and completes the draw. One shot per draw - a second
// invocation fails with ErrAlreadyFinalized and leaves the first outcome
// untouched.
//
// The selection runs under the draw's row lock, so a join racing this call
// either commits before the pool is read (and takes part in the draw) or
// re-checks status afterwards and fails with ErrDrawNotActive.
func (s *Service) SelectWinners(ctx context.Context, drawID string, count int) ([]models.Participation, error) {
	if count < 1 {
		return nil, validationErr("count", "must be at least 1")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.lockDraw(ctx, tx, drawID); err != nil {
		return nil, err
	}

	var status string
	if err := tx.QueryRowContext(ctx, `SELECT status FROM draw WHERE id = $1`, drawID).Scan(&status); err != nil {
		return nil, fmt.Errorf("failed to query draw status: %w", err)
	}
	if status != models.StatusActive && status != models.StatusCompleted {
		return nil, fmt.Errorf("%s to %s: %w", status, models.StatusCompleted, ErrInvalidTransition)
	}

	var finalized bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM participation WHERE draw_id = $1 AND is_winner = TRUE)
	`, drawID).Scan(&finalized)
	if err != nil {
		return nil, fmt.Errorf("failed to check prior winners: %w", err)
	}
	if finalized {
		return nil, ErrAlreadyFinalized
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT `+participationColumns+`
		FROM participation
		WHERE draw_id = $1 AND is_winner IS NULL
		ORDER BY created_at, id
	`, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participant pool: %w", err)
	}
	candidates, err := collectParticipations(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	s.rngMu.Lock()
	winners := pickWinners(s.rng, candidates, count)
	s.rngMu.Unlock()
	for i := range winners {
		if _, err := tx.ExecContext(ctx, `
			UPDATE participation SET is_winner = TRUE WHERE id = $1
		`, winners[i].ID); err != nil {
			return nil, fmt.Errorf("failed to mark winner: %w", err)
		}
		isWinner := true
		winners[i].IsWinner = &isWinner
	}

	// Undecided entries become explicit non-winners; finalization leaves
	// no tri-state remainder behind.
	if _, err := tx.ExecContext(ctx, `
		UPDATE participation SET is_winner = FALSE WHERE draw_id = $1 AND is_winner IS NULL
	`, drawID); err != nil {
		return nil, fmt.Errorf("failed to mark non-winners: %w", err)
	}

	if status == models.StatusActive {
		if _, err := tx.ExecContext(ctx, `
			UPDATE draw SET status = $1, updated_at = $2 WHERE id = $3
		`, models.StatusCompleted, s.now().UTC(), drawID); err != nil {
			return nil, fmt.Errorf("failed to complete draw: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit winner selection: %w", err)
	}

	slog.Info("winners selected",
		"draw_id", drawID,
		"requested", count,
		"selected", len(winners),
		"pool", len(candidates),
	)

	return winners, nil
}
