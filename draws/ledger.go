// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draws

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/danielhkuo/lucky-draw/models"
	"github.com/google/uuid"
)

// phonePattern matches the mobile number format the join form collects.
var phonePattern = regexp.MustCompile(`^(\+92|0)?3[0-9]{9}$`)

func validateJoinDetails(details models.JoinDrawRequest) error {
	if details.PhoneNumber == "" {
		return validationErr("phoneNumber", "is required")
	}
	if !phonePattern.MatchString(details.PhoneNumber) {
		return validationErr("phoneNumber", "is not a valid mobile number")
	}
	if details.AccountNumber == "" {
		return validationErr("accountNumber", "is required")
	}
	if details.BankName == "" {
		return validationErr("bankName", "is required")
	}
	return nil
}

// Join records a user's entry in a draw. The whole operation - eligibility
// re-check, reference generation, and insert - runs in one transaction
// holding the draw's row lock, so two concurrent joins can never both take
// the last capacity slot or the same user's unique slot.
func (s *Service) Join(ctx context.Context, drawID, userID string, details models.JoinDrawRequest) (*models.Participation, error) {
	if userID == "" {
		return nil, validationErr("userId", "is required")
	}
	if err := validateJoinDetails(details); err != nil {
		return nil, err
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

	// Live state, read under the lock. A draw cancelled or filled by an
	// earlier writer is visible here before we commit anything.
	row := tx.QueryRowContext(ctx, `SELECT `+drawColumns+` FROM draw d WHERE d.id = $1`, drawID)
	draw, err := scanDraw(row)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw: %w", err)
	}

	var alreadyJoined bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM participation WHERE draw_id = $1 AND user_id = $2)
	`, drawID, userID).Scan(&alreadyJoined)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing participation: %w", err)
	}

	if err := CanJoin(&draw, draw.ParticipantCount, alreadyJoined, s.now()); err != nil {
		return nil, err
	}

	p := models.Participation{
		ID:                 uuid.NewString(),
		DrawID:             drawID,
		UserID:             userID,
		PhoneNumber:        details.PhoneNumber,
		AccountNumber:      details.AccountNumber,
		BankName:           details.BankName,
		ParticipationNotes: details.ParticipationNotes,
		CreatedAt:          s.now().UTC(),
	}

	if err := s.insertWithFreshReference(ctx, tx, &p); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit join: %w", err)
	}

	slog.Info("participation recorded",
		"draw_id", drawID,
		"user_id", userID,
		"reference", p.ReferenceNumber,
	)

	return &p, nil
}

// insertWithFreshReference inserts p, generating a new reference number
// for each attempt. The reference column's unique constraint is the sole
// collision arbiter; a violated insert aborts the enclosing postgres
// transaction, so every attempt runs under a savepoint it can roll back
// to. refMaxAttempts bounds the loop.
func (s *Service) insertWithFreshReference(ctx context.Context, tx *sql.Tx, p *models.Participation) error {
	for attempt := 0; attempt < refMaxAttempts; attempt++ {
		ref, err := s.newRef(s.now())
		if err != nil {
			return err
		}
		p.ReferenceNumber = ref

		if _, err := tx.ExecContext(ctx, `SAVEPOINT participation_insert`); err != nil {
			return fmt.Errorf("failed to set savepoint: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO participation (id, draw_id, user_id, reference_number, phone_number,
			                           account_number, bank_name, participation_notes, is_winner, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL, $9)
		`, p.ID, p.DrawID, p.UserID, p.ReferenceNumber, p.PhoneNumber,
			p.AccountNumber, p.BankName, p.ParticipationNotes, p.CreatedAt)
		if err == nil {
			return nil
		}

		if isUniqueViolation(err, "reference_number") {
			if _, rbErr := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT participation_insert`); rbErr != nil {
				return fmt.Errorf("failed to roll back savepoint: %w", rbErr)
			}
			slog.Warn("reference number collision, retrying", "reference", ref, "attempt", attempt+1)
			continue
		}
		if isUniqueViolation(err, "user_id") {
			// The row lock serializes joins per draw, so a duplicate-entry
			// hit here means a writer outside that discipline; surface it as
			// a lost race.
			return ErrConflict
		}
		return fmt.Errorf("failed to insert participation: %w", err)
	}
	return ErrGenerationExhausted
}

// ListForDraw returns a draw's participations in insertion order.
func (s *Service) ListForDraw(ctx context.Context, drawID string) ([]models.Participation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM draw WHERE id = $1)`, drawID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check draw: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+participationColumns+`
		FROM participation
		WHERE draw_id = $1
		ORDER BY created_at, id
	`, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participations: %w", err)
	}
	defer rows.Close()

	return collectParticipations(rows)
}

// ListForUser returns every participation a user holds, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Participation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+participationColumns+`
		FROM participation
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participations: %w", err)
	}
	defer rows.Close()

	return collectParticipations(rows)
}

// CountForDraw reports the committed number of entries for a draw.
func (s *Service) CountForDraw(ctx context.Context, drawID string) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM participation WHERE draw_id = $1
	`, drawID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count participations: %w", err)
	}
	return count, nil
}

func collectParticipations(rows *sql.Rows) ([]models.Participation, error) {
	participations := []models.Participation{}
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participation: %w", err)
		}
		participations = append(participations, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read participations: %w", err)
	}
	return participations, nil
}
