// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draws

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/danielhkuo/lucky-draw/models"
)

// Service owns all draw and participation state. Every write path runs in a
// transaction that first takes a write lock on the draw row, so joins and
// winner selection against one draw are strictly serialized.
type Service struct {
	db      *sql.DB
	timeout time.Duration

	// rng drives winner selection; injected so tests can seed it.
	// math/rand sources are not safe for concurrent use, hence the mutex.
	rngMu sync.Mutex
	rng   *rand.Rand

	now func() time.Time

	// newRef generates candidate reference numbers; injected so tests can
	// force collisions.
	newRef func(time.Time) (string, error)
}

// NewService wires the domain service to its datastore. timeout bounds
// every store call; rng is the randomness source for winner selection.
func NewService(db *sql.DB, timeout time.Duration, rng *rand.Rand) *Service {
	return &Service{
		db:      db,
		timeout: timeout,
		rng:     rng,
		now:     time.Now,
		newRef:  NewReference,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// lockDraw serializes writers on a single draw by touching its row inside
// tx. SELECT ... FOR UPDATE is not portable to sqlite; an UPDATE takes the
// row lock on postgres and the write lock on sqlite alike.
func (s *Service) lockDraw(ctx context.Context, tx *sql.Tx, drawID string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE draw SET updated_at = $1 WHERE id = $2
	`, s.now().UTC(), drawID)
	if err != nil {
		return fmt.Errorf("failed to lock draw: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to lock draw: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

const drawColumns = `d.id, d.prize_name, d.description, d.draw_date, d.max_participants,
	       d.entry_fee, d.status, d.created_by, d.created_at, d.updated_at,
	       (SELECT COUNT(*) FROM participation p WHERE p.draw_id = d.id)`

func scanDraw(row rowScanner) (models.Draw, error) {
	var (
		d               models.Draw
		maxParticipants sql.NullInt64
		entryFee        sql.NullFloat64
		createdBy       sql.NullString
	)
	err := row.Scan(&d.ID, &d.PrizeName, &d.Description, &d.DrawDate, &maxParticipants,
		&entryFee, &d.Status, &createdBy, &d.CreatedAt, &d.UpdatedAt, &d.ParticipantCount)
	if err != nil {
		return models.Draw{}, err
	}
	if maxParticipants.Valid {
		v := int(maxParticipants.Int64)
		d.MaxParticipants = &v
	}
	if entryFee.Valid {
		v := entryFee.Float64
		d.EntryFee = &v
	}
	if createdBy.Valid {
		d.CreatedBy = createdBy.String
	}
	return d, nil
}

const participationColumns = `id, draw_id, user_id, reference_number, phone_number,
	       account_number, bank_name, participation_notes, is_winner, created_at`

func scanParticipation(row rowScanner) (models.Participation, error) {
	var (
		p        models.Participation
		isWinner sql.NullBool
	)
	err := row.Scan(&p.ID, &p.DrawID, &p.UserID, &p.ReferenceNumber, &p.PhoneNumber,
		&p.AccountNumber, &p.BankName, &p.ParticipationNotes, &isWinner, &p.CreatedAt)
	if err != nil {
		return models.Participation{}, err
	}
	if isWinner.Valid {
		v := isWinner.Bool
		p.IsWinner = &v
	}
	return p, nil
}
