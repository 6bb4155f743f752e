// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draws

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/lucky-draw/auth"
	"github.com/danielhkuo/lucky-draw/models"
)

// allowedTransitions is the draw state machine. completed and cancelled
// are terminal.
var allowedTransitions = map[string][]string{
	models.StatusUpcoming: {models.StatusActive, models.StatusCancelled},
	models.StatusActive:   {models.StatusCompleted, models.StatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func validStatus(status string) bool {
	switch status {
	case models.StatusUpcoming, models.StatusActive, models.StatusCompleted, models.StatusCancelled:
		return true
	}
	return false
}

// CreateDraw validates and persists a new draw. Admins may create draws as
// active or upcoming; the draw date must be strictly in the future.
func (s *Service) CreateDraw(ctx context.Context, req models.CreateDrawRequest, createdBy string) (*models.Draw, error) {
	if req.PrizeName == "" {
		return nil, validationErr("prizeName", "is required")
	}
	if req.DrawDate.IsZero() {
		return nil, validationErr("drawDate", "is required")
	}
	if !req.DrawDate.After(s.now()) {
		return nil, validationErr("drawDate", "must be in the future")
	}
	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		return nil, validationErr("maxParticipants", "must be at least 1")
	}
	if req.EntryFee != nil && *req.EntryFee < 0 {
		return nil, validationErr("entryFee", "must not be negative")
	}

	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	if status != models.StatusActive && status != models.StatusUpcoming {
		return nil, validationErr("status", "must be active or upcoming")
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate draw ID: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO draw (id, prize_name, description, draw_date, max_participants,
		                  entry_fee, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, id, req.PrizeName, req.Description, req.DrawDate.UTC(), intOrNil(req.MaxParticipants),
		floatOrNil(req.EntryFee), status, nullIfEmpty(createdBy), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert draw: %w", err)
	}

	slog.Info("draw created", "draw_id", id, "prize", req.PrizeName, "status", status)

	draw := &models.Draw{
		ID:              id,
		PrizeName:       req.PrizeName,
		Description:     req.Description,
		DrawDate:        req.DrawDate.UTC(),
		MaxParticipants: req.MaxParticipants,
		EntryFee:        req.EntryFee,
		Status:          status,
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return draw, nil
}

// GetDraw returns a draw with its committed participant count.
func (s *Service) GetDraw(ctx context.Context, id string) (*models.Draw, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		SELECT `+drawColumns+`
		FROM draw d
		WHERE d.id = $1
	`, id)

	draw, err := scanDraw(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query draw: %w", err)
	}
	return &draw, nil
}

// Transition moves a draw through its state machine. Terminal states never
// change again; anything the machine does not allow fails with
// ErrInvalidTransition.
func (s *Service) Transition(ctx context.Context, id, newStatus string) (*models.Draw, error) {
	if !validStatus(newStatus) {
		return nil, validationErr("status", "is not a valid draw status")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.lockDraw(ctx, tx, id); err != nil {
		return nil, err
	}

	var current string
	if err := tx.QueryRowContext(ctx, `SELECT status FROM draw WHERE id = $1`, id).Scan(&current); err != nil {
		return nil, fmt.Errorf("failed to query draw status: %w", err)
	}

	if !transitionAllowed(current, newStatus) {
		return nil, fmt.Errorf("%s to %s: %w", current, newStatus, ErrInvalidTransition)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE draw SET status = $1, updated_at = $2 WHERE id = $3
	`, newStatus, s.now().UTC(), id); err != nil {
		return nil, fmt.Errorf("failed to update draw status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	slog.Info("draw transitioned", "draw_id", id, "from", current, "to", newStatus)

	return s.GetDraw(ctx, id)
}

// UpdateDraw edits a draw's details in place. Nil request fields keep
// their stored value. Terminal draws are immutable; a status change rides
// along only when the state machine allows it.
func (s *Service) UpdateDraw(ctx context.Context, id string, req models.UpdateDrawRequest) (*models.Draw, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.lockDraw(ctx, tx, id); err != nil {
		return nil, err
	}

	row := tx.QueryRowContext(ctx, `SELECT `+drawColumns+` FROM draw d WHERE d.id = $1`, id)
	current, err := scanDraw(row)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw: %w", err)
	}

	if current.Status == models.StatusCompleted || current.Status == models.StatusCancelled {
		return nil, fmt.Errorf("%s draw is immutable: %w", current.Status, ErrInvalidTransition)
	}

	next := current
	if req.PrizeName != nil {
		if *req.PrizeName == "" {
			return nil, validationErr("prizeName", "must not be empty")
		}
		next.PrizeName = *req.PrizeName
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.DrawDate != nil {
		if !req.DrawDate.After(s.now()) {
			return nil, validationErr("drawDate", "must be in the future")
		}
		next.DrawDate = req.DrawDate.UTC()
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < 1 {
			return nil, validationErr("maxParticipants", "must be at least 1")
		}
		// The ledger never shrinks; a cap below the committed entry count
		// would orphan existing participants.
		if *req.MaxParticipants < current.ParticipantCount {
			return nil, validationErr("maxParticipants", "must not be below the current participant count")
		}
		next.MaxParticipants = req.MaxParticipants
	}
	if req.EntryFee != nil {
		if *req.EntryFee < 0 {
			return nil, validationErr("entryFee", "must not be negative")
		}
		next.EntryFee = req.EntryFee
	}
	if req.Status != nil && *req.Status != current.Status {
		if !validStatus(*req.Status) {
			return nil, validationErr("status", "is not a valid draw status")
		}
		if !transitionAllowed(current.Status, *req.Status) {
			return nil, fmt.Errorf("%s to %s: %w", current.Status, *req.Status, ErrInvalidTransition)
		}
		next.Status = *req.Status
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE draw
		SET prize_name = $1, description = $2, draw_date = $3, max_participants = $4,
		    entry_fee = $5, status = $6, updated_at = $7
		WHERE id = $8
	`, next.PrizeName, next.Description, next.DrawDate, intOrNil(next.MaxParticipants),
		floatOrNil(next.EntryFee), next.Status, s.now().UTC(), id); err != nil {
		return nil, fmt.Errorf("failed to update draw: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit draw update: %w", err)
	}

	slog.Info("draw updated", "draw_id", id, "status", next.Status)

	return s.GetDraw(ctx, id)
}

// ListDraws returns draws matching the filter, newest first. Restart the
// listing by calling again.
func (s *Service) ListDraws(ctx context.Context, filter models.DrawFilter) ([]models.Draw, error) {
	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, validationErr("status", "is not a valid draw status")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + drawColumns + ` FROM draw d`
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("d.status = $%d", len(args)))
	}
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		conds = append(conds, fmt.Sprintf("d.created_by = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY d.created_at DESC, d.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}
	defer rows.Close()

	draws := []models.Draw{}
	for rows.Next() {
		d, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		draws = append(draws, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read draws: %w", err)
	}
	return draws, nil
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
