// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- User directory. Credentials and sessions live with the external auth
-- service; this table only backs lookups and admin listings.
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_app_user_email ON app_user(email);

-- Draws
CREATE TABLE IF NOT EXISTS draw (
    id TEXT PRIMARY KEY,
    prize_name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    draw_date TIMESTAMP NOT NULL,
    max_participants INTEGER CHECK (max_participants > 0),
    entry_fee NUMERIC(10,2),
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('upcoming', 'active', 'completed', 'cancelled')),
    created_by TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_draw_status ON draw(status);
CREATE INDEX IF NOT EXISTS idx_draw_created_by ON draw(created_by);

-- Participations. The composite UNIQUE is the ledger's duplicate-join
-- backstop; reference_number uniqueness backs the generator retry loop.
CREATE TABLE IF NOT EXISTS participation (
    id TEXT PRIMARY KEY,
    draw_id TEXT NOT NULL REFERENCES draw(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    reference_number TEXT NOT NULL UNIQUE,
    phone_number TEXT NOT NULL,
    account_number TEXT NOT NULL,
    bank_name TEXT NOT NULL,
    participation_notes TEXT NOT NULL DEFAULT '',
    is_winner BOOLEAN,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (draw_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_participation_draw_id ON participation(draw_id);
CREATE INDEX IF NOT EXISTS idx_participation_user_id ON participation(user_id);
`
