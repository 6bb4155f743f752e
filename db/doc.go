// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - app_user: User directory (no credentials; auth is external)
  - draw: Draw metadata and lifecycle state
  - participation: One entry per user per draw

# Relationships

	draw 1──* participation

participation.user_id is a plain reference; user identity is owned by the
authentication service and not enforced as a foreign key here.

# Constraints

  - draw.status CHECK (upcoming | active | completed | cancelled)
  - draw.max_participants CHECK (> 0)
  - participation UNIQUE (draw_id, user_id)
  - participation.reference_number UNIQUE
  - app_user.email UNIQUE
*/
package db
