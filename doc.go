// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the lucky-draw API server.

Lucky Draw is a raffle platform: admins publish prize draws, users join
them with payout details and receive a unique reference number, and an
admin finalizes each draw by randomly selecting winners from the ledger.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3333 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string

Optional settings:

  - PORT (-p): Server port (default: 3333)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - QUERY_TIMEOUT_MS (-query-timeout-ms): per-query timeout (default: 5000)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - draws: draw lifecycle, participation ledger, eligibility and winner selection
  - handlers: HTTP request handlers (draws, participations, winners, users)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: ID generation and forwarded-identity parsing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
