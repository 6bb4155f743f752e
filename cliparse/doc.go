// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing from CLI flags and environment.

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Configuration Sources

Values are resolved in order: CLI flag, environment variable, default.
A .env file in the working directory is loaded first when present.

  - -p / PORT: server port (default: 3333)
  - -d / DATABASE_URL: database connection string (required)
  - -t / DATABASE_TYPE: "postgres" or "sqlite" (default: postgres)
  - -query-timeout-ms / QUERY_TIMEOUT_MS: per-query deadline (default: 5000)
*/
package cliparse
