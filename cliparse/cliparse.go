package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	QueryTimeoutMS int
}

// QueryTimeout is the upper bound for any single datastore call.
func (c Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutMS) * time.Millisecond
}

// ParseFlags validates flags and sets configuration defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("lucky-draw", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.QueryTimeoutMS, "query-timeout-ms", 0, "Per-query timeout in milliseconds")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3333 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.QueryTimeoutMS == 0 {
		if msStr := os.Getenv("QUERY_TIMEOUT_MS"); msStr != "" {
			ms, err := strconv.Atoi(msStr)
			if err != nil {
				return Config{}, errors.New("invalid QUERY_TIMEOUT_MS env variable")
			}
			cfg.QueryTimeoutMS = ms
		} else {
			cfg.QueryTimeoutMS = 5000
		}
	}
	if cfg.QueryTimeoutMS < 0 {
		return Config{}, errors.New("query timeout must be positive")
	}

	return cfg, nil
}
