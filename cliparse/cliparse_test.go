package cliparse

import (
	"testing"
	"time"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "all flags set",
			args: []string{"-p", "8080", "-d", "postgres://localhost/draws", "-t", "postgres", "-query-timeout-ms", "250"},
			check: func(t *testing.T, cfg Config) {
				if cfg.Port != 8080 {
					t.Errorf("Port = %d, want 8080", cfg.Port)
				}
				if cfg.DatabaseURL != "postgres://localhost/draws" {
					t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
				}
				if cfg.QueryTimeout() != 250*time.Millisecond {
					t.Errorf("QueryTimeout() = %v, want 250ms", cfg.QueryTimeout())
				}
			},
		},
		{
			name: "defaults applied",
			args: []string{"-d", "postgres://localhost/draws"},
			check: func(t *testing.T, cfg Config) {
				if cfg.Port != 3333 {
					t.Errorf("Port = %d, want default 3333", cfg.Port)
				}
				if cfg.DatabaseType != "postgres" {
					t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
				}
				if cfg.QueryTimeoutMS != 5000 {
					t.Errorf("QueryTimeoutMS = %d, want 5000", cfg.QueryTimeoutMS)
				}
			},
		},
		{
			name: "sqlite accepted",
			args: []string{"-d", "file:draws.db", "-t", "sqlite"},
			check: func(t *testing.T, cfg Config) {
				if cfg.DatabaseType != "sqlite" {
					t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
				}
			},
		},
		{
			name:    "unknown database type rejected",
			args:    []string{"-d", "mysql://localhost", "-t", "mysql"},
			wantErr: true,
		},
		{
			name:    "missing database URL",
			args:    []string{"-p", "8080"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Keep env fallback out of the picture
			t.Setenv("PORT", "")
			t.Setenv("DATABASE_URL", "")
			t.Setenv("DATABASE_TYPE", "")
			t.Setenv("QUERY_TIMEOUT_MS", "")

			cfg, err := ParseFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseFlags() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFlags() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://env/draws")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("QUERY_TIMEOUT_MS", "1500")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000 from env", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://env/draws" {
		t.Errorf("DatabaseURL = %q, want env value", cfg.DatabaseURL)
	}
	if cfg.QueryTimeoutMS != 1500 {
		t.Errorf("QueryTimeoutMS = %d, want 1500 from env", cfg.QueryTimeoutMS)
	}
}
