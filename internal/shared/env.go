package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env style files into the process environment.
//
// Missing files are skipped. Variables already set are never overwritten.
// With no arguments it tries .env.local then .env in the working directory.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env.local", ".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}

	return nil
}

// ApplyEnv overrides secrets and deployment settings in c from environment variables.
func ApplyEnv(c *Config) error {
	if v := lookup("VIBECHECK_PROVIDER_API_KEY", "GEMINI_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := lookup("VIBECHECK_PROVIDER_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := lookup("VIBECHECK_PROVIDER_MODEL"); v != "" {
		c.Provider.Model = v
	}
	if v := lookup("VIBECHECK_PROVIDER_KIND"); v != "" {
		c.Provider.Kind = v
	}
	if v := lookup("VIBECHECK_SUPABASE_URL"); v != "" {
		c.Auth.SupabaseURL = v
	}
	if v := lookup("VIBECHECK_SUPABASE_ANON_KEY"); v != "" {
		c.Auth.SupabaseAnonKey = v
	}
	if v := lookup("VIBECHECK_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := lookup("VIBECHECK_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: VIBECHECK_PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.Port = port
	}
	return nil
}

// lookup returns the first non-empty value among keys.
func lookup(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
