package auth

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/repositories"
	"github.com/desertthunder/vibecheck/internal/services"
	"github.com/desertthunder/vibecheck/internal/shared"
)

// Provider issues and resolves user sessions.
//
// GetSession returns nil without an error when token names no live session.
type Provider interface {
	Name() string
	GetSession(ctx context.Context, token string) (*models.Session, error)
	GetUser(ctx context.Context, token string) (*models.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, email, password, username string) (*models.User, error)
	SignOut(ctx context.Context, token string) error
}

// NewProvider builds the provider selected by cfg.Auth.Provider.
func NewProvider(cfg *shared.Config, db *sql.DB) (Provider, error) {
	switch cfg.Auth.Provider {
	case shared.AuthProviderLocal, "":
		return NewLocalProvider(
			repositories.NewUserRepository(db),
			repositories.NewSessionRepository(db),
			cfg.Auth.SessionTTL,
		), nil
	case shared.AuthProviderSupabase:
		if cfg.Auth.SupabaseURL == "" || cfg.Auth.SupabaseAnonKey == "" {
			return nil, fmt.Errorf("%w: supabase_url and supabase_anon_key are required", shared.ErrMissingCredentials)
		}
		svc, err := services.NewGoTrueService(cfg.Auth.SupabaseURL, cfg.Auth.SupabaseAnonKey, http.DefaultClient)
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("%w: unknown auth provider %q", shared.ErrInvalidConfig, cfg.Auth.Provider)
	}
}
