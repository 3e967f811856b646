package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/repositories"
	"github.com/desertthunder/vibecheck/internal/shared"
	tu "github.com/desertthunder/vibecheck/internal/testing"
)

func newLocalProvider(t *testing.T) *LocalProvider {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewLocalProvider(repositories.NewUserRepository(db), repositories.NewSessionRepository(db), time.Hour)
}

func TestLocalProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("SignUp and SignIn", func(t *testing.T) {
		p := newLocalProvider(t)

		user, err := p.SignUp(ctx, "ada@example.com", "secret1", "ada")
		if err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}
		if user.ID() == "" {
			t.Error("expected user ID to be set")
		}
		if user.PasswordHash() == "secret1" {
			t.Error("password must be stored hashed")
		}

		session, err := p.SignInWithPassword(ctx, "ADA@example.com", "secret1")
		if err != nil {
			t.Fatalf("SignInWithPassword failed: %v", err)
		}
		if session.AccessToken == "" || session.User == nil {
			t.Fatalf("expected session with user, got %+v", session)
		}
		if !session.Valid() {
			t.Error("expected fresh session to be valid")
		}

		got, err := p.GetUser(ctx, session.AccessToken)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Username() != "ada" {
			t.Errorf("expected username ada, got %q", got.Username())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		p := newLocalProvider(t)
		if _, err := p.SignUp(ctx, "ada@example.com", "secret1", "ada"); err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}

		_, err := p.SignInWithPassword(ctx, "ada@example.com", "nope-nope")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if Message(err) != MsgInvalidCredentials {
			t.Errorf("unexpected message %q", Message(err))
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		p := newLocalProvider(t)
		_, err := p.SignInWithPassword(ctx, "ghost@example.com", "secret1")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("duplicate registration", func(t *testing.T) {
		p := newLocalProvider(t)
		if _, err := p.SignUp(ctx, "ada@example.com", "secret1", "ada"); err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}
		_, err := p.SignUp(ctx, "ada@example.com", "secret2", "ada2")
		if !errors.Is(err, shared.ErrUserExists) {
			t.Errorf("expected ErrUserExists, got %v", err)
		}
	})

	t.Run("invalid registration", func(t *testing.T) {
		p := newLocalProvider(t)
		_, err := p.SignUp(ctx, "not-an-email", "123", "a")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		var fields FieldErrors
		if !errors.As(err, &fields) || len(fields) != 3 {
			t.Errorf("expected three field errors, got %v", err)
		}
	})

	t.Run("SignOut ends session", func(t *testing.T) {
		p := newLocalProvider(t)
		if _, err := p.SignUp(ctx, "ada@example.com", "secret1", "ada"); err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}
		session, err := p.SignInWithPassword(ctx, "ada@example.com", "secret1")
		if err != nil {
			t.Fatalf("SignInWithPassword failed: %v", err)
		}

		if err := p.SignOut(ctx, session.AccessToken); err != nil {
			t.Fatalf("SignOut failed: %v", err)
		}

		got, err := p.GetSession(ctx, session.AccessToken)
		if err != nil || got != nil {
			t.Errorf("expected no session after sign out, got %+v, %v", got, err)
		}
		if _, err := p.GetUser(ctx, session.AccessToken); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		p := newLocalProvider(t)
		if _, err := p.SignUp(ctx, "ada@example.com", "secret1", "ada"); err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}
		session, err := p.SignInWithPassword(ctx, "ada@example.com", "secret1")
		if err != nil {
			t.Fatalf("SignInWithPassword failed: %v", err)
		}

		p.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		got, err := p.GetSession(ctx, session.AccessToken)
		if err != nil || got != nil {
			t.Errorf("expected expired session to resolve to nil, got %+v, %v", got, err)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		p := newLocalProvider(t)
		got, err := p.GetSession(ctx, "")
		if err != nil || got != nil {
			t.Errorf("expected nil session, got %+v, %v", got, err)
		}
	})
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error means no user", nil, MsgNoUser},
		{"user not found", shared.ErrUserNotFound, MsgNoUser},
		{"invalid credentials", shared.ErrInvalidCredentials, MsgInvalidCredentials},
		{"provider message with password", errors.New("Password should be at least 6 characters"), MsgInvalidCredentials},
		{"email not confirmed", errors.New("Email not confirmed"), MsgInvalidCredentials},
		{"network", fmt.Errorf("network error: %w", errors.New("dial tcp: connection refused")), MsgNetwork},
		{"timeout", errors.New("context deadline exceeded (Client.Timeout exceeded)"), MsgNetwork},
		{"other", errors.New("database is locked"), MsgGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name                               string
		email, username, password, confirm string
		fields                             []string
	}{
		{"valid", "ada@example.com", "ada", "secret1", "secret1", nil},
		{"bad email", "ada", "ada", "secret1", "secret1", []string{"email"}},
		{"short username", "ada@example.com", "ad", "secret1", "secret1", []string{"username"}},
		{"short password", "ada@example.com", "ada", "12345", "12345", []string{"password"}},
		{"mismatch", "ada@example.com", "ada", "secret1", "secret2", []string{"confirmPassword"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegistration(tt.email, tt.username, tt.password, tt.confirm)
			if len(errs) != len(tt.fields) {
				t.Fatalf("expected %d errors, got %v", len(tt.fields), errs)
			}
			for _, f := range tt.fields {
				if errs[f] == "" {
					t.Errorf("expected error for %s", f)
				}
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name            string
		email, password string
		fields          []string
	}{
		{"valid", "ada@example.com", "secret1", nil},
		{"empty", "", "", []string{"email", "password"}},
		{"bad email", "not-an-email", "secret1", []string{"email"}},
		{"short password", "ada@example.com", "12345", []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateLogin(tt.email, tt.password)
			if len(errs) != len(tt.fields) {
				t.Fatalf("expected %d errors, got %v", len(tt.fields), errs)
			}
			for _, f := range tt.fields {
				if errs[f] == "" {
					t.Errorf("expected error for %s", f)
				}
			}
		})
	}
}

func TestGuard(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard)
	user := tu.NewUser("user-1", "ada@example.com")

	newMock := func() *tu.MockAuthProvider {
		return &tu.MockAuthProvider{
			Sessions: map[string]*models.Session{
				"good": {AccessToken: "good", User: user},
			},
		}
	}

	t.Run("Protected without session redirects to landing", func(t *testing.T) {
		g := NewGuard(newMock(), logger)
		d := g.Protected(ctx, "")
		if d.Render || d.RedirectTo != LandingPath {
			t.Errorf("unexpected decision %+v", d)
		}
	})

	t.Run("Protected with session renders user", func(t *testing.T) {
		g := NewGuard(newMock(), logger)
		d := g.Protected(ctx, "good")
		if !d.Render || d.User == nil || d.User.ID() != "user-1" {
			t.Errorf("unexpected decision %+v", d)
		}
	})

	t.Run("Protected with failing user lookup signs out", func(t *testing.T) {
		mock := newMock()
		mock.UserErr = errors.New("jwt expired")
		g := NewGuard(mock, logger)

		d := g.Protected(ctx, "good")
		if d.Render || d.RedirectTo != LandingPath || !d.SignedOut {
			t.Errorf("unexpected decision %+v", d)
		}
		if len(mock.SignedOut) != 1 || mock.SignedOut[0] != "good" {
			t.Errorf("expected sign out of token, got %v", mock.SignedOut)
		}
	})

	t.Run("GuestOnly with session redirects to dashboard", func(t *testing.T) {
		g := NewGuard(newMock(), logger)
		d := g.GuestOnly(ctx, "good")
		if d.Render || d.RedirectTo != DashboardPath {
			t.Errorf("unexpected decision %+v", d)
		}
	})

	t.Run("GuestOnly without session renders", func(t *testing.T) {
		g := NewGuard(newMock(), logger)
		d := g.GuestOnly(ctx, "missing")
		if !d.Render || d.RedirectTo != "" {
			t.Errorf("unexpected decision %+v", d)
		}
	})
}

func TestNewProvider(t *testing.T) {
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	t.Run("local", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		p, err := NewProvider(cfg, db)
		if err != nil {
			t.Fatalf("NewProvider failed: %v", err)
		}
		if p.Name() != "local" {
			t.Errorf("expected local provider, got %s", p.Name())
		}
	})

	t.Run("supabase requires credentials", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Auth.Provider = shared.AuthProviderSupabase
		if _, err := NewProvider(cfg, db); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("supabase", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Auth.Provider = shared.AuthProviderSupabase
		cfg.Auth.SupabaseURL = "https://project.supabase.co"
		cfg.Auth.SupabaseAnonKey = "anon"
		p, err := NewProvider(cfg, db)
		if err != nil {
			t.Fatalf("NewProvider failed: %v", err)
		}
		if p.Name() != "supabase" {
			t.Errorf("expected supabase provider, got %s", p.Name())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Auth.Provider = "ldap"
		if _, err := NewProvider(cfg, db); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
