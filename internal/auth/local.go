package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/repositories"
	"github.com/desertthunder/vibecheck/internal/shared"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

// LocalProvider authenticates against the users and sessions tables.
type LocalProvider struct {
	users    *repositories.UserRepository
	sessions *repositories.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewLocalProvider creates a [LocalProvider]. A non-positive ttl uses [DefaultSessionTTL].
func NewLocalProvider(users *repositories.UserRepository, sessions *repositories.SessionRepository, ttl time.Duration) *LocalProvider {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &LocalProvider{users: users, sessions: sessions, ttl: ttl, now: time.Now}
}

func (p *LocalProvider) Name() string { return "local" }

// GetSession resolves token to a live session, deleting it once expired.
func (p *LocalProvider) GetSession(ctx context.Context, token string) (*models.Session, error) {
	rec, err := p.live(ctx, token)
	if err != nil || rec == nil {
		return nil, err
	}
	return &models.Session{AccessToken: rec.Token, ExpiresAt: rec.ExpiresAt}, nil
}

// GetUser returns the owner of a live session.
func (p *LocalProvider) GetUser(ctx context.Context, token string) (*models.User, error) {
	rec, err := p.live(ctx, token)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, shared.ErrNotAuthenticated
	}
	return p.users.Get(ctx, rec.UserID)
}

func (p *LocalProvider) live(ctx context.Context, token string) (*repositories.SessionRecord, error) {
	if token == "" {
		return nil, nil
	}

	rec, err := p.sessions.Get(ctx, token)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if rec.Expired(p.now()) {
		return nil, p.sessions.Delete(ctx, token)
	}
	return rec, nil
}

// SignInWithPassword checks the bcrypt hash for email and opens a session.
func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if errors.Is(err, shared.ErrUserNotFound) {
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	rec, err := p.sessions.Create(ctx, user.ID(), p.ttl)
	if err != nil {
		return nil, err
	}

	return &models.Session{AccessToken: rec.Token, ExpiresAt: rec.ExpiresAt, User: user}, nil
}

// SignUp registers a new user. It does not open a session.
func (p *LocalProvider) SignUp(ctx context.Context, email, password, username string) (*models.User, error) {
	if errs := ValidateRegistration(email, username, password, password); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := p.now().UTC()
	user := models.NewUser(0, strings.TrimSpace(email), strings.TrimSpace(username))
	user.SetPasswordHash(string(hash))
	user.SetCreatedAt(now)
	user.SetUpdatedAt(now)

	if err := p.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignOut deletes the session. Unknown tokens are not an error.
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return p.sessions.Delete(ctx, token)
}
