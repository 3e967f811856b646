package auth

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vibecheck/internal/models"
)

const (
	LandingPath   = "/"
	DashboardPath = "/dashboard"
)

// Decision is the outcome of a guard check.
//
// When RedirectTo is set the page must not render and nothing may be
// written to the response body.
type Decision struct {
	Render     bool
	RedirectTo string
	User       *models.User
	SignedOut  bool
}

// Guard resolves session tokens into page access decisions.
type Guard struct {
	provider Provider
	logger   *log.Logger
}

// NewGuard creates a [Guard] over provider.
func NewGuard(provider Provider, logger *log.Logger) *Guard {
	return &Guard{provider: provider, logger: logger}
}

// Protected admits signed-in users. A session whose user cannot be loaded
// is signed out before redirecting to the landing page.
func (g *Guard) Protected(ctx context.Context, token string) Decision {
	session, err := g.provider.GetSession(ctx, token)
	if err != nil {
		g.logger.Warn("session lookup failed", "error", err)
	}
	if session == nil {
		return Decision{RedirectTo: LandingPath}
	}

	user, err := g.provider.GetUser(ctx, token)
	if err != nil || user == nil {
		if err != nil {
			g.logger.Warn("session user lookup failed", "error", err)
		}
		if err := g.provider.SignOut(ctx, token); err != nil {
			g.logger.Warn("sign out failed", "error", err)
		}
		return Decision{RedirectTo: LandingPath, SignedOut: true}
	}

	return Decision{Render: true, User: user}
}

// GuestOnly admits visitors without a session and sends signed-in users to the dashboard.
func (g *Guard) GuestOnly(ctx context.Context, token string) Decision {
	session, err := g.provider.GetSession(ctx, token)
	if err != nil {
		g.logger.Warn("session lookup failed", "error", err)
	}
	if session != nil {
		return Decision{RedirectTo: DashboardPath}
	}
	return Decision{Render: true}
}
