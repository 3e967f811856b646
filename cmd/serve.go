package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibecheck/internal/repositories"
	"github.com/desertthunder/vibecheck/internal/server"
	"github.com/desertthunder/vibecheck/internal/shared"
	"github.com/desertthunder/vibecheck/internal/web"
)

// sessionPruneInterval is how often expired local sessions are deleted while serving.
const sessionPruneInterval = time.Hour

// Serve runs the web application until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if port := cmd.Int("port"); port > 0 {
		r.config.Server.Port = int(port)
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	handler, err := r.webHandler()
	if err != nil {
		return err
	}

	if r.config.Auth.Provider == shared.AuthProviderLocal {
		go r.pruneSessions(ctx, repositories.NewSessionRepository(r.db), sessionPruneInterval)
	}

	addr := r.config.Addr()
	srv := server.NewHTTPServer(addr, handler)

	if cmd.Bool("open") {
		url := fmt.Sprintf("http://%s/", addr)
		if err := shared.OpenBrowser(ctx, url); err != nil {
			r.logger.Warn("failed to open browser", "url", url, "error", err)
		}
	}

	r.logger.Info("starting vibecheck", "addr", addr, "auth", r.config.Auth.Provider, "provider", r.config.Provider.Kind)
	return server.ListenAndServe(ctx, srv, shared.WithLogger(r.logger, "component", "http"))
}

// webHandler wires the database, auth provider, engine and journal into the web app.
func (r *Runner) webHandler() (http.Handler, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}

	provider, err := r.authProvider(db)
	if err != nil {
		return nil, err
	}

	engine, j, err := r.daily()
	if err != nil {
		return nil, err
	}

	app, err := web.New(web.Deps{
		Provider: provider,
		Engine:   engine,
		Journal:  j,
		Logger:   shared.WithLogger(r.logger, "component", "web"),
		Cookies: server.Cookies{
			Name:   r.config.Server.CookieName,
			Secure: r.config.Server.SecureCookies,
		},
		LoginLimiter: server.NewIPLimiter(r.config.Server.LoginRate, r.config.Server.LoginBurst),
		Version:      r.version,
	})
	if err != nil {
		return nil, err
	}

	return app.Handler(), nil
}

// pruneSessions deletes expired sessions every interval until ctx is done.
func (r *Runner) pruneSessions(ctx context.Context, sessions *repositories.SessionRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := sessions.DeleteExpired(ctx, now)
			if err != nil {
				r.logger.Error("failed to prune sessions", "error", err)
				continue
			}
			if n > 0 {
				r.logger.Debug("pruned expired sessions", "count", n)
			}
		}
	}
}
