package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/shared"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
)

// GoTrueService is a client for a Supabase GoTrue auth server.
type GoTrueService struct {
	api        *APIService
	httpClient *http.Client
}

// NewGoTrueService creates a client for the project at projectURL using its anon key.
func NewGoTrueService(projectURL, anonKey string, client *http.Client) (*GoTrueService, error) {
	if projectURL == "" || anonKey == "" {
		return nil, fmt.Errorf("%w: supabase url and anon key", shared.ErrMissingCredentials)
	}
	if client == nil {
		client = http.DefaultClient
	}

	api := NewAPIService(strings.TrimRight(projectURL, "/")+"/auth/v1", client).WithHeader("apikey", anonKey)
	return &GoTrueService{api: api, httpClient: client}, nil
}

type gotrueUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UserMetadata struct {
		Username string `json:"username"`
	} `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	RefreshToken string      `json:"refresh_token"`
	User         *gotrueUser `json:"user"`
}

type gotrueError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
	Message     string `json:"message"`
}

// Name returns "supabase".
func (g *GoTrueService) Name() string { return "supabase" }

// GetSession reads the session carried by an access token.
//
// Tokens are not verified here, only decoded for their expiry. [GoTrueService.GetUser]
// asks the server. An empty, malformed or expired token yields a nil session.
func (g *GoTrueService) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, nil
	}

	s := &models.Session{AccessToken: token}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	if !s.Valid() {
		return nil, nil
	}

	return s, nil
}

// GetUser asks the server who owns token.
func (g *GoTrueService) GetUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	resp, err := g.authed(ctx, token).Get(ctx, "/user")
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	if !resp.OK() {
		return nil, g.errorFrom(resp)
	}

	var u gotrueUser
	if err := resp.Decode(&u); err != nil {
		return nil, err
	}
	return u.toModel(), nil
}

// SignInWithPassword exchanges credentials for a session.
func (g *GoTrueService) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	body := map[string]string{"email": email, "password": password}

	resp, err := g.api.PostJSON(ctx, "/token?grant_type=password", body)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	if !resp.OK() {
		return nil, g.errorFrom(resp)
	}

	var s gotrueSession
	if err := resp.Decode(&s); err != nil {
		return nil, err
	}
	if s.AccessToken == "" || s.User == nil {
		return nil, fmt.Errorf("%w: no user returned", shared.ErrAuthFailed)
	}

	return s.toModel(), nil
}

// SignUp registers a new account, storing username in the user metadata.
func (g *GoTrueService) SignUp(ctx context.Context, email, password, username string) (*models.User, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"username": username},
	}

	resp, err := g.api.PostJSON(ctx, "/signup", body)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	if !resp.OK() {
		return nil, g.errorFrom(resp)
	}

	// Servers with auto-confirm answer with a session, others with the bare user.
	var s gotrueSession
	if err := resp.Decode(&s); err == nil && s.User != nil {
		return s.User.toModel(), nil
	}

	var u gotrueUser
	if err := resp.Decode(&u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: no user returned", shared.ErrAuthFailed)
	}
	return u.toModel(), nil
}

// SignOut revokes the session behind token.
func (g *GoTrueService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	resp, err := g.authed(ctx, token).Post(ctx, "/logout", nil)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	if !resp.OK() && resp.StatusCode != http.StatusUnauthorized {
		return g.errorFrom(resp)
	}
	return nil
}

// authed returns an API client that sends token as a bearer credential.
func (g *GoTrueService) authed(ctx context.Context, token string) *APIService {
	base := context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return g.api.WithClient(oauth2.NewClient(base, src))
}

func (g *GoTrueService) errorFrom(resp *APIResponse) error {
	var e gotrueError
	_ = resp.Decode(&e)

	for _, msg := range []string{e.Description, e.Msg, e.Message, e.Error} {
		if msg != "" {
			return fmt.Errorf("%w: %s", shared.ErrAuthFailed, msg)
		}
	}
	return fmt.Errorf("%w: status %d", shared.ErrAuthFailed, resp.StatusCode)
}

func (u *gotrueUser) toModel() *models.User {
	user := models.NewUser(0, u.Email, u.UserMetadata.Username)
	user.SetID(u.ID)
	if !u.CreatedAt.IsZero() {
		user.SetCreatedAt(u.CreatedAt)
	}
	return user
}

func (s *gotrueSession) toModel() *models.Session {
	var expires time.Time
	switch {
	case s.ExpiresAt > 0:
		expires = time.Unix(s.ExpiresAt, 0)
	case s.ExpiresIn > 0:
		expires = time.Now().Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return &models.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    expires,
		User:         s.User.toModel(),
	}
}
