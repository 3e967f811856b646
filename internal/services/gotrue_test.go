package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/vibecheck/internal/shared"
	"github.com/golang-jwt/jwt/v4"
)

func signedToken(t *testing.T, expires time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(expires)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func newGoTrueServer(t *testing.T) *httptest.Server {
	t.Helper()

	user := map[string]any{
		"id":            "user-1",
		"email":         "someone@example.com",
		"created_at":    "2025-06-01T10:00:00Z",
		"user_metadata": map[string]string{"username": "someone"},
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/auth/v1/token":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if r.URL.Query().Get("grant_type") != "password" || body["password"] != "hunter22" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "access",
				"token_type":    "bearer",
				"expires_in":    3600,
				"refresh_token": "refresh",
				"user":          user,
			})
		case "/auth/v1/signup":
			json.NewEncoder(w).Encode(user)
		case "/auth/v1/user":
			if r.Header.Get("Authorization") != "Bearer access" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"code":401,"msg":"invalid JWT"}`))
				return
			}
			json.NewEncoder(w).Encode(user)
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestGoTrueService(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Credentials", func(t *testing.T) {
		if _, err := NewGoTrueService("", "", nil); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	server := newGoTrueServer(t)
	defer server.Close()

	svc, err := NewGoTrueService(server.URL+"/", "anon", server.Client())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	t.Run("SignInWithPassword", func(t *testing.T) {
		s, err := svc.SignInWithPassword(ctx, "someone@example.com", "hunter22")
		if err != nil {
			t.Fatalf("sign in failed: %v", err)
		}
		if s.AccessToken != "access" || s.RefreshToken != "refresh" {
			t.Errorf("unexpected session %+v", s)
		}
		if s.User.ID() != "user-1" || s.User.Username() != "someone" {
			t.Errorf("unexpected user %s/%s", s.User.ID(), s.User.Username())
		}
		if !s.Valid() {
			t.Error("expected session to be valid")
		}
	})

	t.Run("SignInWithPassword Bad Credentials", func(t *testing.T) {
		_, err := svc.SignInWithPassword(ctx, "someone@example.com", "wrong")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Fatalf("expected ErrAuthFailed, got %v", err)
		}
		if !strings.Contains(err.Error(), "Invalid login credentials") {
			t.Errorf("expected provider message in error, got %v", err)
		}
	})

	t.Run("SignUp", func(t *testing.T) {
		u, err := svc.SignUp(ctx, "someone@example.com", "hunter22", "someone")
		if err != nil {
			t.Fatalf("sign up failed: %v", err)
		}
		if u.ID() != "user-1" || u.Email() != "someone@example.com" {
			t.Errorf("unexpected user %s/%s", u.ID(), u.Email())
		}
	})

	t.Run("GetUser", func(t *testing.T) {
		u, err := svc.GetUser(ctx, "access")
		if err != nil {
			t.Fatalf("get user failed: %v", err)
		}
		if u.ID() != "user-1" {
			t.Errorf("unexpected user %s", u.ID())
		}

		if _, err := svc.GetUser(ctx, "revoked"); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed for revoked token, got %v", err)
		}
		if _, err := svc.GetUser(ctx, ""); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated for empty token, got %v", err)
		}
	})

	t.Run("GetSession", func(t *testing.T) {
		s, err := svc.GetSession(ctx, signedToken(t, time.Now().Add(time.Hour)))
		if err != nil || s == nil {
			t.Fatalf("expected a session, got %v / %v", s, err)
		}

		for name, token := range map[string]string{
			"empty":     "",
			"malformed": "not-a-jwt",
			"expired":   signedToken(t, time.Now().Add(-time.Hour)),
		} {
			s, err := svc.GetSession(ctx, token)
			if err != nil || s != nil {
				t.Errorf("%s token: expected no session, got %v / %v", name, s, err)
			}
		}
	})

	t.Run("SignOut", func(t *testing.T) {
		if err := svc.SignOut(ctx, "access"); err != nil {
			t.Errorf("sign out failed: %v", err)
		}
		if err := svc.SignOut(ctx, ""); err != nil {
			t.Errorf("sign out with no token should be a no-op, got %v", err)
		}
	})

	t.Run("Network Error", func(t *testing.T) {
		down, _ := NewGoTrueService("http://127.0.0.1:1", "anon", nil)
		_, err := down.SignInWithPassword(ctx, "someone@example.com", "hunter22")
		if err == nil || !strings.Contains(err.Error(), "network error") {
			t.Errorf("expected network error, got %v", err)
		}
	})
}
