package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// User is an account that owns journal entries and generated content.
type User struct {
	id           string
	sequence     int
	email        string
	username     string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a [User] with creation timestamps set to now.
func NewUser(sequence int, email, username string) *User {
	now := time.Now().UTC()
	return &User{
		sequence:  sequence,
		email:     strings.TrimSpace(email),
		username:  strings.TrimSpace(username),
		createdAt: now,
		updatedAt: now,
	}
}

func (u *User) ID() string { return u.id }
func (u *User) Sequence() int { return u.sequence }
func (u *User) Email() string { return u.email }
func (u *User) Username() string { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) SetID(id string) { u.id = id }
func (u *User) SetSequence(seq int) { u.sequence = seq }
func (u *User) SetEmail(email string) { u.email = email }
func (u *User) SetUsername(name string) { u.username = name }
func (u *User) SetPasswordHash(hash string) { u.passwordHash = hash }
func (u *User) SetCreatedAt(t time.Time) { u.createdAt = t }
func (u *User) SetUpdatedAt(t time.Time) { u.updatedAt = t }

// DisplayName prefers the username and falls back to the email.
func (u *User) DisplayName() string {
	if u.username != "" {
		return u.username
	}
	return u.email
}

// Validate checks that the user has a well-formed email address.
func (u *User) Validate() error {
	if u.email == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(u.email); err != nil {
		return fmt.Errorf("invalid email %q: %w", u.email, err)
	}
	return nil
}

// Session is an authenticated session issued by an auth provider.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *User
}

// Token exposes the session as an [oauth2.Token].
func (s *Session) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    "bearer",
		Expiry:       s.ExpiresAt,
	}
}

// Valid reports whether the session has a token that has not expired.
func (s *Session) Valid() bool {
	return s != nil && s.Token().Valid()
}
