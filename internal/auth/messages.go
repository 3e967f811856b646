package auth

import (
	"errors"
	"net/mail"
	"sort"
	"strings"

	"github.com/desertthunder/vibecheck/internal/shared"
)

// Messages shown in the login and registration forms.
const (
	MsgInvalidCredentials = "Invalid username or password."
	MsgNetwork            = "Network error. Please check your connection."
	MsgNoUser             = "Unable to login. Please try again."
	MsgGeneric            = "Something went wrong. Please try again later."
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

var (
	networkHints    = []string{"network", "fetch", "connection", "dial", "timeout"}
	credentialHints = []string{"invalid", "credentials", "password", "email"}
)

// Message maps an auth failure to a user-facing message.
//
// A nil error stands for a sign in that returned no user.
func Message(err error) string {
	if err == nil || errors.Is(err, shared.ErrUserNotFound) {
		return MsgNoUser
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, networkHints):
		return MsgNetwork
	case containsAny(msg, credentialHints):
		return MsgInvalidCredentials
	default:
		return MsgGeneric
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + f[field]
	}
	return strings.Join(parts, "; ")
}

// ValidateLogin checks the login form fields before any provider call.
func ValidateLogin(email, password string) FieldErrors {
	errs := FieldErrors{}

	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		errs["email"] = "Invalid email address"
	}
	if len(password) < MinPasswordLength {
		errs["password"] = "Password must be at least 6 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateRegistration checks the registration form fields.
// It returns nil when every field is acceptable.
func ValidateRegistration(email, username, password, confirm string) FieldErrors {
	errs := FieldErrors{}

	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		errs["email"] = "Invalid email address"
	}
	if len(strings.TrimSpace(username)) < MinUsernameLength {
		errs["username"] = "Username must be at least 3 characters"
	}
	if len(password) < MinPasswordLength {
		errs["password"] = "Password must be at least 6 characters"
	}
	if password != confirm {
		errs["confirmPassword"] = "Passwords do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
