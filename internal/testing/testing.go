// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/vibecheck/internal/models"
)

// MockProvider is a test double for [services.Provider].
//
// Responses are chosen by the first key of Responses found in the prompt. Calls are safe for concurrent use.
type MockProvider struct {
	Responses map[string]string
	Err       error
	Delay     time.Duration

	mu      sync.Mutex
	prompts []string
}

func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.Err != nil {
		return "", m.Err
	}

	for key, resp := range m.Responses {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return "", nil
}

func (m *MockProvider) Name() string { return "mock" }

// Calls returns how many prompts the provider received.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns a copy of every prompt received.
func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// MockAuthProvider is a test double for auth.Provider backed by a token map.
type MockAuthProvider struct {
	Sessions   map[string]*models.Session
	UserErr    error
	SignInErr  error
	SignUpErr  error
	SignedOut  []string
	SignInUser *models.User

	mu sync.Mutex
}

func (m *MockAuthProvider) Name() string { return "mock" }

func (m *MockAuthProvider) GetSession(ctx context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Sessions[token], nil
}

func (m *MockAuthProvider) GetUser(ctx context.Context, token string) (*models.User, error) {
	if m.UserErr != nil {
		return nil, m.UserErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sessions[token]
	if !ok || s.User == nil {
		return nil, errors.New("user not found")
	}
	return s.User, nil
}

func (m *MockAuthProvider) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	if m.SignInErr != nil {
		return nil, m.SignInErr
	}
	user := m.SignInUser
	if user == nil {
		user = NewUser("user-1", email)
	}
	s := &models.Session{AccessToken: "token-" + user.ID(), User: user}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Sessions == nil {
		m.Sessions = map[string]*models.Session{}
	}
	m.Sessions[s.AccessToken] = s
	return s, nil
}

func (m *MockAuthProvider) SignUp(ctx context.Context, email, password, username string) (*models.User, error) {
	if m.SignUpErr != nil {
		return nil, m.SignUpErr
	}
	u := NewUser("new-user", email)
	u.SetUsername(username)
	return u, nil
}

func (m *MockAuthProvider) SignOut(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignedOut = append(m.SignedOut, token)
	delete(m.Sessions, token)
	return nil
}

// NewUser returns a [models.User] with a fixed id.
func NewUser(id, email string) *models.User {
	u := models.NewUser(1, email, "")
	u.SetID(id)
	return u
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
