package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/desertthunder/vibecheck/internal/auth"
	"github.com/desertthunder/vibecheck/internal/content"
	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/server"
	"github.com/desertthunder/vibecheck/internal/shared"
	"github.com/desertthunder/vibecheck/internal/tasks"
)

const (
	modeLogin    = "login"
	modeRegister = "register"
)

func (a *App) landing(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "landing", a.newPage(r, "Welcome"))
}

// authForm shows the login or register form. Any other mode redirects to login.
func (a *App) authForm(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode != modeLogin && mode != modeRegister {
		server.Redirect(w, "/auth?mode=login")
		return
	}

	data := a.newPage(r, "Sign in")
	data.Mode = mode
	a.render(w, http.StatusOK, "auth", data)
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	data := a.newPage(r, "Sign in")
	data.Mode = modeLogin
	data.Email = email

	if errs := auth.ValidateLogin(email, password); errs != nil {
		data.Fields = errs
		a.render(w, http.StatusUnprocessableEntity, "auth", data)
		return
	}

	session, err := a.provider.SignInWithPassword(r.Context(), email, password)
	if err != nil {
		a.logger.Warn("sign in failed", "email", email, "error", err)
		data.Error = auth.Message(err)
		a.render(w, http.StatusUnauthorized, "auth", data)
		return
	}
	if session == nil || session.User == nil {
		data.Error = auth.Message(nil)
		a.render(w, http.StatusUnauthorized, "auth", data)
		return
	}

	a.cookies.Set(w, session.AccessToken, session.ExpiresAt)
	server.SeeOther(w, "/dashboard")
}

func (a *App) register(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirmPassword")

	data := a.newPage(r, "Create account")
	data.Mode = modeRegister
	data.Email = email
	data.Username = username

	if errs := auth.ValidateRegistration(email, username, password, confirm); errs != nil {
		data.Fields = errs
		a.render(w, http.StatusUnprocessableEntity, "auth", data)
		return
	}

	if _, err := a.provider.SignUp(r.Context(), email, password, username); err != nil {
		a.logger.Warn("sign up failed", "email", email, "error", err)
		if errors.Is(err, shared.ErrUserExists) {
			data.Error = "An account with this email already exists."
		} else {
			data.Error = auth.Message(err)
		}
		a.render(w, http.StatusUnprocessableEntity, "auth", data)
		return
	}

	session, err := a.provider.SignInWithPassword(r.Context(), email, password)
	if err != nil || session == nil || session.User == nil {
		data.Mode = modeLogin
		data.Notice = "Account created. Please sign in."
		a.render(w, http.StatusOK, "auth", data)
		return
	}

	a.cookies.Set(w, session.AccessToken, session.ExpiresAt)
	server.SeeOther(w, "/dashboard")
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if token := a.cookies.Token(r); token != "" {
		if err := a.provider.SignOut(r.Context(), token); err != nil {
			a.logger.Warn("sign out failed", "error", err)
		}
	}
	a.cookies.Clear(w)
	server.SeeOther(w, "/")
}

func (a *App) dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := server.UserFromContext(r.Context())

	day, err := a.engine.Check(r.Context(), user.ID())
	if err != nil {
		a.logger.Error("failed to check today", "user", user.ID(), "error", err)
	}

	data := a.newPage(r, "Dashboard")
	data.Day = day
	data.Quote = displayQuote(day)
	data.Moods = models.Moods()
	data.Today = a.engine.Today()
	data.Journal = a.journal.Load(r.Context(), user.ID(), data.Today)
	data.Saved = r.URL.Query().Has("saved")
	if day != nil && day.State == tasks.Generating {
		data.Refresh = 3
	}

	a.render(w, http.StatusOK, "dashboard", data)
}

// displayQuote returns the day's quote, or the fallback quote for a ready day without one.
// The fallback is never stored.
func displayQuote(day *tasks.Day) *models.Quote {
	if day == nil || day.State != tasks.Ready || day.UserID == "" {
		return nil
	}
	if day.Quote != nil {
		return day.Quote
	}
	q := content.FallbackQuote
	return &q
}

func (a *App) submitMood(w http.ResponseWriter, r *http.Request) {
	user, _ := server.UserFromContext(r.Context())

	mood, err := models.ParseMood(r.FormValue("mood"))
	if err != nil {
		http.Error(w, "Unknown mood.", http.StatusBadRequest)
		return
	}

	if _, err := a.engine.Submit(r.Context(), user.ID(), mood, nil); err != nil && !errors.Is(err, shared.ErrGenerationInProgress) {
		a.logger.Error("failed to submit mood", "user", user.ID(), "mood", mood, "error", err)
	}
	server.SeeOther(w, "/dashboard")
}

func (a *App) saveJournal(w http.ResponseWriter, r *http.Request) {
	user, _ := server.UserFromContext(r.Context())

	// Save logs its own failures.
	_ = a.journal.Save(r.Context(), user.ID(), a.engine.Today(), r.FormValue("content"))
	server.SeeOther(w, "/dashboard?saved=1")
}

func (a *App) placeholder(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.render(w, http.StatusOK, name, a.newPage(r, title))
	}
}

func (a *App) apiMoods(w http.ResponseWriter, r *http.Request) {
	server.WriteJSON(w, http.StatusOK, models.Moods())
}

type todayResponse struct {
	State string `json:"state"`
	models.DayRecord
}

func (a *App) apiToday(w http.ResponseWriter, r *http.Request) {
	user, _ := server.UserFromContext(r.Context())

	day, err := a.engine.Check(r.Context(), user.ID())
	if err != nil {
		server.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	text := a.journal.Load(r.Context(), user.ID(), day.Date)
	server.WriteJSON(w, http.StatusOK, todayResponse{State: day.State.String(), DayRecord: day.Record(text)})
}
