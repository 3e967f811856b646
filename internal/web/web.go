package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vibecheck/internal/auth"
	"github.com/desertthunder/vibecheck/internal/journal"
	"github.com/desertthunder/vibecheck/internal/models"
	"github.com/desertthunder/vibecheck/internal/server"
	"github.com/desertthunder/vibecheck/internal/tasks"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"landing", "auth", "dashboard", "tracker", "settings"}

// Deps are the collaborators an [App] needs.
type Deps struct {
	Provider     auth.Provider
	Engine       *tasks.DailyEngine
	Journal      *journal.Adapter
	Logger       *log.Logger
	Cookies      server.Cookies
	LoginLimiter *server.IPLimiter
	Version      string
}

// App holds parsed templates and handlers for every route.
type App struct {
	provider auth.Provider
	engine   *tasks.DailyEngine
	journal  *journal.Adapter
	logger   *log.Logger
	cookies  server.Cookies
	limiter  *server.IPLimiter
	version  string
	guard    *auth.Guard
	pages    map[string]*template.Template
}

// New parses the embedded templates and returns an [App].
func New(d Deps) (*App, error) {
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	if d.Cookies.Name == "" {
		d.Cookies.Name = "vibecheck_session"
	}
	if d.LoginLimiter == nil {
		d.LoginLimiter = server.NewIPLimiter(0.5, 5)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &App{
		provider: d.Provider,
		engine:   d.Engine,
		journal:  d.Journal,
		logger:   d.Logger,
		cookies:  d.Cookies,
		limiter:  d.LoginLimiter,
		version:  d.Version,
		guard:    auth.NewGuard(d.Provider, d.Logger),
		pages:    pages,
	}, nil
}

// Handler builds the router with every route registered.
func (a *App) Handler() http.Handler {
	r := server.NewBasicRouter()
	r.Use(server.RequestLogger(a.logger), server.Recover(a.logger))

	guest := server.RedirectIfSession(a.guard, a.cookies)
	protected := server.RequireSession(a.guard, a.cookies)
	throttled := server.RateLimit(a.limiter)

	r.Handle("GET", "/", guest(http.HandlerFunc(a.landing)))
	r.Handle("GET", "/auth", guest(http.HandlerFunc(a.authForm)))
	r.Handle("POST", "/auth/login", server.Chain(http.HandlerFunc(a.login), throttled, guest))
	r.Handle("POST", "/auth/register", server.Chain(http.HandlerFunc(a.register), throttled, guest))
	r.HandleFunc("POST", "/auth/logout", a.logout)

	r.Handle("GET", "/dashboard", protected(http.HandlerFunc(a.dashboard)))
	r.Handle("POST", "/dashboard/mood", protected(http.HandlerFunc(a.submitMood)))
	r.Handle("POST", "/journal", protected(http.HandlerFunc(a.saveJournal)))
	r.Handle("GET", "/tracker", protected(http.HandlerFunc(a.placeholder("tracker", "Tracker"))))
	r.Handle("GET", "/settings", protected(http.HandlerFunc(a.placeholder("settings", "Settings"))))

	r.HandleFunc("GET", "/api/moods", a.apiMoods)
	r.Handle("GET", "/api/today", protected(http.HandlerFunc(a.apiToday)))

	r.Handler(server.HealthHandler{Version: a.version})
	return r
}

type navLink struct {
	Name string
	Path string
}

// navFor returns the navigation links shown on path.
func navFor(path string) []navLink {
	switch path {
	case "/dashboard":
		return []navLink{{"Tracker", "/tracker"}}
	case "/tracker":
		return []navLink{{"Dashboard", "/dashboard"}}
	case "/settings":
		return []navLink{{"Dashboard", "/dashboard"}, {"Tracker", "/tracker"}}
	default:
		return nil
	}
}

// pageData is the value passed to every template.
type pageData struct {
	Title   string
	Nav     []navLink
	User    *models.User
	Year    int
	Refresh int

	Mode     string
	Error    string
	Notice   string
	Fields   auth.FieldErrors
	Email    string
	Username string

	Day     *tasks.Day
	Quote   *models.Quote
	Moods   []models.Mood
	Today   string
	Journal string
	Saved   bool
}

func (a *App) newPage(r *http.Request, title string) pageData {
	user, _ := server.UserFromContext(r.Context())
	return pageData{
		Title: title,
		Nav:   navFor(r.URL.Path),
		User:  user,
		Year:  time.Now().Year(),
	}
}

// render executes the page into a buffer so a template error never leaves a partial response.
func (a *App) render(w http.ResponseWriter, status int, name string, data pageData) {
	tmpl, ok := a.pages[name]
	if !ok {
		a.logger.Error("unknown template", "name", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		a.logger.Error("failed to render template", "name", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
