// Package web is the presentation shell: it renders the list and form
// pages, gates them behind the session guard, and mounts the rewrite
// proxy that forwards the browser-facing API paths to the upstream
// host.
package web

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucasmsqt/notes-app/internal/api"
	"github.com/lucasmsqt/notes-app/internal/core"
	"github.com/lucasmsqt/notes-app/internal/session"
	"github.com/lucasmsqt/notes-app/internal/view"
	appweb "github.com/lucasmsqt/notes-app/web"
)

// AuthService is the slice of the API client the login view needs.
type AuthService interface {
	Login(ctx context.Context, email, password string) (api.Credentials, error)
}

type Server struct {
	http.Server
	templates *template.Template

	auth  AuthService
	guard *session.Guard
	prefs *session.Store

	// mu serializes access to the view-models and forms, so a
	// double-submit runs as two back-to-back submissions instead of a
	// race.
	mu       sync.Mutex
	bills    *view.BillList
	billForm view.BillForm
	loans    *view.LoanList
	loanForm view.LoanForm

	loginErr string
	limiter  *loginLimiter
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server. apiURL is the upstream host the rewrite proxy forwards
// /auth, /contas and /emprestimos subtrees to.
func NewServer(addr string, auth AuthService, guard *session.Guard, prefs *session.Store, bills *view.BillList, loans *view.LoanList, apiURL *url.URL) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		auth:    auth,
		guard:   guard,
		prefs:   prefs,
		bills:   bills,
		loans:   loans,
		limiter: newLoginLimiter(10),
	}

	funcs := template.FuncMap{
		"brl":        core.FormatBRL,
		"ref":        core.DisplayReference,
		"capitalize": capitalizeFirst,
	}
	t, err := template.New("").Funcs(funcs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets from the embedded FS. The embedded paths already
	// carry the static/ prefix, no strip needed.
	static := http.FileServer(http.FS(appweb.StaticFS))
	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		static.ServeHTTP(w, r)
	}))

	// Rewrite proxy: same-origin API subtrees forwarded upstream. The
	// UI routes below are longer patterns and win over these.
	proxy := newAPIProxy(apiURL)
	mux.Handle("/auth/", proxy)
	mux.Handle("/contas/", proxy)
	mux.Handle("/emprestimos/", proxy)

	mux.HandleFunc("/", s.withMiddleware(s.handleHome))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/login", s.withMiddleware(s.handleLogin))
	mux.HandleFunc("/logout", s.withMiddleware(s.handleLogout))
	mux.HandleFunc("/tema", s.withMiddleware(s.handleToggleTheme))

	mux.HandleFunc("/contas", s.withMiddleware(s.handleBillsPage))
	mux.HandleFunc("/contas/salvar", s.withMiddleware(s.handleBillSubmit))
	mux.HandleFunc("/contas/remover/", s.withMiddleware(s.handleBillRemove))

	mux.HandleFunc("/emprestimos", s.withMiddleware(s.handleLoansPage))
	mux.HandleFunc("/emprestimos/salvar", s.withMiddleware(s.handleLoanSubmit))
	mux.HandleFunc("/emprestimos/prever", s.withMiddleware(s.handleLoanPreview))
	mux.HandleFunc("/emprestimos/remover/", s.withMiddleware(s.handleLoanRemove))

	return s
}

// requireSession resolves the active credentials or redirects to the
// login view. A false return means the response is already written and
// the handler must stop: the redirect is terminal navigation.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (api.Credentials, bool) {
	creds, err := s.guard.Credentials()
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			slog.ErrorContext(r.Context(), "Session lookup failed", "error", err)
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return api.Credentials{}, false
	}
	return creds, true
}

func (s *Server) darkMode(r *http.Request) bool {
	dark, err := s.prefs.DarkMode()
	if err != nil {
		slog.WarnContext(r.Context(), "Dark mode preference read failed", "error", err)
		return false
	}
	return dark
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "template", name)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	first := runes[0]
	if first >= 'a' && first <= 'z' {
		first = first - 'a' + 'A'
	}
	return string(first) + string(runes[1:])
}
