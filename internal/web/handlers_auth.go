package web

import (
	"log/slog"
	"net/http"

	"github.com/lucasmsqt/notes-app/internal/api"
)

type loginPageData struct {
	Dark  bool
	Error string
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// An active session skips the login view entirely.
		if _, err := s.guard.Credentials(); err == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.render(w, r, "login.html", loginPageData{Dark: s.darkMode(r), Error: s.loginErr})

	case http.MethodPost:
		if !s.limiter.allow(clientIP(r)) {
			slog.WarnContext(r.Context(), "Login rate limit hit", "ip", clientIP(r))
			http.Error(w, "Muitas tentativas. Tente novamente em instantes.", http.StatusTooManyRequests)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "formulário inválido", http.StatusBadRequest)
			return
		}
		email := r.Form.Get("email")
		password := r.Form.Get("senha")

		creds, err := s.auth.Login(r.Context(), email, password)
		if err != nil {
			s.loginErr = api.UserMessage(err, "Erro ao fazer login.")
			slog.InfoContext(r.Context(), "Login failed", "error", err)
			s.render(w, r, "login.html", loginPageData{Dark: s.darkMode(r), Error: s.loginErr})
			return
		}

		if err := s.guard.Login(creds); err != nil {
			slog.ErrorContext(r.Context(), "Storing credentials failed", "error", err)
			http.Error(w, "erro ao gravar a sessão", http.StatusInternalServerError)
			return
		}
		s.loginErr = ""
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.guard.Logout(); err != nil {
		slog.ErrorContext(r.Context(), "Logout failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	dark := !s.darkMode(r)
	if err := s.prefs.SetDarkMode(dark); err != nil {
		slog.ErrorContext(r.Context(), "Dark mode write failed", "error", err)
	}
	back := r.FormValue("voltar")
	if back == "" || back[0] != '/' {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
