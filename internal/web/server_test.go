package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lucasmsqt/notes-app/internal/api"
	"github.com/lucasmsqt/notes-app/internal/session"
	"github.com/lucasmsqt/notes-app/internal/view"
)

func newTestServer(t *testing.T, upstream http.Handler) (*Server, *session.Store) {
	t.Helper()

	apiSrv := httptest.NewServer(upstream)
	t.Cleanup(apiSrv.Close)

	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	guard := session.NewGuard(store)
	client := api.New(apiSrv.URL, store, 5*time.Second)
	bills := view.NewBillList(client, guard, nil)
	loans := view.NewLoanList(client, guard, nil)

	apiURL, err := url.Parse(apiSrv.URL)
	if err != nil {
		t.Fatalf("parse upstream url: %v", err)
	}

	return NewServer(":0", client, guard, store, bills, loans, apiURL), store
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postForm(t *testing.T, srv *Server, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func seedSession(t *testing.T, store *session.Store) {
	t.Helper()
	if err := store.SetCredentials("tok-123", "7"); err != nil {
		t.Fatalf("seed credentials: %v", err)
	}
}

func TestLoginPageRenders(t *testing.T) {
	srv, _ := newTestServer(t, http.NotFoundHandler())

	rec := get(t, srv, "/login")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="email"`) || !strings.Contains(body, `name="senha"`) {
		t.Errorf("login form fields missing:\n%s", body)
	}
}

func TestProtectedRoutesRedirectWithoutSession(t *testing.T) {
	srv, _ := newTestServer(t, http.NotFoundHandler())

	for _, target := range []string{"/", "/contas", "/emprestimos"} {
		rec := get(t, srv, target)
		if rec.Code != http.StatusSeeOther {
			t.Errorf("GET %s: status = %d, want 303", target, rec.Code)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("GET %s: redirect to %q, want /login", target, loc)
		}
	}
}

func TestBillsPageRendersFormattedValues(t *testing.T) {
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contas/listar" {
			t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"nome":"Internet","valor":"150.50","status":"Aberta","referencia":"2024-03"}]`))
	})
	srv, store := newTestServer(t, upstream)
	seedSession(t, store)

	rec := get(t, srv, "/contas")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Internet", "R$ 150.50", "Março de 2024"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestBillSubmitFailureKeepsFormOpen(t *testing.T) {
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contas/listar":
			w.Write([]byte(`[]`))
		case "/contas/criar":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"Nome obrigatório"}`))
		default:
			http.NotFound(w, r)
		}
	})
	srv, store := newTestServer(t, upstream)
	seedSession(t, store)

	if rec := get(t, srv, "/contas?novo=1"); rec.Code != http.StatusOK {
		t.Fatalf("open form: status = %d, want 200", rec.Code)
	}

	rec := postForm(t, srv, "/contas/salvar", url.Values{
		"nome":   {""},
		"valor":  {"10"},
		"status": {"Aberta"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: status = %d, want 200 re-render", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Nome obrigatório") {
		t.Errorf("page missing API error message:\n%s", body)
	}
	if !strings.Contains(body, `action="/contas/salvar"`) {
		t.Error("dialog closed after failed submit, want it kept open")
	}
}

func TestLoanPaymentPreviewFollowsRevisions(t *testing.T) {
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emprestimos/listar" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"nome":"Carro","valor":300,"parcelas":12,"valor_pago":100,"status":"pendente"}]`))
	})
	srv, store := newTestServer(t, upstream)
	seedSession(t, store)

	rec := get(t, srv, "/emprestimos?editar=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("open form: status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "R$ 200.00") {
		t.Errorf("initial remaining not shown:\n%s", body)
	}

	form := url.Values{
		"nome":       {"Carro"},
		"valor":      {"300"},
		"parcelas":   {"12"},
		"status":     {"pendente"},
		"valor_pago": {"150"},
	}
	rec = postForm(t, srv, "/emprestimos/prever", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview: status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "R$ 150.00") {
		t.Errorf("remaining after first revision not shown:\n%s", body)
	}

	// Revising the same field again adds only the delta on top of the
	// amount already paid in this session.
	form.Set("valor_pago", "180")
	rec = postForm(t, srv, "/emprestimos/prever", form)
	if body := rec.Body.String(); !strings.Contains(body, "R$ 120.00") {
		t.Errorf("remaining after second revision not shown:\n%s", body)
	}
}

func TestProxyForwardsAPISubtrees(t *testing.T) {
	var sawPath string
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawPath = r.URL.Path
		w.Write([]byte(`{"token":"t","userId":"1"}`))
	})
	srv, _ := newTestServer(t, upstream)

	rec := postForm(t, srv, "/auth/login", url.Values{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if sawPath != "/auth/login" {
		t.Errorf("upstream path = %q, want /auth/login", sawPath)
	}
}

func TestThemeToggleFlipsDarkMode(t *testing.T) {
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	srv, store := newTestServer(t, upstream)
	seedSession(t, store)

	rec := postForm(t, srv, "/tema", url.Values{"voltar": {"/contas"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/contas" {
		t.Errorf("redirect to %q, want /contas", loc)
	}

	if body := get(t, srv, "/contas").Body.String(); !strings.Contains(body, `class="escuro"`) {
		t.Error("dark mode class not applied after toggle")
	}
}
