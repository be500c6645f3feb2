package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/lucasmsqt/notes-app/internal/core"
	"github.com/lucasmsqt/notes-app/internal/session"
	"github.com/lucasmsqt/notes-app/internal/view"
)

type loansPageData struct {
	Dark     bool
	Records  []core.Loan
	Err      string
	FormOpen bool
	Draft    *view.LoanDraft
	Statuses []core.LoanStatus

	// Remaining preview for the open dialog, valid when ShowRemaining.
	Remaining     core.Decimal
	ShowRemaining bool
}

func (s *Server) loansData(dark bool) loansPageData {
	data := loansPageData{
		Dark:     dark,
		Records:  s.loans.Records(),
		Err:      s.loans.Err(),
		FormOpen: s.loanForm.IsOpen(),
		Draft:    s.loanForm.Draft(),
		Statuses: []core.LoanStatus{core.LoanPending, core.LoanSettled, core.LoanCancelled},
	}
	if d := s.loanForm.Draft(); d != nil {
		data.Remaining, data.ShowRemaining = d.RemainingPreview()
	}
	return data
}

func (s *Server) handleLoansPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireSession(w, r); !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	if q.Get("fechar") != "" {
		s.loanForm.Close()
		s.loans.ClearErr()
	}

	if err := s.loans.Refresh(r.Context()); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if q.Get("novo") != "" {
		s.loanForm.Open(nil)
	}
	if idStr := q.Get("editar"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			for _, l := range s.loans.Records() {
				if l.ID == id {
					loan := l
					s.loanForm.Open(&loan)
					break
				}
			}
		}
	}

	s.render(w, r, "emprestimos.html", s.loansData(s.darkMode(r)))
}

// applyLoanFields copies the posted form fields into the open draft.
// The paid field goes through SetPaidText so the cumulative shadow
// follows every revision.
func applyLoanFields(d *view.LoanDraft, r *http.Request) {
	d.Name = strings.TrimSpace(r.Form.Get("nome"))
	if err := d.SetTotalText(r.Form.Get("valor")); err != nil {
		d.Total = 0
	}
	if parcelas, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("parcelas"))); err == nil {
		d.Installments = parcelas
	}
	if status := r.Form.Get("status"); status != "" {
		d.Status = core.LoanStatus(status)
	}
	if err := d.SetPaidText(r.Form.Get("valor_pago")); err != nil {
		d.SetPaid(0)
	}
}

// handleLoanPreview revises the open draft without submitting, so the
// remaining preview reflects the edited payment field.
func (s *Server) handleLoanPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.requireSession(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.loanForm.Draft()
	if d == nil {
		http.Redirect(w, r, "/emprestimos", http.StatusSeeOther)
		return
	}
	applyLoanFields(d, r)

	s.render(w, r, "emprestimos.html", s.loansData(s.darkMode(r)))
}

func (s *Server) handleLoanSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.requireSession(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.loanForm.Draft()
	if d == nil {
		http.Redirect(w, r, "/emprestimos", http.StatusSeeOther)
		return
	}
	applyLoanFields(d, r)

	if err := s.loans.Submit(r.Context(), d); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		s.render(w, r, "emprestimos.html", s.loansData(s.darkMode(r)))
		return
	}

	s.loanForm.Close()
	http.Redirect(w, r, "/emprestimos", http.StatusSeeOther)
}

func (s *Server) handleLoanRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.requireSession(w, r); !ok {
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/emprestimos/remover/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loans.Remove(r.Context(), id); err != nil {
		slog.WarnContext(r.Context(), "Loan delete failed", "id", id, "error", err)
	}
	http.Redirect(w, r, "/emprestimos", http.StatusSeeOther)
}
