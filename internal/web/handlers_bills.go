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

type billsPageData struct {
	Dark     bool
	Records  []core.Bill
	Total    core.Decimal
	Err      string
	FormOpen bool
	Draft    *view.BillDraft
	Statuses []core.BillStatus
}

func (s *Server) billsData(dark bool) billsPageData {
	return billsPageData{
		Dark:     dark,
		Records:  s.bills.Records(),
		Total:    s.bills.Total(),
		Err:      s.bills.Err(),
		FormOpen: s.billForm.IsOpen(),
		Draft:    s.billForm.Draft(),
		Statuses: []core.BillStatus{core.BillOpen, core.BillPaid, core.BillOverdue},
	}
}

func (s *Server) handleBillsPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireSession(w, r); !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	if q.Get("fechar") != "" {
		s.billForm.Close()
		s.bills.ClearErr()
	}

	if err := s.bills.Refresh(r.Context()); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if q.Get("novo") != "" {
		s.billForm.Open(nil)
	}
	if idStr := q.Get("editar"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			for _, b := range s.bills.Records() {
				if b.ID == id {
					bill := b
					s.billForm.Open(&bill)
					break
				}
			}
		}
	}

	s.render(w, r, "contas.html", s.billsData(s.darkMode(r)))
}

// applyBillFields copies the posted form fields into the open draft.
func applyBillFields(d *view.BillDraft, r *http.Request) {
	d.Name = strings.TrimSpace(r.Form.Get("nome"))
	if err := d.SetAmountText(r.Form.Get("valor")); err != nil {
		// Unparsable input behaves like the browser's empty number box.
		d.Amount = 0
	}
	if status := r.Form.Get("status"); status != "" {
		d.Status = core.BillStatus(status)
	}
	d.Reference = r.Form.Get("referencia")
}

func (s *Server) handleBillSubmit(w http.ResponseWriter, r *http.Request) {
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

	d := s.billForm.Draft()
	if d == nil {
		http.Redirect(w, r, "/contas", http.StatusSeeOther)
		return
	}
	applyBillFields(d, r)

	if err := s.bills.Submit(r.Context(), d); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		// Mutation failed: the dialog stays open with the message so
		// the user can retry.
		s.render(w, r, "contas.html", s.billsData(s.darkMode(r)))
		return
	}

	s.billForm.Close()
	http.Redirect(w, r, "/contas", http.StatusSeeOther)
}

func (s *Server) handleBillRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.requireSession(w, r); !ok {
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/contas/remover/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bills.Remove(r.Context(), id); err != nil {
		slog.WarnContext(r.Context(), "Bill delete failed", "id", id, "error", err)
	}
	http.Redirect(w, r, "/contas", http.StatusSeeOther)
}
