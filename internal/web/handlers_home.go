package web

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/lucasmsqt/notes-app/internal/core"
)

type homePageData struct {
	Dark          bool
	BillTotal     core.Decimal
	LoanTotal     core.Decimal
	LoanRemaining core.Decimal
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if _, ok := s.requireSession(w, r); !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Both collections refresh concurrently; each goroutine owns one
	// view-model and refresh failures leave stale totals, same as the
	// list views.
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { return s.bills.Refresh(ctx) })
	g.Go(func() error { return s.loans.Refresh(ctx) })
	if err := g.Wait(); err != nil {
		// Only a missing session propagates out of Refresh.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	s.render(w, r, "home.html", homePageData{
		Dark:          s.darkMode(r),
		BillTotal:     s.bills.Total(),
		LoanTotal:     s.loans.Total(),
		LoanRemaining: s.loans.TotalRemaining(),
	})
}
