package view

import (
	"context"

	"github.com/lucasmsqt/notes-app/internal/api"
	"github.com/lucasmsqt/notes-app/internal/core"
)

// Ports for the remote collections and the session. The api.Client
// satisfies the service ports; tests inject fakes.
type (
	BillService interface {
		ListBills(ctx context.Context, userID string) ([]core.Bill, error)
		CreateBill(ctx context.Context, bill core.Bill) (core.Bill, error)
		UpdateBill(ctx context.Context, id int64, bill core.Bill) (core.Bill, error)
		DeleteBill(ctx context.Context, id int64) error
	}

	LoanService interface {
		ListLoans(ctx context.Context, userID string) ([]core.Loan, error)
		CreateLoan(ctx context.Context, userID string, loan core.Loan) (core.Loan, error)
		RegisterPayment(ctx context.Context, userID string, id int64, loan core.Loan) (core.Loan, error)
		DeleteLoan(ctx context.Context, id int64) error
	}

	// SessionSource yields the active credentials or session.ErrNoSession.
	SessionSource interface {
		Credentials() (api.Credentials, error)
	}
)
