package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lucasmsqt/notes-app/internal/core"
)

// loanPayload is a loan submission. Unlike bills, the loan endpoints
// want the owner id inside the body as well.
type loanPayload struct {
	core.Loan
	UserID string `json:"usuario_id"`
}

// ListLoans fetches every loan of the given user, in server order.
func (c *Client) ListLoans(ctx context.Context, userID string) ([]core.Loan, error) {
	var loans []core.Loan
	if err := c.do(ctx, http.MethodPost, "/emprestimos/listar", listRequest{UserID: userID}, &loans, true); err != nil {
		return nil, err
	}
	return loans, nil
}

// CreateLoan submits a new loan for the given user.
func (c *Client) CreateLoan(ctx context.Context, userID string, loan core.Loan) (core.Loan, error) {
	var created core.Loan
	body := loanPayload{Loan: loan, UserID: userID}
	if err := c.do(ctx, http.MethodPost, "/emprestimos/criar", body, &created, true); err != nil {
		return core.Loan{}, err
	}
	return created, nil
}

// RegisterPayment submits an edit for an existing loan. The paid field
// carries the increment typed in this edit session, not the cumulative
// total: the API does the bookkeeping.
func (c *Client) RegisterPayment(ctx context.Context, userID string, id int64, loan core.Loan) (core.Loan, error) {
	var updated core.Loan
	path := fmt.Sprintf("/emprestimos/%d/pagamento", id)
	body := loanPayload{Loan: loan, UserID: userID}
	if err := c.do(ctx, http.MethodPut, path, body, &updated, true); err != nil {
		return core.Loan{}, err
	}
	return updated, nil
}

// DeleteLoan removes the loan with the given id.
func (c *Client) DeleteLoan(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/emprestimos/%d", id), nil, nil, true)
}
