package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lucasmsqt/notes-app/internal/core"
)

// listRequest is the body of the POST-based list endpoints. The API
// expects the owner id in the payload even though the token already
// identifies the user.
type listRequest struct {
	UserID string `json:"usuario_id"`
}

// ListBills fetches every bill of the given user, in server order.
func (c *Client) ListBills(ctx context.Context, userID string) ([]core.Bill, error) {
	var bills []core.Bill
	if err := c.do(ctx, http.MethodPost, "/contas/listar", listRequest{UserID: userID}, &bills, true); err != nil {
		return nil, err
	}
	return bills, nil
}

// CreateBill submits a new bill. The payload carries no id; the API
// assigns one and returns the stored record.
func (c *Client) CreateBill(ctx context.Context, bill core.Bill) (core.Bill, error) {
	var created core.Bill
	if err := c.do(ctx, http.MethodPost, "/contas/criar", bill, &created, true); err != nil {
		return core.Bill{}, err
	}
	return created, nil
}

// UpdateBill edits the bill with the given id in place.
func (c *Client) UpdateBill(ctx context.Context, id int64, bill core.Bill) (core.Bill, error) {
	var updated core.Bill
	path := fmt.Sprintf("/contas/editar/%d", id)
	if err := c.do(ctx, http.MethodPut, path, bill, &updated, true); err != nil {
		return core.Bill{}, err
	}
	return updated, nil
}

// DeleteBill removes the bill with the given id.
func (c *Client) DeleteBill(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/contas/deletar/%d", id), nil, nil, true)
}
