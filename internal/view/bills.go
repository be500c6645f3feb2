// Package view holds the in-memory state between the rendered pages
// and the remote resource collections: the ordered record lists, the
// form drafts and the reconciliation rules after each mutation.
//
// The synchronization contract, in short: refresh replaces the whole
// list with the server's response and swallows failures (stale data
// stays visible); create and update resynchronize by refetching; delete
// is the one optimistic path and patches the local list directly.
// View-models do no locking of their own; the caller serializes
// access.
package view

import (
	"context"
	"log/slog"

	"github.com/lucasmsqt/notes-app/internal/api"
	"github.com/lucasmsqt/notes-app/internal/core"
	"github.com/lucasmsqt/notes-app/internal/events"
)

const (
	billSaveFallback   = "Erro ao salvar a conta."
	billDeleteFallback = "Erro ao deletar a conta."
)

// BillDraft is the ephemeral editable copy of a bill while the
// create/edit dialog is open. A zero ID marks a create.
type BillDraft struct {
	ID        int64
	Name      string
	Amount    core.Decimal
	Status    core.BillStatus
	Reference string
}

// SetAmountText parses user input into the draft; empty text is zero.
func (d *BillDraft) SetAmountText(s string) error {
	amount, err := core.ParseAmount(s)
	if err != nil {
		return err
	}
	d.Amount = amount
	return nil
}

// Record materializes the draft for submission.
func (d *BillDraft) Record() core.Bill {
	return core.Bill{
		ID:        d.ID,
		Name:      d.Name,
		Amount:    d.Amount,
		Status:    d.Status,
		Reference: d.Reference,
	}
}

// BillForm manages the open dialog's draft.
type BillForm struct {
	draft *BillDraft
}

// Open starts an edit session. Without an existing record the draft
// gets the create defaults: open status, current month reference.
func (f *BillForm) Open(existing *core.Bill) {
	if existing == nil {
		f.draft = &BillDraft{
			Status:    core.BillOpen,
			Reference: core.CurrentReference(),
		}
		return
	}
	f.draft = &BillDraft{
		ID:        existing.ID,
		Name:      existing.Name,
		Amount:    existing.Amount,
		Status:    existing.Status,
		Reference: existing.Reference,
	}
}

// Close discards the draft.
func (f *BillForm) Close() {
	f.draft = nil
}

func (f *BillForm) IsOpen() bool      { return f.draft != nil }
func (f *BillForm) Draft() *BillDraft { return f.draft }

// BillList owns the in-memory bill collection.
type BillList struct {
	svc     BillService
	session SessionSource
	pub     events.Publisher

	records []core.Bill
	errMsg  string
}

func NewBillList(svc BillService, session SessionSource, pub events.Publisher) *BillList {
	if pub == nil {
		pub = events.Noop{}
	}
	return &BillList{svc: svc, session: session, pub: pub}
}

// Refresh replaces the local list with the server's. Failures are
// logged and swallowed: prior records stay on screen and no error
// message is set. The returned error only signals a missing session.
func (l *BillList) Refresh(ctx context.Context) error {
	creds, err := l.session.Credentials()
	if err != nil {
		return err
	}
	bills, err := l.svc.ListBills(ctx, creds.UserID)
	if err != nil {
		slog.WarnContext(ctx, "Bill list refresh failed, keeping stale data", "error", err)
		return nil
	}
	l.records = bills
	return nil
}

// Submit creates or updates depending on the draft's identity. On
// success the list is refetched; on failure the error message is set
// and the caller keeps the form open for retry.
func (l *BillList) Submit(ctx context.Context, d *BillDraft) error {
	var err error
	action := events.ActionUpdated
	if d.ID == 0 {
		action = events.ActionCreated
		_, err = l.svc.CreateBill(ctx, d.Record())
	} else {
		_, err = l.svc.UpdateBill(ctx, d.ID, d.Record())
	}
	if err != nil {
		l.errMsg = api.UserMessage(err, billSaveFallback)
		return err
	}

	l.errMsg = ""
	l.publish(ctx, action, d.ID)
	return l.Refresh(ctx)
}

// Remove deletes on the server and, on success, patches the local list
// directly, the one place state is not resynchronized by refetch.
// Removing an identity that is already gone touches nothing locally.
func (l *BillList) Remove(ctx context.Context, id int64) error {
	if err := l.svc.DeleteBill(ctx, id); err != nil {
		l.errMsg = api.UserMessage(err, billDeleteFallback)
		return err
	}

	kept := l.records[:0]
	for _, b := range l.records {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	l.records = kept
	l.errMsg = ""
	l.publish(ctx, events.ActionDeleted, id)
	return nil
}

// Total sums every amount at full precision. Non-numeric wire values
// already decoded to zero, so they contribute nothing.
func (l *BillList) Total() core.Decimal {
	var total core.Decimal
	for _, b := range l.records {
		total += b.Amount
	}
	return total
}

func (l *BillList) Records() []core.Bill { return l.records }

func (l *BillList) Err() string { return l.errMsg }

func (l *BillList) ClearErr() { l.errMsg = "" }

func (l *BillList) publish(ctx context.Context, action string, id int64) {
	msg := events.NewRecordChange(events.ResourceBill, action, id)
	if err := l.pub.PublishRecordChange(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Record change publish failed", "resource", msg.Resource, "error", err)
	}
}
