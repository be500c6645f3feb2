package view

import (
	"context"
	"log/slog"

	"github.com/lucasmsqt/notes-app/internal/api"
	"github.com/lucasmsqt/notes-app/internal/core"
	"github.com/lucasmsqt/notes-app/internal/events"
)

const (
	loanSaveFallback   = "Erro ao salvar o empréstimo."
	loanDeleteFallback = "Erro ao deletar o empréstimo."
)

// DraftPhase tracks a loan edit session so the cumulative-payment
// arithmetic is auditable instead of incidental field mutation.
type DraftPhase int

const (
	// PhaseOpen: dialog just opened, no payment edits yet.
	PhaseOpen DraftPhase = iota
	// PhaseEditing: the paid field has been revised at least once.
	PhaseEditing
	// PhaseSubmitted: a submission attempt happened; the cumulative
	// shadow has been reset so stale increments cannot leak into the
	// next session.
	PhaseSubmitted
)

// LoanDraft is the ephemeral editable copy of a loan. Paid holds the
// instantaneous value of the payment field (what gets submitted) and
// cumulative shadows the total paid across the whole edit session so
// the remaining preview stays honest while the user revises the field.
type LoanDraft struct {
	ID           int64
	Name         string
	Total        core.Decimal
	Installments int
	Paid         core.Decimal
	Status       core.LoanStatus

	cumulative core.Decimal
	phase      DraftPhase
}

// SetPaid revises the payment field. The shadow follows the rule
// cumulative = cumulative - previousField + v: revising "20" to "50"
// adds 30 on top of whatever was already paid, it does not restart the
// count.
func (d *LoanDraft) SetPaid(v core.Decimal) {
	d.cumulative = d.cumulative - d.Paid + v
	d.Paid = v
	d.phase = PhaseEditing
}

// SetPaidText parses user input and applies SetPaid; empty text is zero.
func (d *LoanDraft) SetPaidText(s string) error {
	v, err := core.ParseAmount(s)
	if err != nil {
		return err
	}
	d.SetPaid(v)
	return nil
}

// SetTotalText parses the total field; empty text is zero.
func (d *LoanDraft) SetTotalText(s string) error {
	v, err := core.ParseAmount(s)
	if err != nil {
		return err
	}
	d.Total = v
	return nil
}

// CumulativePaid exposes the shadow value for the preview.
func (d *LoanDraft) CumulativePaid() core.Decimal { return d.cumulative }

func (d *LoanDraft) Phase() DraftPhase { return d.phase }

// RemainingPreview is total minus cumulative paid, surfaced only while
// positive. A settled or overpaid loan shows no remaining line.
func (d *LoanDraft) RemainingPreview() (core.Decimal, bool) {
	remaining := d.Total - d.cumulative
	return remaining, d.Total > 0 && remaining > 0
}

// finishSubmission resets the shadow after any submission attempt,
// success or failure.
func (d *LoanDraft) finishSubmission() {
	d.cumulative = 0
	d.phase = PhaseSubmitted
}

// Record materializes the draft. Paid carries the field value, not the
// cumulative: the API interprets the submission as an increment.
func (d *LoanDraft) Record() core.Loan {
	return core.Loan{
		ID:           d.ID,
		Name:         d.Name,
		Total:        d.Total,
		Installments: d.Installments,
		Paid:         d.Paid,
		Status:       d.Status,
	}
}

// LoanForm manages the open dialog's draft.
type LoanForm struct {
	draft *LoanDraft
}

// Open starts an edit session. For an existing loan the cumulative
// shadow is seeded with the paid amount as it stood when the dialog
// opened; a new loan starts from the create defaults.
func (f *LoanForm) Open(existing *core.Loan) {
	if existing == nil {
		f.draft = &LoanDraft{
			Installments: 1,
			Status:       core.LoanPending,
		}
		return
	}
	f.draft = &LoanDraft{
		ID:           existing.ID,
		Name:         existing.Name,
		Total:        existing.Total,
		Installments: existing.Installments,
		Paid:         existing.Paid,
		Status:       existing.Status,
		cumulative:   existing.Paid,
	}
}

func (f *LoanForm) Close() {
	f.draft = nil
}

func (f *LoanForm) IsOpen() bool      { return f.draft != nil }
func (f *LoanForm) Draft() *LoanDraft { return f.draft }

// LoanList owns the in-memory loan collection.
type LoanList struct {
	svc     LoanService
	session SessionSource
	pub     events.Publisher

	records []core.Loan
	errMsg  string
}

func NewLoanList(svc LoanService, session SessionSource, pub events.Publisher) *LoanList {
	if pub == nil {
		pub = events.Noop{}
	}
	return &LoanList{svc: svc, session: session, pub: pub}
}

// Refresh replaces the local list with the server's; failures are
// logged and swallowed, same contract as bills.
func (l *LoanList) Refresh(ctx context.Context) error {
	creds, err := l.session.Credentials()
	if err != nil {
		return err
	}
	loans, err := l.svc.ListLoans(ctx, creds.UserID)
	if err != nil {
		slog.WarnContext(ctx, "Loan list refresh failed, keeping stale data", "error", err)
		return nil
	}
	l.records = loans
	return nil
}

// Submit creates a loan or registers a payment depending on the
// draft's identity. The cumulative shadow is reset after the attempt
// regardless of outcome.
func (l *LoanList) Submit(ctx context.Context, d *LoanDraft) error {
	defer d.finishSubmission()

	creds, err := l.session.Credentials()
	if err != nil {
		return err
	}

	action := events.ActionUpdated
	if d.ID == 0 {
		action = events.ActionCreated
		_, err = l.svc.CreateLoan(ctx, creds.UserID, d.Record())
	} else {
		_, err = l.svc.RegisterPayment(ctx, creds.UserID, d.ID, d.Record())
	}
	if err != nil {
		l.errMsg = api.UserMessage(err, loanSaveFallback)
		return err
	}

	l.errMsg = ""
	l.publish(ctx, action, d.ID)
	return l.Refresh(ctx)
}

// Remove deletes on the server and patches the local list directly on
// success, mirroring the bill contract.
func (l *LoanList) Remove(ctx context.Context, id int64) error {
	if err := l.svc.DeleteLoan(ctx, id); err != nil {
		l.errMsg = api.UserMessage(err, loanDeleteFallback)
		return err
	}

	kept := l.records[:0]
	for _, loan := range l.records {
		if loan.ID != id {
			kept = append(kept, loan)
		}
	}
	l.records = kept
	l.errMsg = ""
	l.publish(ctx, events.ActionDeleted, id)
	return nil
}

// Total sums the total owed across all loans.
func (l *LoanList) Total() core.Decimal {
	var total core.Decimal
	for _, loan := range l.records {
		total += loan.Total
	}
	return total
}

// TotalRemaining sums the outstanding balance, ignoring overpaid loans.
func (l *LoanList) TotalRemaining() core.Decimal {
	var total core.Decimal
	for _, loan := range l.records {
		if r := loan.Remaining(); r > 0 {
			total += r
		}
	}
	return total
}

func (l *LoanList) Records() []core.Loan { return l.records }

func (l *LoanList) Err() string { return l.errMsg }

func (l *LoanList) ClearErr() { l.errMsg = "" }

func (l *LoanList) publish(ctx context.Context, action string, id int64) {
	msg := events.NewRecordChange(events.ResourceLoan, action, id)
	if err := l.pub.PublishRecordChange(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Record change publish failed", "resource", msg.Resource, "error", err)
	}
}
