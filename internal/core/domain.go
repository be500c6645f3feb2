package core

import (
	"errors"
	"strings"
)

const (
	BillOpen    BillStatus = "Aberta"
	BillPaid    BillStatus = "Paga"
	BillOverdue BillStatus = "Atrasada"
)

const (
	LoanPending   LoanStatus = "pendente"
	LoanSettled   LoanStatus = "quitado"
	LoanCancelled LoanStatus = "cancelado"
)

type (
	BillStatus string
	LoanStatus string

	// Bill is a recurring payable obligation tied to a reference month.
	// The ID is assigned by the API on creation; a zero ID marks an
	// unsaved record.
	Bill struct {
		ID        int64      `json:"id,omitempty"`
		Name      string     `json:"nome"`
		Amount    Decimal    `json:"valor"`
		Status    BillStatus `json:"status"`
		Reference string     `json:"referencia"`
	}

	// Loan is an obligation with a total amount, an installment count
	// and incremental payments tracked against it.
	Loan struct {
		ID           int64      `json:"id,omitempty"`
		Name         string     `json:"nome"`
		Total        Decimal    `json:"valor"`
		Installments int        `json:"parcelas"`
		Paid         Decimal    `json:"valor_pago"`
		Status       LoanStatus `json:"status"`
	}
)

var (
	ErrEmptyName           = errors.New("empty name")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrNegativeAmount      = errors.New("negative amount")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidInstallments = errors.New("installments must be positive")
	ErrInvalidReference    = errors.New("invalid reference month")
)

// Validate checks the required-field and coercion rules the client
// enforces. Semantic validation (duplicates, ownership, status
// transitions) is owned by the API and surfaces as request errors.
func (b Bill) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if b.Amount < 0 {
		return ErrNegativeAmount
	}
	switch b.Status {
	case BillOpen, BillPaid, BillOverdue:
	default:
		return ErrInvalidStatus
	}
	if b.Reference != "" {
		if _, err := ParseReference(b.Reference); err != nil {
			return ErrInvalidReference
		}
	}
	return nil
}

func (l Loan) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if l.Total < 0 || l.Paid < 0 {
		return ErrNegativeAmount
	}
	if l.Installments < 1 {
		return ErrInvalidInstallments
	}
	switch l.Status {
	case LoanPending, LoanSettled, LoanCancelled:
	default:
		return ErrInvalidStatus
	}
	return nil
}

// Remaining is total minus paid. Not clamped: the UI hides
// non-positive values, storage keeps whatever the API sent.
func (l Loan) Remaining() Decimal {
	return l.Total - l.Paid
}
