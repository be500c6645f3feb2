package core

import (
	"errors"
	"testing"
)

func TestBillValidate(t *testing.T) {
	valid := Bill{Name: "Luz", Amount: 150.5, Status: BillOpen, Reference: "2024-03"}

	tests := []struct {
		name    string
		mutate  func(*Bill)
		wantErr error
	}{
		{"valid", func(b *Bill) {}, nil},
		{"no reference is allowed", func(b *Bill) { b.Reference = "" }, nil},
		{"empty name", func(b *Bill) { b.Name = "  " }, ErrEmptyName},
		{"negative amount", func(b *Bill) { b.Amount = -1 }, ErrNegativeAmount},
		{"unknown status", func(b *Bill) { b.Status = "Perdida" }, ErrInvalidStatus},
		{"bad reference", func(b *Bill) { b.Reference = "03/2024" }, ErrInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			if err := b.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoanValidate(t *testing.T) {
	valid := Loan{Name: "Carro", Total: 300, Installments: 12, Paid: 100, Status: LoanPending}

	tests := []struct {
		name    string
		mutate  func(*Loan)
		wantErr error
	}{
		{"valid", func(l *Loan) {}, nil},
		{"empty name", func(l *Loan) { l.Name = "" }, ErrEmptyName},
		{"zero installments", func(l *Loan) { l.Installments = 0 }, ErrInvalidInstallments},
		{"negative paid", func(l *Loan) { l.Paid = -5 }, ErrNegativeAmount},
		{"unknown status", func(l *Loan) { l.Status = "ativo" }, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			if err := l.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoanRemaining(t *testing.T) {
	l := Loan{Total: 300, Paid: 100}
	if got := l.Remaining(); got != 200 {
		t.Errorf("Remaining() = %v, want 200", got)
	}
	// Overpaid loans keep the negative value; only the view hides it.
	l.Paid = 350
	if got := l.Remaining(); got != -50 {
		t.Errorf("Remaining() = %v, want -50", got)
	}
}
