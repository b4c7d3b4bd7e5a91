package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewInvoiceNumber(t *testing.T) {
	issued := time.Date(2026, 8, 15, 9, 30, 45, 0, time.UTC)
	got := NewInvoiceNumber(issued, "a1b2c3d4-e5f6-7890-abcd-ef1234567890")
	want := "INV-20260815093045-A1B2C3D4"
	if got != want {
		t.Errorf("NewInvoiceNumber = %q, want %q", got, want)
	}

	// Short identifiers are used as-is.
	got = NewInvoiceNumber(issued, "ab12")
	if got != "INV-20260815093045-AB12" {
		t.Errorf("NewInvoiceNumber short id = %q", got)
	}
}

func TestValidatePayment(t *testing.T) {
	inv := Invoice{Amount: 100000, Status: InvoicePending}

	if err := inv.ValidatePayment(0); !errors.Is(err, ErrNonPositivePayment) {
		t.Errorf("zero payment = %v, want %v", err, ErrNonPositivePayment)
	}
	if err := inv.ValidatePayment(-50); !errors.Is(err, ErrNonPositivePayment) {
		t.Errorf("negative payment = %v, want %v", err, ErrNonPositivePayment)
	}
	if err := inv.ValidatePayment(50000); err != nil {
		t.Errorf("valid payment = %v", err)
	}

	// Paying more than the remaining balance is allowed; the invoice
	// simply becomes paid.
	if err := inv.ValidatePayment(250000); err != nil {
		t.Errorf("overpayment = %v", err)
	}

	inv.Status = InvoiceCancelled
	if err := inv.ValidatePayment(50000); !errors.Is(err, ErrInvoiceClosed) {
		t.Errorf("payment on cancelled invoice = %v, want %v", err, ErrInvoiceClosed)
	}
}

func TestPartialPaymentsAccumulate(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	inv := Invoice{Amount: 100000, Status: InvoicePending}

	inv.PaidAmount += 60000
	inv.RecomputeStatus(now)
	if inv.Status != InvoicePartial {
		t.Fatalf("after first payment status = %s, want %s", inv.Status, InvoicePartial)
	}
	if inv.RemainingAmount() != 40000 {
		t.Fatalf("remaining = %v, want 40000", inv.RemainingAmount())
	}
	if inv.PaymentDate != nil {
		t.Error("payment date must not be set while the invoice is partial")
	}

	later := now.Add(48 * time.Hour)
	inv.PaidAmount += 40000
	inv.RecomputeStatus(later)
	if inv.Status != InvoicePaid {
		t.Fatalf("after second payment status = %s, want %s", inv.Status, InvoicePaid)
	}
	if inv.RemainingAmount() != 0 {
		t.Errorf("remaining = %v, want 0", inv.RemainingAmount())
	}
	if inv.PaymentDate == nil || !inv.PaymentDate.Equal(later) {
		t.Errorf("payment date = %v, want %v", inv.PaymentDate, later)
	}
}

func TestRecomputeStatusKeepsFirstPaymentDate(t *testing.T) {
	first := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	inv := Invoice{Amount: 100000, PaidAmount: 100000, Status: InvoicePending}

	inv.RecomputeStatus(first)
	if inv.Status != InvoicePaid {
		t.Fatalf("status = %s, want %s", inv.Status, InvoicePaid)
	}

	inv.RecomputeStatus(first.Add(time.Hour))
	if !inv.PaymentDate.Equal(first) {
		t.Errorf("payment date moved to %v, want %v", inv.PaymentDate, first)
	}
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	past := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	future := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status InvoiceStatus
		due    *time.Time
		want   bool
	}{
		{"pending past due", InvoicePending, &past, true},
		{"pending not yet due", InvoicePending, &future, false},
		{"pending without due date", InvoicePending, nil, false},
		{"partial past due is not overdue", InvoicePartial, &past, false},
		{"paid past due is not overdue", InvoicePaid, &past, false},
		{"due today is not overdue", InvoicePending, &today, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invoice{Amount: 100000, Status: tt.status, DueDate: tt.due}
			if got := inv.IsOverdue(today); got != tt.want {
				t.Errorf("IsOverdue = %v, want %v", got, tt.want)
			}
		})
	}
}
