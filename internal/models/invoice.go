package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePartial   InvoiceStatus = "partial"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Accepted payment methods
const (
	MethodCash     = "Cash"
	MethodTransfer = "Transfer Bank"
	MethodDebit    = "Debit Card"
	MethodBPJS     = "BPJS"
)

var (
	ErrNonPositivePayment = errors.New("payment amount must be greater than zero")
	ErrInvoiceClosed      = errors.New("invoice is cancelled")
)

// Invoice tracks the amount owed vs. paid for one service or appointment.
// remaining and overdue are derived values, recomputed on every call and
// never persisted, so they cannot drift from the stored columns.
type Invoice struct {
	BaseModel
	InvoiceNumber string        `gorm:"uniqueIndex;size:32;not null" json:"invoiceNumber"`
	PatientID     string        `gorm:"size:36;index" json:"patientId"`
	AppointmentID *string       `gorm:"uniqueIndex;size:36" json:"appointmentId,omitempty"`
	ServiceName   string        `gorm:"size:255;not null" json:"serviceName"`
	Amount        float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaidAmount    float64       `gorm:"type:decimal(10,2);default:0" json:"paidAmount"`
	Status        InvoiceStatus `gorm:"size:20;default:'pending'" json:"status"`
	Method        string        `gorm:"size:50" json:"method,omitempty"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`
	DueDate       *time.Time    `json:"dueDate,omitempty"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`

	// Relations
	Patient     Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

// NewInvoiceNumber derives a unique invoice number from the issue time and
// the patient identifier.
func NewInvoiceNumber(issuedAt time.Time, patientID string) string {
	prefix := patientID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("INV-%s-%s", issuedAt.Format("20060102150405"), strings.ToUpper(prefix))
}

// RemainingAmount is the outstanding balance, always recomputed.
func (i *Invoice) RemainingAmount() float64 {
	return i.Amount - i.PaidAmount
}

// IsOverdue reports whether the invoice passed its due date without any
// payment having been recorded.
func (i *Invoice) IsOverdue(today time.Time) bool {
	if i.DueDate == nil || i.Status != InvoicePending {
		return false
	}
	return StartOfDay(*i.DueDate).Before(StartOfDay(today))
}

// ValidatePayment checks a payment posting before it is applied.
func (i *Invoice) ValidatePayment(amount float64) error {
	if i.Status == InvoiceCancelled {
		return ErrInvoiceClosed
	}
	if amount <= 0 {
		return ErrNonPositivePayment
	}
	return nil
}

// RecomputeStatus rederives the status label from the paid amount. The
// payment date is set on the transition to paid.
func (i *Invoice) RecomputeStatus(now time.Time) {
	switch {
	case i.PaidAmount >= i.Amount:
		if i.Status != InvoicePaid {
			i.PaymentDate = &now
		}
		i.Status = InvoicePaid
	case i.PaidAmount > 0:
		i.Status = InvoicePartial
	default:
		i.Status = InvoicePending
	}
}
