package handlers

import (
	"errors"
	"time"

	"hospital-portal-server/internal/mailer"
	"hospital-portal-server/internal/middleware"
	"hospital-portal-server/internal/models"
	"hospital-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BillingHandler handles invoice and payment requests.
type BillingHandler struct {
	DB       *gorm.DB
	Notifier mailer.Notifier
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(db *gorm.DB, notifier mailer.Notifier) *BillingHandler {
	return &BillingHandler{DB: db, Notifier: notifier}
}

// IssueInvoiceRequest represents the request body for issuing an invoice.
type IssueInvoiceRequest struct {
	PatientID     string     `json:"patientId" binding:"required,uuid"`
	AppointmentID string     `json:"appointmentId" binding:"omitempty,uuid"`
	ServiceName   string     `json:"serviceName" binding:"required"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	DueDate       *time.Time `json:"dueDate"`
	Notes         string     `json:"notes"`
}

// IssueInvoice creates an invoice for a patient, optionally linked
// one-to-one to an appointment. The invoice number is derived from the
// issue time and the patient identifier.
func (h *BillingHandler) IssueInvoice(c *gin.Context) {
	var req IssueInvoiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	invoice := models.Invoice{
		InvoiceNumber: models.NewInvoiceNumber(time.Now(), patient.ID),
		PatientID:     patient.ID,
		ServiceName:   req.ServiceName,
		Amount:        req.Amount,
		Status:        models.InvoicePending,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	}

	if req.AppointmentID != "" {
		var appointment models.Appointment
		if err := h.DB.First(&appointment, "id = ? AND patient_id = ?", req.AppointmentID, patient.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.NotFound(c, "Appointment not found for this patient")
			} else {
				utils.InternalServerError(c, "Database error verifying appointment: "+err.Error())
			}
			return
		}
		invoice.AppointmentID = &appointment.ID
	}

	if err := h.DB.Create(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "This appointment already has an invoice")
		} else {
			utils.InternalServerError(c, "Failed to create invoice: "+err.Error())
		}
		return
	}

	utils.Created(c, "Invoice issued successfully", invoice)
}

// BillSummary carries the running totals shown above the bill list.
type BillSummary struct {
	TotalBilled      float64 `json:"totalBilled"`
	TotalPaid        float64 `json:"totalPaid"`
	TotalOutstanding float64 `json:"totalOutstanding"`
}

// BillList is the bills page payload: invoices plus totals.
type BillList struct {
	Invoices []models.Invoice `json:"invoices"`
	Summary  BillSummary      `json:"summary"`
}

// GetPatientBills lists the authenticated patient's invoices with running
// totals. The optional status filter accepts the stored statuses plus the
// computed "overdue".
func (h *BillingHandler) GetPatientBills(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var all []models.Invoice
	if err := h.DB.Where("patient_id = ?", patient.ID).
		Order("created_at desc").Find(&all).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch bills: "+err.Error())
		return
	}

	var summary BillSummary
	for i := range all {
		summary.TotalBilled += all[i].Amount
		summary.TotalPaid += all[i].PaidAmount
	}
	summary.TotalOutstanding = summary.TotalBilled - summary.TotalPaid

	invoices := all
	if status := c.Query("status"); status != "" {
		invoices = invoices[:0:0]
		now := time.Now()
		for i := range all {
			if status == string(models.InvoiceOverdue) {
				if all[i].IsOverdue(now) {
					invoices = append(invoices, all[i])
				}
			} else if string(all[i].Status) == status {
				invoices = append(invoices, all[i])
			}
		}
	}

	utils.Success(c, "Bills fetched successfully", BillList{Invoices: invoices, Summary: summary})
}

// GetInvoiceByID fetches a single invoice. Patients may only see their own;
// doctors and admins may see any.
func (h *BillingHandler) GetInvoiceByID(c *gin.Context) {
	var invoice models.Invoice
	if err := h.DB.Preload("Patient").Preload("Appointment").
		First(&invoice, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Invoice not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RolePatient {
		patient, ok := currentPatient(c, h.DB)
		if !ok {
			return
		}
		if patient.ID != invoice.PatientID {
			utils.Forbidden(c, "You are not authorized to view this invoice")
			return
		}
	}

	utils.Success(c, "Invoice fetched successfully", invoice)
}

// PostPaymentRequest represents the request body for recording a payment.
type PostPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"required,oneof=Cash 'Transfer Bank' 'Debit Card' BPJS"`
	Notes  string  `json:"notes"`
}

// PostPayment adds a partial or full payment to the patient's own invoice.
// The increment is applied with a SQL expression inside a transaction, so
// two concurrent postings cannot read the same starting balance; the status
// label is rederived from the resulting paid amount. Re-submitting the same
// payment is not deduplicated.
func (h *BillingHandler) PostPayment(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var req PostPaymentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var invoice models.Invoice
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, "id = ? AND patient_id = ?", c.Param("id"), patient.ID).Error; err != nil {
			return err
		}
		if err := invoice.ValidatePayment(req.Amount); err != nil {
			return err
		}
		if err := tx.Model(&invoice).
			UpdateColumn("paid_amount", gorm.Expr("paid_amount + ?", req.Amount)).Error; err != nil {
			return err
		}
		// Re-read the incremented balance before deriving the status.
		if err := tx.First(&invoice, "id = ?", invoice.ID).Error; err != nil {
			return err
		}
		invoice.Method = req.Method
		if req.Notes != "" {
			invoice.Notes = req.Notes
		}
		invoice.RecomputeStatus(time.Now())
		return tx.Save(&invoice).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.NotFound(c, "Invoice not found")
		case errors.Is(err, models.ErrNonPositivePayment), errors.Is(err, models.ErrInvoiceClosed):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalServerError(c, "Failed to record payment: "+err.Error())
		}
		return
	}

	msg := mailer.PaymentConfirmed(patient, &invoice, req.Amount)
	h.Notifier.Send(patientRecipient(h.DB, patient.ID), msg.Subject, msg.Body)

	utils.Success(c, "Payment recorded successfully", invoice)
}

// GetOverdueInvoices lists invoices past their due date with no payment
// recorded. Admin only. Overdueness is computed, never stored.
func (h *BillingHandler) GetOverdueInvoices(c *gin.Context) {
	var invoices []models.Invoice
	if err := h.DB.Preload("Patient").
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?",
			models.InvoicePending, time.Now()).
		Order("due_date asc").Find(&invoices).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch overdue invoices: "+err.Error())
		return
	}
	utils.Success(c, "Overdue invoices fetched successfully", invoices)
}

// SendPaymentReminder mails the payment reminder for an unsettled invoice.
// Admin only.
func (h *BillingHandler) SendPaymentReminder(c *gin.Context) {
	var invoice models.Invoice
	if err := h.DB.Preload("Patient").First(&invoice, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Invoice not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if invoice.Status == models.InvoicePaid || invoice.Status == models.InvoiceCancelled {
		utils.BadRequest(c, "Invoice has no outstanding balance")
		return
	}

	msg := mailer.PaymentReminder(&invoice.Patient, &invoice)
	h.Notifier.Send(patientRecipient(h.DB, invoice.PatientID), msg.Subject, msg.Body)

	utils.Success(c, "Payment reminder sent", nil)
}
