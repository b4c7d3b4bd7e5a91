package mailer

import (
	"fmt"

	"hospital-portal-server/internal/models"
)

// Message is a composed notification ready for delivery.
type Message struct {
	Subject string
	Body    string
}

// AppointmentConfirmed composes the notification sent when a doctor
// approves an appointment.
func AppointmentConfirmed(patient *models.Patient, doctor *models.Doctor, appt *models.Appointment) Message {
	location := doctor.Unit
	if location == "" {
		location = "the hospital"
	}
	return Message{
		Subject: fmt.Sprintf("Your appointment has been confirmed - Dr. %s", doctor.Name),
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour appointment with Dr. %s (%s) has been confirmed.\n\n"+
				"Date: %s\nTime: %s\nLocation: %s\n\n"+
				"Please arrive 10 minutes before your scheduled time.\n",
			patient.Name, doctor.Name, doctor.Specialty,
			appt.ExaminationDate.Format("2 January 2006"), appt.ExaminationTime, location),
	}
}

// AppointmentRejected composes the notification sent when a doctor rejects
// an appointment request.
func AppointmentRejected(patient *models.Patient, doctor *models.Doctor, reason string) Message {
	return Message{
		Subject: fmt.Sprintf("Your appointment request was declined - Dr. %s", doctor.Name),
		Body: fmt.Sprintf(
			"Hello %s,\n\nWe are sorry, your appointment request with Dr. %s was declined.\n\n"+
				"Reason: %s\n\nPlease book another time; we look forward to your visit.\n",
			patient.Name, doctor.Name, reason),
	}
}

// AppointmentReminder composes the reminder for an upcoming appointment.
func AppointmentReminder(patient *models.Patient, doctor *models.Doctor, appt *models.Appointment) Message {
	location := doctor.Unit
	if location == "" {
		location = "the hospital"
	}
	return Message{
		Subject: fmt.Sprintf("Reminder: upcoming appointment with Dr. %s", doctor.Name),
		Body: fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder of your appointment with Dr. %s (%s).\n\n"+
				"Date: %s\nTime: %s\nLocation: %s\n\nPlease arrive 10 minutes early.\n",
			patient.Name, doctor.Name, doctor.Specialty,
			appt.ExaminationDate.Format("2 January 2006"), appt.ExaminationTime, location),
	}
}

// PaymentConfirmed composes the notification sent after a payment posting.
func PaymentConfirmed(patient *models.Patient, inv *models.Invoice, paid float64) Message {
	return Message{
		Subject: fmt.Sprintf("Payment received - %s", inv.InvoiceNumber),
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour payment has been recorded.\n\n"+
				"Invoice: %s\nService: %s\nPayment: %.2f\nTotal billed: %.2f\nRemaining: %.2f\nMethod: %s\nStatus: %s\n\n"+
				"Thank you for your payment.\n",
			patient.Name, inv.InvoiceNumber, inv.ServiceName,
			paid, inv.Amount, inv.RemainingAmount(), inv.Method, inv.Status),
	}
}

// PaymentReminder composes the reminder for an unsettled invoice.
func PaymentReminder(patient *models.Patient, inv *models.Invoice) Message {
	due := "as soon as possible"
	if inv.DueDate != nil {
		due = inv.DueDate.Format("2 January 2006")
	}
	return Message{
		Subject: fmt.Sprintf("Payment reminder - %s", inv.InvoiceNumber),
		Body: fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder of an unsettled bill.\n\n"+
				"Invoice: %s\nService: %s\nTotal billed: %.2f\nPaid so far: %.2f\nRemaining: %.2f\nDue: %s\n\n"+
				"Please settle the remaining amount before the due date.\n",
			patient.Name, inv.InvoiceNumber, inv.ServiceName,
			inv.Amount, inv.PaidAmount, inv.RemainingAmount(), due),
	}
}
