package mailer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"hospital-portal-server/internal/config"
	"hospital-portal-server/internal/models"
)

type fakeTransport struct {
	err       error
	delivered []string
}

func (t *fakeTransport) Deliver(from, recipient, subject, body string) error {
	if t.err != nil {
		return t.err
	}
	t.delivered = append(t.delivered, recipient)
	return nil
}

func TestSendSwallowsErrorsByDefault(t *testing.T) {
	transport := &fakeTransport{err: errors.New("relay down")}
	m := &Mailer{transport: transport, from: "noreply@hospital.local"}

	if err := m.Send("patient@example.com", "subject", "body"); err != nil {
		t.Errorf("Send() = %v, want nil with default policy", err)
	}
}

func TestSendRaisesWhenAsked(t *testing.T) {
	transport := &fakeTransport{err: errors.New("relay down")}
	m := &Mailer{transport: transport, from: "noreply@hospital.local", Raise: true}

	if err := m.Send("patient@example.com", "subject", "body"); err == nil {
		t.Error("Send() with Raise = nil, want the delivery error")
	}
}

func TestSendDelivers(t *testing.T) {
	transport := &fakeTransport{}
	m := &Mailer{transport: transport, from: "noreply@hospital.local"}

	if err := m.Send("patient@example.com", "subject", "body"); err != nil {
		t.Fatalf("Send() = %v", err)
	}
	if len(transport.delivered) != 1 || transport.delivered[0] != "patient@example.com" {
		t.Errorf("delivered = %v", transport.delivered)
	}
}

func TestNewFallsBackToConsole(t *testing.T) {
	m := New(config.MailerConfig{Transport: "carrier-pigeon"})
	if _, ok := m.transport.(*ConsoleTransport); !ok {
		t.Errorf("transport = %T, want *ConsoleTransport", m.transport)
	}

	s := New(config.MailerConfig{Transport: "smtp", Host: "mail.local", Port: "25"})
	if _, ok := s.transport.(*SMTPTransport); !ok {
		t.Errorf("transport = %T, want *SMTPTransport", s.transport)
	}
}

func TestMessageBuilders(t *testing.T) {
	patient := &models.Patient{Name: "Budi Santoso"}
	doctor := &models.Doctor{Name: "Siti Rahma", Specialty: "Cardiology", Unit: "Cardiology Wing"}
	appt := &models.Appointment{
		ExaminationDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		ExaminationTime: "09:30",
	}

	t.Run("confirmed", func(t *testing.T) {
		msg := AppointmentConfirmed(patient, doctor, appt)
		for _, want := range []string{"Budi Santoso", "Siti Rahma", "20 August 2026", "09:30", "Cardiology Wing"} {
			if !strings.Contains(msg.Body, want) {
				t.Errorf("body missing %q:\n%s", want, msg.Body)
			}
		}
	})

	t.Run("confirmed without unit falls back", func(t *testing.T) {
		plain := &models.Doctor{Name: "Siti Rahma", Specialty: "Cardiology"}
		msg := AppointmentConfirmed(patient, plain, appt)
		if !strings.Contains(msg.Body, "the hospital") {
			t.Errorf("body missing location fallback:\n%s", msg.Body)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		msg := AppointmentRejected(patient, doctor, "fully booked that day")
		if !strings.Contains(msg.Body, "fully booked that day") {
			t.Errorf("body missing rejection reason:\n%s", msg.Body)
		}
	})

	t.Run("payment confirmed", func(t *testing.T) {
		inv := &models.Invoice{
			InvoiceNumber: "INV-20260815093045-A1B2C3D4",
			ServiceName:   "General consultation",
			Amount:        100000,
			PaidAmount:    60000,
			Status:        models.InvoicePartial,
			Method:        models.MethodTransfer,
		}
		msg := PaymentConfirmed(patient, inv, 60000)
		for _, want := range []string{"INV-20260815093045-A1B2C3D4", "60000.00", "40000.00", "Transfer Bank"} {
			if !strings.Contains(msg.Body, want) {
				t.Errorf("body missing %q:\n%s", want, msg.Body)
			}
		}
	})

	t.Run("payment reminder without due date", func(t *testing.T) {
		inv := &models.Invoice{InvoiceNumber: "INV-X", ServiceName: "Lab work", Amount: 50000}
		msg := PaymentReminder(patient, inv)
		if !strings.Contains(msg.Body, "as soon as possible") {
			t.Errorf("body missing due-date fallback:\n%s", msg.Body)
		}
	})
}
