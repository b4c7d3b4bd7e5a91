package models

import (
	"errors"
	"fmt"
	"time"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ConfirmationStatus represents the doctor's decision on a booking request,
// distinct from the lifecycle status.
type ConfirmationStatus string

const (
	ConfirmationPending  ConfirmationStatus = "pending"
	ConfirmationApproved ConfirmationStatus = "approved"
	ConfirmationRejected ConfirmationStatus = "rejected"
)

// MaxBookingLeadDays limits how far ahead a patient can book.
const MaxBookingLeadDays = 30

var (
	ErrDateNotInFuture    = errors.New("examination date must be at least tomorrow")
	ErrDateTooFarAhead    = fmt.Errorf("examination date must be within %d days", MaxBookingLeadDays)
	ErrAlreadyDecided     = errors.New("appointment has already been confirmed or rejected")
	ErrRejectionNeedsNote = errors.New("rejection reason must not be empty")
	ErrNotApproved        = errors.New("appointment has not been approved by the doctor")
	ErrAlreadyCompleted   = errors.New("appointment is already completed")
	ErrEmptyDiagnosis     = errors.New("diagnosis and treatment must not be empty")
	ErrNotCancellable     = errors.New("only pending or confirmed appointments can be cancelled")
)

// Appointment represents a booked examination. It doubles as the medical
// record of the visit: the doctor writes diagnosis and treatment onto the
// same row when the examination is done.
type Appointment struct {
	BaseModel
	PatientID       string             `gorm:"size:36;index" json:"patientId"`
	DoctorID        string             `gorm:"size:36;index" json:"doctorId"`
	ExaminationDate time.Time          `json:"examinationDate"`
	ExaminationTime string             `gorm:"size:5" json:"examinationTime"` // "15:04"
	Notes           string             `gorm:"type:text" json:"notes,omitempty"`
	Diagnosis       string             `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment       string             `gorm:"type:text" json:"treatment,omitempty"`
	Status          AppointmentStatus  `gorm:"size:20;default:'pending'" json:"status"`
	Confirmation    ConfirmationStatus `gorm:"column:confirmation_status;size:20;default:'pending'" json:"confirmationStatus"`
	RejectionReason string             `gorm:"type:text" json:"rejectionReason,omitempty"`

	// SlotKey is set while the appointment occupies its slot and cleared
	// once it no longer does. The unique index makes the database enforce
	// one active appointment per (doctor, date, time).
	SlotKey *string `gorm:"uniqueIndex;size:64" json:"-"`

	// Relations
	Patient       Patient        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor        Doctor         `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:AppointmentID" json:"prescriptions,omitempty"`
}

// BuildSlotKey derives the uniqueness key for a (doctor, date, time) slot.
func BuildSlotKey(doctorID string, date time.Time, timeOfDay string) string {
	return fmt.Sprintf("%s|%s|%s", doctorID, date.Format("2006-01-02"), timeOfDay)
}

// ValidateBookingDate enforces the booking window: strictly after today and
// no more than MaxBookingLeadDays ahead. Both operands are compared as
// calendar dates in today's location, so a timestamp sent in another zone
// cannot slip past the same-day check.
func ValidateBookingDate(date, today time.Time) error {
	date = StartOfDay(date.In(today.Location()))
	today = StartOfDay(today)
	if !date.After(today) {
		return ErrDateNotInFuture
	}
	if date.After(today.AddDate(0, 0, MaxBookingLeadDays)) {
		return ErrDateTooFarAhead
	}
	return nil
}

// StartOfDay truncates a timestamp to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// Approve records the doctor's approval: pending -> confirmed.
func (a *Appointment) Approve() error {
	if a.Confirmation != ConfirmationPending {
		return ErrAlreadyDecided
	}
	a.Confirmation = ConfirmationApproved
	a.Status = StatusConfirmed
	return nil
}

// Reject records the doctor's rejection. Rejection is terminal and frees
// the slot for rebooking; lifecycle status stays pending so the patient
// still sees the request in their history.
func (a *Appointment) Reject(reason string) error {
	if a.Confirmation != ConfirmationPending {
		return ErrAlreadyDecided
	}
	if reason == "" {
		return ErrRejectionNeedsNote
	}
	a.Confirmation = ConfirmationRejected
	a.RejectionReason = reason
	a.SlotKey = nil
	return nil
}

// RecordDiagnosis stores the examination outcome: confirmed -> completed.
// Only valid once the doctor has approved the appointment.
func (a *Appointment) RecordDiagnosis(diagnosis, treatment string) error {
	if a.Confirmation != ConfirmationApproved {
		return ErrNotApproved
	}
	if a.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if diagnosis == "" || treatment == "" {
		return ErrEmptyDiagnosis
	}
	a.Diagnosis = diagnosis
	a.Treatment = treatment
	a.Status = StatusCompleted
	a.SlotKey = nil
	return nil
}

// Cancel marks the appointment cancelled and frees its slot. Records are
// never deleted; cancellation is a status value.
func (a *Appointment) Cancel() error {
	if !a.IsActive() {
		return ErrNotCancellable
	}
	a.Status = StatusCancelled
	a.SlotKey = nil
	return nil
}
