package models

import (
	"errors"
	"testing"
	"time"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}

func TestValidateBookingDate(t *testing.T) {
	today := mustDate(t, "2026-08-01")

	tests := []struct {
		name string
		date string
		want error
	}{
		{"tomorrow is allowed", "2026-08-02", nil},
		{"last day of the window is allowed", "2026-08-31", nil},
		{"today is rejected", "2026-08-01", ErrDateNotInFuture},
		{"yesterday is rejected", "2026-07-31", ErrDateNotInFuture},
		{"one day past the window is rejected", "2026-09-01", ErrDateTooFarAhead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBookingDate(mustDate(t, tt.date), today)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateBookingDate(%s) = %v, want %v", tt.date, err, tt.want)
			}
		})
	}
}

func TestValidateBookingDateIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, 8, 1, 23, 30, 0, 0, time.UTC)
	tomorrowMorning := time.Date(2026, 8, 2, 0, 15, 0, 0, time.UTC)
	if err := ValidateBookingDate(tomorrowMorning, today); err != nil {
		t.Errorf("expected tomorrow morning to be bookable, got %v", err)
	}
}

func TestValidateBookingDateAcrossTimeZones(t *testing.T) {
	// A UTC-midnight timestamp for the server's current calendar day must
	// not pass the same-day check just because the server runs ahead of UTC.
	wib := time.FixedZone("WIB", 7*60*60)
	today := time.Date(2026, 8, 1, 10, 0, 0, 0, wib)

	sameDayUTC := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if err := ValidateBookingDate(sameDayUTC, today); !errors.Is(err, ErrDateNotInFuture) {
		t.Errorf("same calendar day via UTC = %v, want %v", err, ErrDateNotInFuture)
	}

	tomorrowUTC := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	if err := ValidateBookingDate(tomorrowUTC, today); err != nil {
		t.Errorf("next calendar day via UTC = %v, want nil", err)
	}
}

func TestStartOfDayKeepsLocation(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	ts := time.Date(2026, 8, 1, 10, 30, 0, 0, wib)
	got := StartOfDay(ts)
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, wib)
	if !got.Equal(want) || got.Location() != wib {
		t.Errorf("StartOfDay = %v, want %v in WIB", got, want)
	}
}

func TestBuildSlotKey(t *testing.T) {
	date := mustDate(t, "2026-08-15")
	got := BuildSlotKey("doc-1", date, "09:30")
	want := "doc-1|2026-08-15|09:30"
	if got != want {
		t.Errorf("BuildSlotKey = %q, want %q", got, want)
	}
}

func newPendingAppointment() *Appointment {
	key := BuildSlotKey("doc-1", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), "09:30")
	return &Appointment{
		PatientID:       "pat-1",
		DoctorID:        "doc-1",
		ExaminationDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		ExaminationTime: "09:30",
		Status:          StatusPending,
		Confirmation:    ConfirmationPending,
		SlotKey:         &key,
	}
}

func TestApprove(t *testing.T) {
	appt := newPendingAppointment()
	if err := appt.Approve(); err != nil {
		t.Fatalf("Approve() = %v", err)
	}
	if appt.Status != StatusConfirmed {
		t.Errorf("status = %s, want %s", appt.Status, StatusConfirmed)
	}
	if appt.Confirmation != ConfirmationApproved {
		t.Errorf("confirmation = %s, want %s", appt.Confirmation, ConfirmationApproved)
	}
	if appt.SlotKey == nil {
		t.Error("approval must keep the slot occupied")
	}

	// A second decision on the same request is refused.
	if err := appt.Approve(); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("second Approve() = %v, want %v", err, ErrAlreadyDecided)
	}
	if err := appt.Reject("late"); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("Reject() after approval = %v, want %v", err, ErrAlreadyDecided)
	}
}

func TestReject(t *testing.T) {
	appt := newPendingAppointment()

	if err := appt.Reject(""); !errors.Is(err, ErrRejectionNeedsNote) {
		t.Fatalf("Reject(\"\") = %v, want %v", err, ErrRejectionNeedsNote)
	}

	if err := appt.Reject("fully booked that day"); err != nil {
		t.Fatalf("Reject() = %v", err)
	}
	if appt.Confirmation != ConfirmationRejected {
		t.Errorf("confirmation = %s, want %s", appt.Confirmation, ConfirmationRejected)
	}
	// Lifecycle status stays pending so the patient can still see the
	// request, but the slot is freed for someone else.
	if appt.Status != StatusPending {
		t.Errorf("status = %s, want %s", appt.Status, StatusPending)
	}
	if appt.SlotKey != nil {
		t.Error("rejection must free the slot")
	}
	if appt.RejectionReason != "fully booked that day" {
		t.Errorf("rejection reason = %q", appt.RejectionReason)
	}

	// Rejection is terminal.
	if err := appt.Approve(); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("Approve() after rejection = %v, want %v", err, ErrAlreadyDecided)
	}
}

func TestRecordDiagnosis(t *testing.T) {
	appt := newPendingAppointment()

	if err := appt.RecordDiagnosis("flu", "rest"); !errors.Is(err, ErrNotApproved) {
		t.Fatalf("diagnosis before approval = %v, want %v", err, ErrNotApproved)
	}

	if err := appt.Approve(); err != nil {
		t.Fatal(err)
	}
	if err := appt.RecordDiagnosis("", "rest"); !errors.Is(err, ErrEmptyDiagnosis) {
		t.Errorf("empty diagnosis = %v, want %v", err, ErrEmptyDiagnosis)
	}
	if err := appt.RecordDiagnosis("flu", ""); !errors.Is(err, ErrEmptyDiagnosis) {
		t.Errorf("empty treatment = %v, want %v", err, ErrEmptyDiagnosis)
	}

	if err := appt.RecordDiagnosis("flu", "rest and fluids"); err != nil {
		t.Fatalf("RecordDiagnosis() = %v", err)
	}
	if appt.Status != StatusCompleted {
		t.Errorf("status = %s, want %s", appt.Status, StatusCompleted)
	}
	if appt.SlotKey != nil {
		t.Error("completion must free the slot")
	}

	if err := appt.RecordDiagnosis("flu", "rest"); !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("second diagnosis = %v, want %v", err, ErrAlreadyCompleted)
	}
}

func TestCancel(t *testing.T) {
	appt := newPendingAppointment()
	if err := appt.Cancel(); err != nil {
		t.Fatalf("Cancel() on pending = %v", err)
	}
	if appt.Status != StatusCancelled {
		t.Errorf("status = %s, want %s", appt.Status, StatusCancelled)
	}
	if appt.SlotKey != nil {
		t.Error("cancellation must free the slot")
	}

	if err := appt.Cancel(); !errors.Is(err, ErrNotCancellable) {
		t.Errorf("second Cancel() = %v, want %v", err, ErrNotCancellable)
	}

	completed := newPendingAppointment()
	if err := completed.Approve(); err != nil {
		t.Fatal(err)
	}
	if err := completed.RecordDiagnosis("flu", "rest"); err != nil {
		t.Fatal(err)
	}
	if err := completed.Cancel(); !errors.Is(err, ErrNotCancellable) {
		t.Errorf("Cancel() on completed = %v, want %v", err, ErrNotCancellable)
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}
	for _, tt := range tests {
		appt := Appointment{Status: tt.status}
		if got := appt.IsActive(); got != tt.want {
			t.Errorf("IsActive() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}
