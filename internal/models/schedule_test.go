package models

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestDoctorAvailabilityValidate(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"valid window", "08:00", "12:00", false},
		{"inverted window", "12:00", "08:00", true},
		{"zero-length window", "08:00", "08:00", true},
		{"unparsable start", "8am", "12:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DoctorAvailability{DayOfWeek: 1, StartTime: tt.start, EndTime: tt.end}
			err := w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDoctorLeaveValidate(t *testing.T) {
	today := mustDate(t, "2026-08-15")

	ok := DoctorLeave{StartDate: mustDate(t, "2026-08-20"), EndDate: mustDate(t, "2026-08-22")}
	if err := ok.Validate(today); err != nil {
		t.Errorf("valid leave = %v", err)
	}

	single := DoctorLeave{StartDate: mustDate(t, "2026-08-20"), EndDate: mustDate(t, "2026-08-20")}
	if err := single.Validate(today); err != nil {
		t.Errorf("single-day leave = %v", err)
	}

	inverted := DoctorLeave{StartDate: mustDate(t, "2026-08-22"), EndDate: mustDate(t, "2026-08-20")}
	if err := inverted.Validate(today); !errors.Is(err, ErrLeaveInverted) {
		t.Errorf("inverted leave = %v, want %v", err, ErrLeaveInverted)
	}

	past := DoctorLeave{StartDate: mustDate(t, "2026-08-10"), EndDate: mustDate(t, "2026-08-20")}
	if err := past.Validate(today); !errors.Is(err, ErrLeaveInPast) {
		t.Errorf("leave starting in the past = %v, want %v", err, ErrLeaveInPast)
	}
}

func TestDoctorLeaveCovers(t *testing.T) {
	leave := DoctorLeave{StartDate: mustDate(t, "2026-08-20"), EndDate: mustDate(t, "2026-08-22")}

	if !leave.Covers(mustDate(t, "2026-08-20")) {
		t.Error("start date should be covered")
	}
	if !leave.Covers(mustDate(t, "2026-08-22")) {
		t.Error("end date should be covered")
	}
	if leave.Covers(mustDate(t, "2026-08-19")) {
		t.Error("day before should not be covered")
	}
	if leave.Covers(mustDate(t, "2026-08-23")) {
		t.Error("day after should not be covered")
	}
}

func TestOpenSlots(t *testing.T) {
	// 2026-08-17 is a Monday.
	monday := mustDate(t, "2026-08-17")
	windows := []DoctorAvailability{
		{DoctorID: "doc-1", DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "11:00", IsActive: true},
	}

	t.Run("full window", func(t *testing.T) {
		got := OpenSlots(monday, windows, nil, nil)
		want := []string{"09:00", "09:30", "10:00", "10:30"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("OpenSlots = %v, want %v", got, want)
		}
	})

	t.Run("active bookings remove their slot", func(t *testing.T) {
		booked := []Appointment{
			{DoctorID: "doc-1", ExaminationDate: monday, ExaminationTime: "09:30", Status: StatusConfirmed},
			{DoctorID: "doc-1", ExaminationDate: monday, ExaminationTime: "10:00", Status: StatusPending},
		}
		got := OpenSlots(monday, windows, nil, booked)
		want := []string{"09:00", "10:30"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("OpenSlots = %v, want %v", got, want)
		}
	})

	t.Run("bookings stored in another zone still block their slot", func(t *testing.T) {
		wib := time.FixedZone("WIB", 7*60*60)
		localMonday := time.Date(2026, 8, 17, 0, 0, 0, 0, wib)
		booked := []Appointment{
			{DoctorID: "doc-1", ExaminationDate: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), ExaminationTime: "09:30", Status: StatusConfirmed},
		}
		got := OpenSlots(localMonday, windows, nil, booked)
		want := []string{"09:00", "10:00", "10:30"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("OpenSlots = %v, want %v", got, want)
		}
	})

	t.Run("cancelled bookings free their slot", func(t *testing.T) {
		booked := []Appointment{
			{DoctorID: "doc-1", ExaminationDate: monday, ExaminationTime: "09:30", Status: StatusCancelled},
		}
		got := OpenSlots(monday, windows, nil, booked)
		if len(got) != 4 {
			t.Errorf("OpenSlots = %v, want all four slots", got)
		}
	})

	t.Run("leave day yields nothing", func(t *testing.T) {
		leaves := []DoctorLeave{
			{DoctorID: "doc-1", StartDate: mustDate(t, "2026-08-16"), EndDate: mustDate(t, "2026-08-18")},
		}
		if got := OpenSlots(monday, windows, leaves, nil); got != nil {
			t.Errorf("OpenSlots on leave day = %v, want none", got)
		}
	})

	t.Run("wrong weekday yields nothing", func(t *testing.T) {
		tuesday := mustDate(t, "2026-08-18")
		if got := OpenSlots(tuesday, windows, nil, nil); got != nil {
			t.Errorf("OpenSlots on tuesday = %v, want none", got)
		}
	})

	t.Run("inactive window yields nothing", func(t *testing.T) {
		inactive := []DoctorAvailability{
			{DoctorID: "doc-1", DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "11:00", IsActive: false},
		}
		if got := OpenSlots(monday, inactive, nil, nil); got != nil {
			t.Errorf("OpenSlots with inactive window = %v, want none", got)
		}
	})
}
