package models

import (
	"errors"
	"testing"
	"time"
)

func TestInpatientIsOpen(t *testing.T) {
	admission := Inpatient{AdmissionDate: mustDate(t, "2026-08-10")}
	if !admission.IsOpen() {
		t.Error("admission without discharge date should be open")
	}

	discharged := mustDate(t, "2026-08-12")
	admission.DischargeDate = &discharged
	if admission.IsOpen() {
		t.Error("discharged admission should not be open")
	}
}

func TestInpatientNights(t *testing.T) {
	admission := Inpatient{AdmissionDate: mustDate(t, "2026-08-10")}

	tests := []struct {
		name  string
		until string
		want  int
	}{
		{"same-day discharge bills one night", "2026-08-10", 1},
		{"next day is one night", "2026-08-11", 1},
		{"three-night stay", "2026-08-13", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := admission.Nights(mustDate(t, tt.until)); got != tt.want {
				t.Errorf("Nights(%s) = %d, want %d", tt.until, got, tt.want)
			}
		})
	}
}

func TestInpatientDischarge(t *testing.T) {
	admission := Inpatient{AdmissionDate: mustDate(t, "2026-08-10")}

	if err := admission.Discharge(mustDate(t, "2026-08-09"), 500000); !errors.Is(err, ErrDischargeBeforeAdmission) {
		t.Fatalf("discharge before admission = %v, want %v", err, ErrDischargeBeforeAdmission)
	}
	if admission.DischargeDate != nil {
		t.Fatal("failed discharge must not mutate the admission")
	}

	if err := admission.Discharge(mustDate(t, "2026-08-13"), 500000); err != nil {
		t.Fatalf("Discharge() = %v", err)
	}
	if admission.IsOpen() {
		t.Error("discharged admission should be closed")
	}
	if admission.Cost != 1500000 {
		t.Errorf("cost = %v, want 1500000 (three nights)", admission.Cost)
	}

	if err := admission.Discharge(mustDate(t, "2026-08-14"), 500000); !errors.Is(err, ErrAlreadyDischarged) {
		t.Errorf("second discharge = %v, want %v", err, ErrAlreadyDischarged)
	}
}

func TestInpatientDischargeIgnoresTimeOfDay(t *testing.T) {
	admission := Inpatient{AdmissionDate: mustDate(t, "2026-08-10")}
	lateSameDay := time.Date(2026, 8, 10, 23, 45, 0, 0, time.UTC)
	if err := admission.Discharge(lateSameDay, 200000); err != nil {
		t.Fatalf("same-day discharge = %v", err)
	}
	if admission.Cost != 200000 {
		t.Errorf("cost = %v, want one night at 200000", admission.Cost)
	}
}
