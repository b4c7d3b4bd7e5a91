package models

import (
	"errors"
	"time"
)

// SlotInterval is the spacing between offered booking times.
const SlotInterval = 30 * time.Minute

var (
	ErrWindowInverted = errors.New("end time must be after start time")
	ErrLeaveInverted  = errors.New("leave end date must not be before its start date")
	ErrLeaveInPast    = errors.New("leave start date must not be in the past")
)

// DoctorAvailability is one weekly recurring working window for a doctor.
type DoctorAvailability struct {
	BaseModel
	DoctorID  string `gorm:"size:36;index" json:"doctorId"`
	DayOfWeek int    `json:"dayOfWeek"`               // time.Weekday numbering, Sunday = 0
	StartTime string `gorm:"size:5" json:"startTime"` // "15:04"
	EndTime   string `gorm:"size:5" json:"endTime"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

// Validate checks the window boundaries.
func (a *DoctorAvailability) Validate() error {
	start, err := time.Parse("15:04", a.StartTime)
	if err != nil {
		return err
	}
	end, err := time.Parse("15:04", a.EndTime)
	if err != nil {
		return err
	}
	if !end.After(start) {
		return ErrWindowInverted
	}
	return nil
}

// DoctorLeave is a date range during which a doctor takes no appointments.
type DoctorLeave struct {
	BaseModel
	DoctorID  string    `gorm:"size:36;index" json:"doctorId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    string    `gorm:"type:text" json:"reason,omitempty"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

// Validate checks the leave range against today.
func (l *DoctorLeave) Validate(today time.Time) error {
	if l.EndDate.Before(l.StartDate) {
		return ErrLeaveInverted
	}
	if StartOfDay(l.StartDate).Before(StartOfDay(today)) {
		return ErrLeaveInPast
	}
	return nil
}

// Covers reports whether the leave range includes the given date.
func (l *DoctorLeave) Covers(date time.Time) bool {
	d := StartOfDay(date)
	return !d.Before(StartOfDay(l.StartDate)) && !d.After(StartOfDay(l.EndDate))
}

// OpenSlots computes the bookable times for one doctor on one date: the
// active windows for that weekday, cut into SlotInterval steps, minus any
// times already held by an active appointment. Leave days yield nothing.
// This is a read-time filter only; booking itself revalidates the slot.
func OpenSlots(date time.Time, windows []DoctorAvailability, leaves []DoctorLeave, booked []Appointment) []string {
	for _, l := range leaves {
		if l.Covers(date) {
			return nil
		}
	}

	taken := make(map[string]bool, len(booked))
	for _, appt := range booked {
		if appt.IsActive() && StartOfDay(appt.ExaminationDate.In(date.Location())).Equal(StartOfDay(date)) {
			taken[appt.ExaminationTime] = true
		}
	}

	var slots []string
	for _, w := range windows {
		if !w.IsActive || w.DayOfWeek != int(date.Weekday()) {
			continue
		}
		start, err := time.Parse("15:04", w.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse("15:04", w.EndTime)
		if err != nil {
			continue
		}
		for t := start; t.Before(end); t = t.Add(SlotInterval) {
			slot := t.Format("15:04")
			if !taken[slot] {
				slots = append(slots, slot)
			}
		}
	}
	return slots
}
