package models

import (
	"errors"
	"time"
)

// Room type choices.
const (
	RoomVIP    = "VIP"
	RoomClass1 = "Kelas 1"
	RoomClass2 = "Kelas 2"
	RoomClass3 = "Kelas 3"
	RoomICU    = "ICU"
)

var (
	ErrRoomFull                 = errors.New("room has no free beds")
	ErrAlreadyAdmitted          = errors.New("patient already has an open admission")
	ErrAlreadyDischarged        = errors.New("admission is already discharged")
	ErrDischargeBeforeAdmission = errors.New("discharge date must not be before the admission date")
)

// Room is one ward room patients can be admitted to.
type Room struct {
	BaseModel
	Name      string  `gorm:"size:100;not null" json:"name"`
	RoomType  string  `gorm:"size:20" json:"roomType"`
	Capacity  int     `gorm:"default:1" json:"capacity"`
	DailyRate float64 `gorm:"type:decimal(10,2)" json:"dailyRate"`

	Admissions []Inpatient `gorm:"foreignKey:RoomID" json:"-"`
}

// Inpatient is one hospital stay. An admission is open until its discharge
// date is set; the stay cost is fixed at discharge from the room's daily
// rate.
type Inpatient struct {
	BaseModel
	PatientID     string     `gorm:"size:36;index" json:"patientId"`
	RoomID        string     `gorm:"size:36;index" json:"roomId"`
	AdmissionDate time.Time  `json:"admissionDate"`
	DischargeDate *time.Time `json:"dischargeDate,omitempty"`
	Diagnosis     string     `gorm:"type:text" json:"diagnosis"`
	Cost          float64    `gorm:"type:decimal(10,2);default:0" json:"cost"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Room    Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// IsOpen reports whether the patient is still admitted.
func (i *Inpatient) IsOpen() bool {
	return i.DischargeDate == nil
}

// Nights counts billable nights up to the given date. Same-day discharge
// still bills one night.
func (i *Inpatient) Nights(until time.Time) int {
	n := int(StartOfDay(until).Sub(StartOfDay(i.AdmissionDate)).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}

// Discharge closes the admission and fixes the stay cost from the room's
// daily rate.
func (i *Inpatient) Discharge(date time.Time, dailyRate float64) error {
	if i.DischargeDate != nil {
		return ErrAlreadyDischarged
	}
	if StartOfDay(date).Before(StartOfDay(i.AdmissionDate)) {
		return ErrDischargeBeforeAdmission
	}
	d := StartOfDay(date)
	i.DischargeDate = &d
	i.Cost = float64(i.Nights(date)) * dailyRate
	return nil
}
