package models

import (
	"time"
)

// Doctor holds the professional profile behind a doctor account.
type Doctor struct {
	BaseModel
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"size:255" json:"email,omitempty"`
	Phone         string    `gorm:"size:20" json:"phone,omitempty"`
	SIPNumber     string    `gorm:"size:50" json:"sipNumber,omitempty"` // practice permit
	STRNumber     string    `gorm:"size:50" json:"strNumber,omitempty"` // registration certificate
	DateOfBirth   time.Time `json:"dateOfBirth"`
	Gender        string    `gorm:"size:20" json:"gender"`
	Specialty     string    `gorm:"size:100" json:"specialty"`
	Position      string    `gorm:"size:100" json:"position,omitempty"`
	Unit          string    `gorm:"size:100" json:"unit,omitempty"`
	MonthlySalary float64   `gorm:"type:decimal(10,2);default:0" json:"-"`

	// Relations
	Appointments   []Appointment        `gorm:"foreignKey:DoctorID" json:"-"`
	Availabilities []DoctorAvailability `gorm:"foreignKey:DoctorID" json:"-"`
	Leaves         []DoctorLeave        `gorm:"foreignKey:DoctorID" json:"-"`
}
