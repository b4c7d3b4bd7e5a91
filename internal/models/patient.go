package models

import (
	"time"
)

// Patient holds the medical-administrative profile behind a patient account.
type Patient struct {
	BaseModel
	Name        string    `gorm:"size:100;not null" json:"name"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`
	Phone       string    `gorm:"size:20" json:"phone,omitempty"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      string    `gorm:"size:20" json:"gender"`
	BloodType   string    `gorm:"size:3" json:"bloodType,omitempty"`
	BPJSMember  bool      `gorm:"default:false" json:"bpjsMember"`

	// Relations
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
	Invoices     []Invoice     `gorm:"foreignKey:PatientID" json:"-"`
}
