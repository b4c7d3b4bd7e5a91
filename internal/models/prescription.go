package models

import (
	"time"
)

// Prescription links a medicine and dosage to a completed examination.
type Prescription struct {
	BaseModel
	AppointmentID    string    `gorm:"size:36;index" json:"appointmentId"`
	MedicineID       string    `gorm:"size:36;index" json:"medicineId"`
	PrescriptionDate time.Time `json:"prescriptionDate"`
	Dosage           string    `gorm:"size:50" json:"dosage"`
	Notes            string    `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Medicine    Medicine    `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}
