package models

import (
	"time"
)

// Medicine is one catalogue entry in the hospital pharmacy.
type Medicine struct {
	BaseModel
	Name          string    `gorm:"size:100;not null" json:"name"`
	MedicineClass string    `gorm:"size:50" json:"medicineClass"`
	MedicineType  string    `gorm:"size:50" json:"medicineType"`
	ExpiryDate    time.Time `json:"expiryDate"`
	Stock         int       `gorm:"default:0" json:"stock"`
	Price         float64   `gorm:"type:decimal(10,2)" json:"price"`
}
