package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User represents a portal account. Domain data lives on the linked
// Patient/Doctor profile row, one per account depending on the role.
type User struct {
	BaseModel
	Email            string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password         string     `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FirstName        string     `gorm:"size:100" json:"firstName"`
	LastName         string     `gorm:"size:100" json:"lastName"`
	Role             Role       `gorm:"size:20;default:'patient'" json:"role"`
	PatientProfileID *string    `gorm:"size:36" json:"patientProfileId,omitempty"`
	DoctorProfileID  *string    `gorm:"size:36" json:"doctorProfileId,omitempty"`
	ResetToken       string     `gorm:"size:255" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	// Relations (not always preloaded)
	PatientProfile *Patient       `gorm:"foreignKey:PatientProfileID" json:"patientProfile,omitempty"`
	DoctorProfile  *Doctor        `gorm:"foreignKey:DoctorProfileID" json:"doctorProfile,omitempty"`
	RefreshTokens  []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Role             Role      `json:"role"`
	PatientProfileID *string   `json:"patientProfileId,omitempty"`
	DoctorProfileID  *string   `json:"doctorProfileId,omitempty"`
	PatientProfile   *Patient  `json:"patientProfile,omitempty"`
	DoctorProfile    *Doctor   `json:"doctorProfile,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// FullName joins first and last name for notification texts.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Role:             u.Role,
		PatientProfileID: u.PatientProfileID,
		DoctorProfileID:  u.DoctorProfileID,
		PatientProfile:   u.PatientProfile,
		DoctorProfile:    u.DoctorProfile,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
