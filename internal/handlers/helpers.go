package handlers

import (
	"hospital-portal-server/internal/middleware"
	"hospital-portal-server/internal/models"
	"hospital-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentPatient resolves the patient profile behind the authenticated
// account. Responds with an error and returns false when there is none.
func currentPatient(c *gin.Context, db *gorm.DB) (*models.Patient, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var user models.User
	if err := db.Preload("PatientProfile").First(&user, "id = ?", userID).Error; err != nil {
		utils.Unauthorized(c, "User not found")
		return nil, false
	}
	if user.PatientProfile == nil {
		utils.Forbidden(c, "Patient profile not found for this account")
		return nil, false
	}
	return user.PatientProfile, true
}

// currentDoctor resolves the doctor profile behind the authenticated
// account. Responds with an error and returns false when there is none.
func currentDoctor(c *gin.Context, db *gorm.DB) (*models.Doctor, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var user models.User
	if err := db.Preload("DoctorProfile").First(&user, "id = ?", userID).Error; err != nil {
		utils.Unauthorized(c, "User not found")
		return nil, false
	}
	if user.DoctorProfile == nil {
		utils.Forbidden(c, "Doctor profile not found for this account")
		return nil, false
	}
	return user.DoctorProfile, true
}

// patientRecipient looks up the notification address for a patient profile.
// Returns empty when the profile has no account.
func patientRecipient(db *gorm.DB, patientID string) string {
	var user models.User
	if err := db.Where("patient_profile_id = ?", patientID).First(&user).Error; err != nil {
		return ""
	}
	return user.Email
}
