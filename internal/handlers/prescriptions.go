package handlers

import (
	"time"

	"hospital-portal-server/internal/models"
	"hospital-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PrescriptionHandler handles prescription requests.
type PrescriptionHandler struct {
	DB *gorm.DB
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(db *gorm.DB) *PrescriptionHandler {
	return &PrescriptionHandler{DB: db}
}

// CreatePrescriptionRequest represents the request body for writing a prescription.
type CreatePrescriptionRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required,uuid"`
	MedicineID    string `json:"medicineId" binding:"required,uuid"`
	Dosage        string `json:"dosage" binding:"required"`
	Notes         string `json:"notes"`
}

// CreatePrescription writes a prescription against one of the acting
// doctor's completed examinations.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND doctor_id = ?", req.AppointmentID, doctor.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if appointment.Status != models.StatusCompleted {
		utils.BadRequest(c, "Prescriptions can only be written for completed examinations")
		return
	}

	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", req.MedicineID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medicine not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	prescription := models.Prescription{
		AppointmentID:    appointment.ID,
		MedicineID:       medicine.ID,
		PrescriptionDate: time.Now(),
		Dosage:           req.Dosage,
		Notes:            req.Notes,
	}
	if err := h.DB.Create(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to create prescription: "+err.Error())
		return
	}
	prescription.Medicine = medicine

	utils.Created(c, "Prescription created successfully", prescription)
}

// GetMyPrescriptions lists prescriptions for the authenticated patient.
func (h *PrescriptionHandler) GetMyPrescriptions(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var prescriptions []models.Prescription
	if err := h.DB.Preload("Medicine").
		Where("appointment_id IN (?)",
			h.DB.Model(&models.Appointment{}).Select("id").Where("patient_id = ?", patient.ID)).
		Order("prescription_date desc").Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// GetDoctorPrescriptions lists prescriptions the acting doctor has written.
func (h *PrescriptionHandler) GetDoctorPrescriptions(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var prescriptions []models.Prescription
	if err := h.DB.Preload("Medicine").
		Where("appointment_id IN (?)",
			h.DB.Model(&models.Appointment{}).Select("id").Where("doctor_id = ?", doctor.ID)).
		Order("prescription_date desc").Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}
