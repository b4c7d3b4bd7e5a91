package handlers

import (
	"errors"
	"time"

	"hospital-portal-server/internal/mailer"
	"hospital-portal-server/internal/middleware"
	"hospital-portal-server/internal/models"
	"hospital-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment lifecycle requests.
type AppointmentHandler struct {
	DB       *gorm.DB
	Notifier mailer.Notifier
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, notifier mailer.Notifier) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Notifier: notifier}
}

// BookAppointmentRequest represents the request body for booking an
// appointment. The date is a plain "YYYY-MM-DD" string so the calendar day
// the patient picked cannot be shifted by time-zone conversion.
type BookAppointmentRequest struct {
	DoctorID        string `json:"doctorId" binding:"required,uuid"`
	ExaminationDate string `json:"examinationDate" binding:"required,len=10"`
	ExaminationTime string `json:"examinationTime" binding:"required,len=5"`
	Notes           string `json:"notes"`
}

// BookAppointment creates a new booking request for the authenticated
// patient. The slot-conflict check and the insert run inside one
// transaction, and the slot_key unique index backstops the check against
// concurrent bookings of the same slot.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	if _, err := time.Parse("15:04", req.ExaminationTime); err != nil {
		utils.BadRequest(c, "Examination time must be in HH:MM format")
		return
	}
	examDate, err := time.ParseInLocation("2006-01-02", req.ExaminationDate, time.Local)
	if err != nil {
		utils.BadRequest(c, "Examination date must be in YYYY-MM-DD format")
		return
	}
	if err := models.ValidateBookingDate(examDate, time.Now()); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	slotKey := models.BuildSlotKey(doctor.ID, examDate, req.ExaminationTime)
	appointment := models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		ExaminationDate: examDate,
		ExaminationTime: req.ExaminationTime,
		Notes:           req.Notes,
		Status:          models.StatusPending,
		Confirmation:    models.ConfirmationPending,
		SlotKey:         &slotKey,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Appointment{}).
			Where("slot_key = ?", slotKey).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Dr. "+doctor.Name+" is not available at that time. Please pick another slot.")
		} else {
			utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		}
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in
// user. Patients see their own, doctors theirs, admins everything.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Model(&models.Appointment{}).Preload("Patient").Preload("Doctor").
		Order("examination_date desc, examination_time desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	switch userRole {
	case models.RolePatient:
		patient, ok := currentPatient(c, h.DB)
		if !ok {
			return
		}
		query = query.Where("patient_id = ?", patient.ID)
	case models.RoleDoctor:
		doctor, ok := currentDoctor(c, h.DB)
		if !ok {
			return
		}
		query = query.Where("doctor_id = ?", doctor.ID)
	case models.RoleAdmin:
		// no filter
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	page, pageSize := utils.PageParams(c)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}

	var appointments []models.Appointment
	if err := query.Offset(utils.Offset(page, pageSize, total)).Limit(pageSize).
		Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", utils.Paginate(appointments, page, pageSize, total))
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by the involved patient, the owning doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").Preload("Prescriptions").
		First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !h.canAccess(c, &appointment) {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

func (h *AppointmentHandler) canAccess(c *gin.Context, appointment *models.Appointment) bool {
	userRole, _ := middleware.GetUserRoleFromContext(c)
	switch userRole {
	case models.RoleAdmin:
		return true
	case models.RoleDoctor:
		doctor, ok := currentDoctor(c, h.DB)
		return ok && doctor.ID == appointment.DoctorID
	case models.RolePatient:
		patient, ok := currentPatient(c, h.DB)
		return ok && patient.ID == appointment.PatientID
	}
	return false
}

// DoctorQueue lists the doctor's booking requests by confirmation state,
// with optional patient-name search and pagination.
func (h *AppointmentHandler) DoctorQueue(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	confirmation := c.DefaultQuery("confirmation", string(models.ConfirmationPending))
	query := h.DB.Model(&models.Appointment{}).Preload("Patient").
		Where("doctor_id = ? AND confirmation_status = ?", doctor.ID, confirmation).
		Order("created_at desc")

	if search := c.Query("search"); search != "" {
		query = query.Where("patient_id IN (?)",
			h.DB.Model(&models.Patient{}).Select("id").Where("name LIKE ?", "%"+search+"%"))
	}

	page, pageSize := utils.PageParams(c)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}

	var appointments []models.Appointment
	if err := query.Offset(utils.Offset(page, pageSize, total)).Limit(pageSize).
		Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", utils.Paginate(appointments, page, pageSize, total))
}

// ConfirmAppointmentRequest represents the doctor's decision on a booking.
type ConfirmAppointmentRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Reason   string `json:"reason"`
}

// ConfirmAppointment records the owning doctor's approve/reject decision
// and notifies the patient. Rejection requires a reason and frees the slot.
func (h *AppointmentHandler) ConfirmAppointment(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var req ConfirmAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Patient").
		First(&appointment, "id = ? AND doctor_id = ?", c.Param("id"), doctor.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var decisionErr error
	if req.Decision == "approved" {
		decisionErr = appointment.Approve()
	} else {
		decisionErr = appointment.Reject(req.Reason)
	}
	if decisionErr != nil {
		utils.BadRequest(c, decisionErr.Error())
		return
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	recipient := patientRecipient(h.DB, appointment.PatientID)
	if req.Decision == "approved" {
		msg := mailer.AppointmentConfirmed(&appointment.Patient, doctor, &appointment)
		h.Notifier.Send(recipient, msg.Subject, msg.Body)
		utils.Success(c, "Appointment approved. The patient has been notified.", appointment)
	} else {
		msg := mailer.AppointmentRejected(&appointment.Patient, doctor, appointment.RejectionReason)
		h.Notifier.Send(recipient, msg.Subject, msg.Body)
		utils.Success(c, "Appointment rejected. The patient has been notified.", appointment)
	}
}

// DiagnosisRequest represents the examination outcome written by the doctor.
type DiagnosisRequest struct {
	Diagnosis string `json:"diagnosis" binding:"required"`
	Treatment string `json:"treatment" binding:"required"`
}

// AddDiagnosis stores diagnosis and treatment on an approved appointment
// and completes it. Fails without mutation on the wrong owner or state.
func (h *AppointmentHandler) AddDiagnosis(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var req DiagnosisRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND doctor_id = ?", c.Param("id"), doctor.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := appointment.RecordDiagnosis(req.Diagnosis, req.Treatment); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to save diagnosis: "+err.Error())
		return
	}

	utils.Success(c, "Diagnosis and treatment plan saved successfully", appointment)
}

// CancelAppointment lets a patient cancel their own pending or confirmed
// appointment. The record stays, with status=cancelled and the slot freed.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND patient_id = ?", c.Param("id"), patient.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := appointment.Cancel(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment cancelled", appointment)
}

// SendReminder sends the upcoming-appointment reminder for one confirmed
// appointment owned by the acting doctor.
func (h *AppointmentHandler) SendReminder(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Patient").
		First(&appointment, "id = ? AND doctor_id = ?", c.Param("id"), doctor.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.Status != models.StatusConfirmed {
		utils.BadRequest(c, "Reminders can only be sent for confirmed appointments")
		return
	}

	msg := mailer.AppointmentReminder(&appointment.Patient, doctor, &appointment)
	h.Notifier.Send(patientRecipient(h.DB, appointment.PatientID), msg.Subject, msg.Body)

	utils.Success(c, "Reminder sent", nil)
}
