package handlers

import (
	"time"

	"hospital-portal-server/internal/models"
	"hospital-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves the per-role landing page figures.
type DashboardHandler struct {
	DB *gorm.DB
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// AdminDashboard holds hospital-wide totals.
type AdminDashboard struct {
	TotalPatients       int64   `json:"totalPatients"`
	TotalDoctors        int64   `json:"totalDoctors"`
	TotalAppointments   int64   `json:"totalAppointments"`
	PendingConfirmation int64   `json:"pendingConfirmation"`
	TotalMedicines      int64   `json:"totalMedicines"`
	OpenInvoices        int64   `json:"openInvoices"`
	OutstandingAmount   float64 `json:"outstandingAmount"`
}

// GetAdminDashboard returns hospital-wide totals. Admin only.
func (h *DashboardHandler) GetAdminDashboard(c *gin.Context) {
	var dash AdminDashboard

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{h.DB.Model(&models.Patient{}), &dash.TotalPatients},
		{h.DB.Model(&models.Doctor{}), &dash.TotalDoctors},
		{h.DB.Model(&models.Appointment{}), &dash.TotalAppointments},
		{h.DB.Model(&models.Appointment{}).
			Where("confirmation_status = ? AND status = ?", models.ConfirmationPending, models.StatusPending), &dash.PendingConfirmation},
		{h.DB.Model(&models.Medicine{}), &dash.TotalMedicines},
		{h.DB.Model(&models.Invoice{}).
			Where("status IN ?", []models.InvoiceStatus{models.InvoicePending, models.InvoicePartial}), &dash.OpenInvoices},
	}
	for _, cnt := range counts {
		if err := cnt.query.Count(cnt.dest).Error; err != nil {
			utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
			return
		}
	}

	var outstanding *float64
	if err := h.DB.Model(&models.Invoice{}).
		Where("status IN ?", []models.InvoiceStatus{models.InvoicePending, models.InvoicePartial}).
		Select("SUM(amount - paid_amount)").Scan(&outstanding).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}
	if outstanding != nil {
		dash.OutstandingAmount = *outstanding
	}

	utils.Success(c, "Dashboard fetched successfully", dash)
}

// DoctorDashboard holds the acting doctor's queue and schedule counts.
type DoctorDashboard struct {
	PendingRequests   int64                `json:"pendingRequests"`
	ConfirmedUpcoming int64                `json:"confirmedUpcoming"`
	CompletedTotal    int64                `json:"completedTotal"`
	TodaySchedule     []models.Appointment `json:"todaySchedule"`
	WeekCount         int64                `json:"weekCount"`
}

// GetDoctorDashboard returns the acting doctor's queue counts plus the
// confirmed appointments for today and the running week.
func (h *DashboardHandler) GetDoctorDashboard(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var dash DoctorDashboard
	today := models.StartOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)
	weekEnd := today.AddDate(0, 0, 7)

	base := func() *gorm.DB {
		return h.DB.Model(&models.Appointment{}).Where("doctor_id = ?", doctor.ID)
	}
	if err := base().Where("confirmation_status = ? AND status = ?",
		models.ConfirmationPending, models.StatusPending).Count(&dash.PendingRequests).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}
	if err := base().Where("status = ? AND examination_date >= ?",
		models.StatusConfirmed, today).Count(&dash.ConfirmedUpcoming).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}
	if err := base().Where("status = ?", models.StatusCompleted).Count(&dash.CompletedTotal).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}
	if err := base().Where("status = ? AND examination_date >= ? AND examination_date < ?",
		models.StatusConfirmed, today, weekEnd).Count(&dash.WeekCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}
	if err := h.DB.Preload("Patient").
		Where("doctor_id = ? AND status = ? AND examination_date >= ? AND examination_date < ?",
			doctor.ID, models.StatusConfirmed, today, tomorrow).
		Order("examination_time asc").Find(&dash.TodaySchedule).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", dash)
}

// PatientDashboard holds the acting patient's record and billing figures.
type PatientDashboard struct {
	UpcomingAppointments int64               `json:"upcomingAppointments"`
	MedicalRecords       int64               `json:"medicalRecords"`
	Prescriptions        int64               `json:"prescriptions"`
	OutstandingBalance   float64             `json:"outstandingBalance"`
	NextAppointment      *models.Appointment `json:"nextAppointment,omitempty"`
	Inpatient            *models.Inpatient   `json:"inpatient,omitempty"`
}

// GetPatientDashboard returns the acting patient's counters and the next
// confirmed visit.
func (h *DashboardHandler) GetPatientDashboard(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var dash PatientDashboard
	today := models.StartOfDay(time.Now())

	if err := h.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND status IN ? AND examination_date >= ?",
			patient.ID, []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}, today).
		Count(&dash.UpcomingAppointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND status = ?", patient.ID, models.StatusCompleted).
		Count(&dash.MedicalRecords).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Prescription{}).
		Where("appointment_id IN (?)",
			h.DB.Model(&models.Appointment{}).Select("id").Where("patient_id = ?", patient.ID)).
		Count(&dash.Prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}

	var outstanding *float64
	if err := h.DB.Model(&models.Invoice{}).
		Where("patient_id = ? AND status IN ?",
			patient.ID, []models.InvoiceStatus{models.InvoicePending, models.InvoicePartial}).
		Select("SUM(amount - paid_amount)").Scan(&outstanding).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}
	if outstanding != nil {
		dash.OutstandingBalance = *outstanding
	}

	var next models.Appointment
	err := h.DB.Preload("Doctor").
		Where("patient_id = ? AND status = ? AND examination_date >= ?",
			patient.ID, models.StatusConfirmed, today).
		Order("examination_date asc, examination_time asc").
		First(&next).Error
	if err == nil {
		dash.NextAppointment = &next
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}

	var admission models.Inpatient
	err = h.DB.Preload("Room").
		Where("patient_id = ? AND discharge_date IS NULL", patient.ID).
		First(&admission).Error
	if err == nil {
		dash.Inpatient = &admission
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", dash)
}
