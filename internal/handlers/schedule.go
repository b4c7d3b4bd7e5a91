package handlers

import (
	"time"

	"hospital-portal-server/internal/models"
	"hospital-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ScheduleHandler manages doctor working windows, leave and slot offers.
type ScheduleHandler struct {
	DB *gorm.DB
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{DB: db}
}

// AvailabilityRequest represents one weekly working window.
type AvailabilityRequest struct {
	DayOfWeek int    `json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime string `json:"startTime" binding:"required,len=5"`
	EndTime   string `json:"endTime" binding:"required,len=5"`
	IsActive  *bool  `json:"isActive"`
}

// CreateAvailability adds a weekly working window for the acting doctor.
func (h *ScheduleHandler) CreateAvailability(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var req AvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	availability := models.DoctorAvailability{
		DoctorID:  doctor.ID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	if req.IsActive != nil {
		availability.IsActive = *req.IsActive
	}
	if err := availability.Validate(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Create(&availability).Error; err != nil {
		utils.InternalServerError(c, "Failed to create availability: "+err.Error())
		return
	}

	utils.Created(c, "Availability created successfully", availability)
}

// GetMySchedule returns the acting doctor's working windows and leaves.
func (h *ScheduleHandler) GetMySchedule(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var availabilities []models.DoctorAvailability
	if err := h.DB.Where("doctor_id = ?", doctor.ID).
		Order("day_of_week asc, start_time asc").Find(&availabilities).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch availability: "+err.Error())
		return
	}

	var leaves []models.DoctorLeave
	if err := h.DB.Where("doctor_id = ?", doctor.ID).
		Order("start_date desc").Find(&leaves).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch leave: "+err.Error())
		return
	}

	utils.Success(c, "Schedule fetched successfully", gin.H{
		"availabilities": availabilities,
		"leaves":         leaves,
	})
}

// UpdateAvailability updates one of the acting doctor's windows.
func (h *ScheduleHandler) UpdateAvailability(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var availability models.DoctorAvailability
	if err := h.DB.First(&availability, "id = ? AND doctor_id = ?", c.Param("id"), doctor.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Availability not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req AvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	availability.DayOfWeek = req.DayOfWeek
	availability.StartTime = req.StartTime
	availability.EndTime = req.EndTime
	if req.IsActive != nil {
		availability.IsActive = *req.IsActive
	}
	if err := availability.Validate(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Save(&availability).Error; err != nil {
		utils.InternalServerError(c, "Failed to update availability: "+err.Error())
		return
	}

	utils.Success(c, "Availability updated successfully", availability)
}

// DeleteAvailability removes one of the acting doctor's windows.
func (h *ScheduleHandler) DeleteAvailability(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	result := h.DB.Delete(&models.DoctorAvailability{}, "id = ? AND doctor_id = ?", c.Param("id"), doctor.ID)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete availability: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Availability not found")
		return
	}

	utils.Success(c, "Availability deleted successfully", nil)
}

// LeaveRequest represents a leave date range.
type LeaveRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	Reason    string    `json:"reason"`
}

// CreateLeave registers a leave range for the acting doctor.
func (h *ScheduleHandler) CreateLeave(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var req LeaveRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	leave := models.DoctorLeave{
		DoctorID:  doctor.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	}
	if err := leave.Validate(time.Now()); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Create(&leave).Error; err != nil {
		utils.InternalServerError(c, "Failed to create leave: "+err.Error())
		return
	}

	utils.Created(c, "Leave created successfully", leave)
}

// DeleteLeave removes one of the acting doctor's leave ranges.
func (h *ScheduleHandler) DeleteLeave(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	result := h.DB.Delete(&models.DoctorLeave{}, "id = ? AND doctor_id = ?", c.Param("id"), doctor.ID)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete leave: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Leave not found")
		return
	}

	utils.Success(c, "Leave deleted successfully", nil)
}

// GetOpenSlots offers the bookable times for a doctor on a given date:
// weekly windows minus leave days minus slots already held by an active
// appointment. Used by patients when booking.
func (h *ScheduleHandler) GetOpenSlots(c *gin.Context) {
	doctorID := c.Param("id")
	// Parsed in the server location so the equality below matches the
	// local-midnight dates the booking handler stores.
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		utils.BadRequest(c, "date query parameter must be in YYYY-MM-DD format")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var windows []models.DoctorAvailability
	if err := h.DB.Where("doctor_id = ?", doctor.ID).Find(&windows).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch availability: "+err.Error())
		return
	}
	var leaves []models.DoctorLeave
	if err := h.DB.Where("doctor_id = ?", doctor.ID).Find(&leaves).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch leave: "+err.Error())
		return
	}
	var booked []models.Appointment
	if err := h.DB.Where("doctor_id = ? AND examination_date = ?", doctor.ID, date).
		Find(&booked).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	slots := models.OpenSlots(date, windows, leaves, booked)
	utils.Success(c, "Open slots fetched successfully", gin.H{
		"doctorId": doctor.ID,
		"date":     date.Format("2006-01-02"),
		"slots":    slots,
	})
}
