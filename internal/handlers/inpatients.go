package handlers

import (
	"errors"
	"time"

	"hospital-portal-server/internal/models"
	"hospital-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InpatientHandler manages ward rooms and hospital admissions.
type InpatientHandler struct {
	DB *gorm.DB
}

// NewInpatientHandler creates a new InpatientHandler.
func NewInpatientHandler(db *gorm.DB) *InpatientHandler {
	return &InpatientHandler{DB: db}
}

// RoomRequest represents the request body for creating a ward room.
type RoomRequest struct {
	Name      string  `json:"name" binding:"required"`
	RoomType  string  `json:"roomType" binding:"required,oneof=VIP 'Kelas 1' 'Kelas 2' 'Kelas 3' ICU"`
	Capacity  int     `json:"capacity" binding:"required,min=1"`
	DailyRate float64 `json:"dailyRate" binding:"required,gt=0"`
}

// CreateRoom adds a ward room. Admin only.
func (h *InpatientHandler) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	room := models.Room{
		Name:      req.Name,
		RoomType:  req.RoomType,
		Capacity:  req.Capacity,
		DailyRate: req.DailyRate,
	}
	if err := h.DB.Create(&room).Error; err != nil {
		utils.InternalServerError(c, "Failed to create room: "+err.Error())
		return
	}

	utils.Created(c, "Room created successfully", room)
}

// RoomOccupancy pairs a room with its current open-admission count.
type RoomOccupancy struct {
	Room     models.Room `json:"room"`
	Occupied int64       `json:"occupied"`
	FreeBeds int64       `json:"freeBeds"`
}

// GetRooms lists ward rooms with their current occupancy. Admin only.
func (h *InpatientHandler) GetRooms(c *gin.Context) {
	var rooms []models.Room
	if err := h.DB.Order("name asc").Find(&rooms).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch rooms: "+err.Error())
		return
	}

	result := make([]RoomOccupancy, 0, len(rooms))
	for _, room := range rooms {
		var occupied int64
		if err := h.DB.Model(&models.Inpatient{}).
			Where("room_id = ? AND discharge_date IS NULL", room.ID).
			Count(&occupied).Error; err != nil {
			utils.InternalServerError(c, "Failed to count occupancy: "+err.Error())
			return
		}
		result = append(result, RoomOccupancy{
			Room:     room,
			Occupied: occupied,
			FreeBeds: int64(room.Capacity) - occupied,
		})
	}

	utils.Success(c, "Rooms fetched successfully", result)
}

// AdmitRequest represents the request body for admitting a patient.
type AdmitRequest struct {
	PatientID string `json:"patientId" binding:"required,uuid"`
	RoomID    string `json:"roomId" binding:"required,uuid"`
	Diagnosis string `json:"diagnosis" binding:"required"`
}

// AdmitPatient opens an admission for a patient in a ward room. A patient
// can hold at most one open admission, and the room must have a free bed;
// both are rechecked inside the transaction.
func (h *InpatientHandler) AdmitPatient(c *gin.Context) {
	var req AdmitRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	var room models.Room
	if err := h.DB.First(&room, "id = ?", req.RoomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Room not found")
		} else {
			utils.InternalServerError(c, "Database error verifying room: "+err.Error())
		}
		return
	}

	admission := models.Inpatient{
		PatientID:     patient.ID,
		RoomID:        room.ID,
		AdmissionDate: models.StartOfDay(time.Now()),
		Diagnosis:     req.Diagnosis,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&models.Inpatient{}).
			Where("patient_id = ? AND discharge_date IS NULL", patient.ID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return models.ErrAlreadyAdmitted
		}
		var occupied int64
		if err := tx.Model(&models.Inpatient{}).
			Where("room_id = ? AND discharge_date IS NULL", room.ID).
			Count(&occupied).Error; err != nil {
			return err
		}
		if occupied >= int64(room.Capacity) {
			return models.ErrRoomFull
		}
		return tx.Create(&admission).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyAdmitted), errors.Is(err, models.ErrRoomFull):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalServerError(c, "Failed to admit patient: "+err.Error())
		}
		return
	}
	admission.Patient = patient
	admission.Room = room

	utils.Created(c, "Patient admitted successfully", admission)
}

// GetAdmissions lists admissions, open ones by default. Admin only.
func (h *InpatientHandler) GetAdmissions(c *gin.Context) {
	query := h.DB.Preload("Patient").Preload("Room").
		Order("admission_date desc")
	if c.DefaultQuery("state", "open") == "open" {
		query = query.Where("discharge_date IS NULL")
	}

	var admissions []models.Inpatient
	if err := query.Find(&admissions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch admissions: "+err.Error())
		return
	}

	utils.Success(c, "Admissions fetched successfully", admissions)
}

// DischargePatient closes an admission, fixing the stay cost from the
// room's daily rate. Admin only.
func (h *InpatientHandler) DischargePatient(c *gin.Context) {
	var admission models.Inpatient
	if err := h.DB.Preload("Room").First(&admission, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Admission not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := admission.Discharge(time.Now(), admission.Room.DailyRate); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Omit("Patient", "Room").Save(&admission).Error; err != nil {
		utils.InternalServerError(c, "Failed to discharge patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient discharged successfully", admission)
}
