package handlers

import (
	"hospital-portal-server/internal/models"
	"hospital-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler handles user administration and directory requests.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// GetAllUsers lists portal accounts, optionally filtered by role. Admin only.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	page, pageSize := utils.PageParams(c)

	query := h.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count users: "+err.Error())
		return
	}

	var users []models.User
	if err := query.Preload("PatientProfile").Preload("DoctorProfile").
		Order("created_at desc").
		Offset(utils.Offset(page, pageSize, total)).Limit(pageSize).
		Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitize()
	}

	utils.Success(c, "Users fetched successfully", utils.Paginate(sanitized, page, pageSize, total))
}

// GetUserByID returns one account with its profile. Admin only.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	var user models.User
	if err := h.DB.Preload("PatientProfile").Preload("DoctorProfile").
		First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// DeleteUser removes an account. The linked profile row is kept so that
// historical appointments and invoices stay resolvable. Admin only.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actingID, _ := c.Get("userID")
	if actingID == c.Param("id") {
		utils.BadRequest(c, "You cannot delete your own account")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", c.Param("id")).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		}
		return
	}

	utils.Success(c, "User deleted successfully", nil)
}

// GetDoctors returns the doctor directory used when booking an
// appointment. Any authenticated user can call it.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	query := h.DB.Model(&models.Doctor{})
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var doctors []models.Doctor
	if err := query.Order("name asc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetMyPatients lists the patients the acting doctor has seen, with an
// optional name search.
func (h *UserHandler) GetMyPatients(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	page, pageSize := utils.PageParams(c)

	query := h.DB.Model(&models.Patient{}).
		Where("id IN (?)",
			h.DB.Model(&models.Appointment{}).Distinct("patient_id").Where("doctor_id = ?", doctor.ID))
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}

	var patients []models.Patient
	if err := query.Order("name asc").
		Offset(utils.Offset(page, pageSize, total)).Limit(pageSize).
		Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", utils.Paginate(patients, page, pageSize, total))
}

// PatientDetail bundles a patient profile with its visit history and the
// current admission, if any.
type PatientDetail struct {
	Patient   models.Patient       `json:"patient"`
	Visits    []models.Appointment `json:"visits"`
	Inpatient *models.Inpatient    `json:"inpatient,omitempty"`
}

// GetPatientDetail returns one of the acting doctor's patients with the
// examinations this doctor performed on them.
func (h *UserHandler) GetPatientDetail(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var visits []models.Appointment
	if err := h.DB.Where("patient_id = ? AND doctor_id = ?", patient.ID, doctor.ID).
		Order("examination_date desc").Find(&visits).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch visit history: "+err.Error())
		return
	}
	if len(visits) == 0 {
		utils.Forbidden(c, "You have no visit history with this patient")
		return
	}

	detail := PatientDetail{Patient: patient, Visits: visits}
	var admission models.Inpatient
	err := h.DB.Preload("Room").
		Where("patient_id = ? AND discharge_date IS NULL", patient.ID).
		First(&admission).Error
	if err == nil {
		detail.Inpatient = &admission
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Failed to fetch admission: "+err.Error())
		return
	}

	utils.Success(c, "Patient detail fetched successfully", detail)
}
