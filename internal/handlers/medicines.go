package handlers

import (
	"time"

	"hospital-portal-server/internal/models"
	"hospital-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MedicineHandler handles pharmacy catalogue requests.
type MedicineHandler struct {
	DB *gorm.DB
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(db *gorm.DB) *MedicineHandler {
	return &MedicineHandler{DB: db}
}

// MedicineRequest represents the request body for creating or updating
// a catalogue entry.
type MedicineRequest struct {
	Name          string  `json:"name" binding:"required"`
	MedicineClass string  `json:"medicineClass"`
	MedicineType  string  `json:"medicineType"`
	ExpiryDate    string  `json:"expiryDate" binding:"required"`
	Stock         int     `json:"stock" binding:"min=0"`
	Price         float64 `json:"price" binding:"min=0"`
}

// GetMedicines lists the catalogue, optionally filtered by a name search.
func (h *MedicineHandler) GetMedicines(c *gin.Context) {
	page, pageSize := utils.PageParams(c)

	query := h.DB.Model(&models.Medicine{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count medicines: "+err.Error())
		return
	}

	var medicines []models.Medicine
	if err := query.Order("name asc").
		Offset(utils.Offset(page, pageSize, total)).
		Limit(pageSize).
		Find(&medicines).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medicines: "+err.Error())
		return
	}

	utils.Success(c, "Medicines fetched successfully", utils.Paginate(medicines, page, pageSize, total))
}

// GetMedicineByID returns a single catalogue entry.
func (h *MedicineHandler) GetMedicineByID(c *gin.Context) {
	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medicine not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Medicine fetched successfully", medicine)
}

// CreateMedicine adds a catalogue entry. Admin only.
func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var req MedicineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		utils.BadRequest(c, "Invalid expiry date format, expected YYYY-MM-DD")
		return
	}

	medicine := models.Medicine{
		Name:          req.Name,
		MedicineClass: req.MedicineClass,
		MedicineType:  req.MedicineType,
		ExpiryDate:    expiry,
		Stock:         req.Stock,
		Price:         req.Price,
	}
	if err := h.DB.Create(&medicine).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medicine: "+err.Error())
		return
	}

	utils.Created(c, "Medicine created successfully", medicine)
}

// UpdateMedicine replaces a catalogue entry's fields. Admin only.
func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	var req MedicineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		utils.BadRequest(c, "Invalid expiry date format, expected YYYY-MM-DD")
		return
	}

	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medicine not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	medicine.Name = req.Name
	medicine.MedicineClass = req.MedicineClass
	medicine.MedicineType = req.MedicineType
	medicine.ExpiryDate = expiry
	medicine.Stock = req.Stock
	medicine.Price = req.Price

	if err := h.DB.Save(&medicine).Error; err != nil {
		utils.InternalServerError(c, "Failed to update medicine: "+err.Error())
		return
	}

	utils.Success(c, "Medicine updated successfully", medicine)
}

// DeleteMedicine removes a catalogue entry. Admin only.
func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	result := h.DB.Delete(&models.Medicine{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete medicine: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Medicine not found")
		return
	}
	utils.Success(c, "Medicine deleted successfully", nil)
}
