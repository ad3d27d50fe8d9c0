package controllers

import (
	"net/http"

	"limo-backend/models"
	"limo-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

// GetCompanySettings is public: the frontend renders the contact block.
func (sc *SettingsController) GetCompanySettings(c *gin.Context) {
	var setting models.CompanySetting
	if err := sc.DB.First(&setting).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "company settings not configured")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}

// UpdateCompanySettings is admin-gated.
func (sc *SettingsController) UpdateCompanySettings(c *gin.Context) {
	var payload models.CompanySetting
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid settings payload")
		return
	}

	var setting models.CompanySetting
	if err := sc.DB.First(&setting).Error; err != nil {
		payload.ID = 0
		if err := sc.DB.Create(&payload).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to save settings")
			return
		}
		utils.JSONSuccess(c, http.StatusOK, payload)
		return
	}

	updates := map[string]interface{}{
		"name":    payload.Name,
		"address": payload.Address,
		"phone":   payload.Phone,
		"email":   payload.Email,
		"website": payload.Website,
		"logo":    payload.Logo,
	}
	if err := sc.DB.Model(&setting).Updates(updates).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save settings")
		return
	}
	sc.DB.First(&setting)
	utils.JSONSuccess(c, http.StatusOK, setting)
}
