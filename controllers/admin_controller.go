package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"limo-backend/models"
	"limo-backend/services"
	"limo-backend/utils"

	"github.com/gin-gonic/gin"
)

type createAdminPayload struct {
	Email string `json:"email" binding:"required,email"`
}

type AdminController struct {
	AdminSvc *services.AdminService
	UserSvc  *services.UserService
}

func NewAdminController(admins *services.AdminService, users *services.UserService) *AdminController {
	return &AdminController{AdminSvc: admins, UserSvc: users}
}

func (ac *AdminController) GetAdmins(c *gin.Context) {
	admins, err := ac.AdminSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list admins")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admins)
}

// CreateAdmin grants admin by inserting the lookup record keyed by email.
func (ac *AdminController) CreateAdmin(c *gin.Context) {
	var payload createAdminPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "a valid email is required")
		return
	}

	admin, err := ac.AdminSvc.Create(models.Admin{Email: strings.ToLower(strings.TrimSpace(payload.Email))})
	if err != nil {
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			utils.JSONError(c, http.StatusConflict, "this email is already an admin")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create admin")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, admin)
}

func (ac *AdminController) DeleteAdmin(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid admin id")
		return
	}

	if err := ac.AdminSvc.Delete(uint(id)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete admin")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// GetUsers lists profile rows for the dashboard.
func (ac *AdminController) GetUsers(c *gin.Context) {
	users, err := ac.UserSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list users")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}
