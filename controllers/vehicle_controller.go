package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"limo-backend/models"
	"limo-backend/services"
	"limo-backend/utils"

	"github.com/gin-gonic/gin"
)

type VehicleController struct {
	VehicleSvc *services.VehicleService
}

func NewVehicleController(svc *services.VehicleService) *VehicleController {
	return &VehicleController{VehicleSvc: svc}
}

// ----------------------------------------------------
// 1. List vehicles (GET /api/vehicles)
// ----------------------------------------------------

func (vc *VehicleController) GetVehicles(c *gin.Context) {
	vehicles, err := vc.VehicleSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list vehicles")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, vehicles)
}

// ----------------------------------------------------
// 2. Get by id / by type
// ----------------------------------------------------

func (vc *VehicleController) GetVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	vehicle, err := vc.VehicleSvc.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			utils.JSONError(c, http.StatusNotFound, "vehicle not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load vehicle")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, vehicle)
}

func (vc *VehicleController) GetVehiclesByType(c *gin.Context) {
	vehicleType := strings.TrimSpace(c.Param("type"))
	if vehicleType == "" {
		utils.JSONError(c, http.StatusBadRequest, "vehicle type is required")
		return
	}
	vehicles, err := vc.VehicleSvc.GetByType(vehicleType)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list vehicles")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, vehicles)
}

// ----------------------------------------------------
// 3. Admin-gated writes
// ----------------------------------------------------

func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid vehicle payload")
		return
	}

	vehicle.Name = strings.TrimSpace(vehicle.Name)
	if vehicle.Name == "" || strings.TrimSpace(vehicle.Type) == "" {
		utils.JSONError(c, http.StatusBadRequest, "vehicle name and type are required")
		return
	}

	created, err := vc.VehicleSvc.Create(vehicle)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create vehicle")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid update payload")
		return
	}

	vehicle, err := vc.VehicleSvc.Update(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			utils.JSONError(c, http.StatusNotFound, "vehicle not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update vehicle")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, vehicle)
}

func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := vc.VehicleSvc.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			utils.JSONError(c, http.StatusNotFound, "vehicle not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete vehicle")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
