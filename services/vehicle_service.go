package services

import (
	"errors"
	"strings"

	"limo-backend/models"

	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("vehicle_not_found")

type VehicleService struct {
	DB *gorm.DB
}

func NewVehicleService(db *gorm.DB) *VehicleService {
	return &VehicleService{DB: db}
}

func (s *VehicleService) GetAll() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := s.DB.Order("price_per_day ASC").Find(&vehicles).Error
	return vehicles, err
}

func (s *VehicleService) GetByID(id uint) (models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Vehicle{}, ErrVehicleNotFound
		}
		return models.Vehicle{}, err
	}
	return vehicle, nil
}

func (s *VehicleService) GetByType(vehicleType string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := s.DB.Where("type = ?", strings.TrimSpace(vehicleType)).
		Order("price_per_day ASC").Find(&vehicles).Error
	return vehicles, err
}

func (s *VehicleService) Create(vehicle models.Vehicle) (models.Vehicle, error) {
	vehicle.ID = 0
	if err := s.DB.Create(&vehicle).Error; err != nil {
		return models.Vehicle{}, err
	}
	return vehicle, nil
}

func (s *VehicleService) Update(id uint, updates map[string]interface{}) (models.Vehicle, error) {
	vehicle, err := s.GetByID(id)
	if err != nil {
		return models.Vehicle{}, err
	}

	// keep identity and bookkeeping columns out of client updates
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	if err := s.DB.Model(&vehicle).Updates(updates).Error; err != nil {
		return models.Vehicle{}, err
	}
	return s.GetByID(id)
}

func (s *VehicleService) Delete(id uint) error {
	res := s.DB.Delete(&models.Vehicle{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	return nil
}
