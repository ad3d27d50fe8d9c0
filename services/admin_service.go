package services

import (
	"strings"
	"time"

	"limo-backend/models"

	"gorm.io/gorm"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// IsAdmin is the authoritative authorization check: a matching admin record
// keyed by email with role "admin".
func (s *AdminService) IsAdmin(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	var count int64
	s.DB.Model(&models.Admin{}).
		Where("email = ? AND role = ?", email, "admin").
		Count(&count)
	return count > 0
}

// TouchLastLogin records a successful admin sign-in. Best-effort.
func (s *AdminService) TouchLastLogin(email string) {
	now := time.Now()
	s.DB.Model(&models.Admin{}).
		Where("email = ?", strings.TrimSpace(email)).
		Update("last_login_at", &now)
}

func (s *AdminService) GetAll() ([]models.Admin, error) {
	var admins []models.Admin
	err := s.DB.Find(&admins).Error
	return admins, err
}

func (s *AdminService) Create(admin models.Admin) (models.Admin, error) {
	admin.ID = 0
	if admin.Role == "" {
		admin.Role = "admin"
	}
	err := s.DB.Create(&admin).Error
	return admin, err
}

func (s *AdminService) Delete(id uint) error {
	return s.DB.Delete(&models.Admin{}, id).Error
}
