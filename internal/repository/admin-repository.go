package repository

import (
	"errors"
	"log"

	"github.com/remaep/registry_service/internal/domain"
	"gorm.io/gorm"
)

type AdminRepository interface {
	FindByEmail(email string) (*domain.AdminUser, error)
	Create(admin *domain.AdminUser) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) FindByEmail(email string) (*domain.AdminUser, error) {
	admin := &domain.AdminUser{}

	if err := r.db.First(admin, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		log.Printf("find admin by email error: %v", err)
		return nil, errors.New("failed to find admin by email")
	}

	return admin, nil
}

func (r *adminRepository) Create(admin *domain.AdminUser) error {
	if admin == nil {
		return errors.New("nil admin")
	}

	if err := r.db.Create(admin).Error; err != nil {
		log.Printf("create admin error: %v", err)
		return errors.New("failed to create admin")
	}
	return nil
}
