package repository

import (
	"gorm.io/gorm"

	"github.com/jerrry-dev/ailuminate-v2/internal/model"
)

type AdminStore interface {
	FindByID(id uint) (*model.Admin, error)
	FindByUsername(username string) (*model.Admin, error)
	FindByEmail(email string) (*model.Admin, error)
	Create(admin *model.Admin) error
	UpdateByID(adminID uint, updates map[string]interface{}) error
	CountAll() (int64, error)
}

type AdminRepository struct {
	db *gorm.DB
}

func (r *AdminRepository) FindByID(id uint) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) FindByUsername(username string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) FindByEmail(email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) Create(admin *model.Admin) error {
	return r.db.Create(admin).Error
}

func (r *AdminRepository) UpdateByID(adminID uint, updates map[string]interface{}) error {
	var admin model.Admin
	if err := r.db.First(&admin, adminID).Error; err != nil {
		return err
	}
	return r.db.Model(&admin).Updates(updates).Error
}

func (r *AdminRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Admin{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
