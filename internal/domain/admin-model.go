package domain

import "gorm.io/gorm"

// AdminUser backs the back-office session. There is no self-service signup;
// accounts are seeded from configuration.
type AdminUser struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	gorm.Model
}

func (AdminUser) TableName() string {
	return "admin_users"
}
