package config

import (
	"log"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DefaultRoles are created on first boot; signup requires an existing role
var DefaultRoles = []string{"admin", "subadmin", "employee"}

// SeedRoles creates the default roles if the table is empty
func SeedRoles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("🌱 Seeding default roles...")

	for _, name := range DefaultRoles {
		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Default roles seeded")
	return nil
}
