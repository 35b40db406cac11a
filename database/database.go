package database

import (
	"dayflow/config"
	"dayflow/domain"
	"dayflow/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := seedDefaultAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Profile{}, &models.Attendance{}, &models.LeaveRequest{})
}

func seedDefaultAdmin(db *gorm.DB, email, password string) error {
	var count int64
	db.Model(&models.Profile{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Profile{
		EmployeeID:   "EMP-00001",
		Email:        email,
		FullName:     "Administrator",
		Role:         string(domain.RoleAdmin),
		Department:   "Human Resources",
		Designation:  "HR Manager",
		PasswordHash: string(hashedPassword),
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logrus.WithField("email", email).Info("Default admin account created")
	return nil
}
