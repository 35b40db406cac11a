package repository

import (
	"context"
	"errors"
	"time"

	"dayflow/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record *models.Attendance) error
	List(ctx context.Context) ([]models.Attendance, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Attendance, error)
	// GetOpenByUserAndDate returns the record for (user, date) whose
	// check_out is still null, or nil when there is none.
	GetOpenByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Attendance, error)
	// Complete sets check_out on the (user, date) record only if check_out
	// is still null. Returns the number of rows affected so the caller can
	// tell a lost race from a success.
	Complete(ctx context.Context, userID uuid.UUID, date time.Time, checkOut time.Time) (int64, error)
}

type GormAttendanceRepository struct {
	db *gorm.DB
}

func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

func (r *GormAttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	logrus.WithFields(logrus.Fields{
		"user_id": record.UserID,
		"date":    record.Date.Format("2006-01-02"),
	}).Info("Creating attendance record")
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *GormAttendanceRepository) List(ctx context.Context) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).Order("date desc").Find(&records).Error
	return records, err
}

func (r *GormAttendanceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc").Find(&records).Error
	return records, err
}

func (r *GormAttendanceRepository) GetOpenByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Attendance, error) {
	var record models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND check_out IS NULL", userID, date).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *GormAttendanceRepository) Complete(ctx context.Context, userID uuid.UUID, date time.Time, checkOut time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("user_id = ? AND date = ? AND check_out IS NULL", userID, date).
		Update("check_out", checkOut)
	return result.RowsAffected, result.Error
}
