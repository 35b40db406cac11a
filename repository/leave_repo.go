package repository

import (
	"context"
	"errors"

	"dayflow/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(ctx context.Context, request *models.LeaveRequest) error
	// List is the admin query: the full set across all users.
	List(ctx context.Context) ([]models.LeaveRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LeaveRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.LeaveRequest, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	// Decide updates status and admin_comment only while the request is
	// still Pending. Returns rows affected.
	Decide(ctx context.Context, id uuid.UUID, status string, comment *string) (int64, error)
}

type GormLeaveRepository struct {
	db *gorm.DB
}

func NewGormLeaveRepository(db *gorm.DB) *GormLeaveRepository {
	return &GormLeaveRepository{db: db}
}

func (r *GormLeaveRepository) Create(ctx context.Context, request *models.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *GormLeaveRepository) List(ctx context.Context) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&requests).Error
	return requests, err
}

func (r *GormLeaveRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&requests).Error
	return requests, err
}

func (r *GormLeaveRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *GormLeaveRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LeaveRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *GormLeaveRepository) Decide(ctx context.Context, id uuid.UUID, status string, comment *string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LeaveRequest{}).
		Where("id = ? AND status = ?", id, "Pending").
		Updates(map[string]interface{}{"status": status, "admin_comment": comment})
	return result.RowsAffected, result.Error
}
