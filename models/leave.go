package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	UserName     string    `gorm:"column:user_name;not null;size:200" json:"user_name"`
	Type         string    `gorm:"column:type;not null;size:20" json:"type"`
	StartDate    time.Time `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate      time.Time `gorm:"column:end_date;type:date;not null" json:"end_date"`
	Remarks      string    `gorm:"column:remarks;type:text" json:"remarks"`
	Status       string    `gorm:"column:status;not null;size:20;default:Pending;index" json:"status"`
	AdminComment *string   `gorm:"column:admin_comment;type:text" json:"admin_comment"`
	CreatedAt    time.Time `json:"created_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
