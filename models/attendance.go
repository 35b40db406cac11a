package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance holds one check-in/check-out row. One logical record per user
// per date; check_out stays null until the user checks out.
type Attendance struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_attendance_user_date" json:"user_id"`
	Date      time.Time  `gorm:"column:date;type:date;not null;index:idx_attendance_user_date" json:"date"`
	CheckIn   *time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut  *time.Time `gorm:"column:check_out" json:"check_out"`
	Status    string     `gorm:"column:status;not null;size:20;default:Present" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
