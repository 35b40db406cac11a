package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the row representation of a user account. Salary columns are
// numeric in the store but scanned as strings; the domain mapper coerces
// them and rejects non-numeric values.
type Profile struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeID       string     `gorm:"column:employee_id;uniqueIndex;not null;size:20" json:"employee_id"`
	Email            string     `gorm:"column:email;uniqueIndex;not null;size:255" json:"email"`
	FullName         string     `gorm:"column:full_name;not null;size:200" json:"full_name"`
	Role             string     `gorm:"column:role;not null;size:20" json:"role"`
	AvatarURL        string     `gorm:"column:avatar_url;size:500" json:"avatar_url"`
	Department       string     `gorm:"column:department;size:100" json:"department"`
	Designation      string     `gorm:"column:designation;size:100" json:"designation"`
	JoiningDate      *time.Time `gorm:"column:joining_date;type:date" json:"joining_date"`
	Phone            string     `gorm:"column:phone;size:50" json:"phone"`
	Address          string     `gorm:"column:address;size:500" json:"address"`
	SalaryBase       string     `gorm:"column:salary_base;type:numeric;default:0" json:"salary_base"`
	SalaryAllowance  string     `gorm:"column:salary_allowance;type:numeric;default:0" json:"salary_allowance"`
	SalaryDeductions string     `gorm:"column:salary_deductions;type:numeric;default:0" json:"salary_deductions"`
	PasswordHash     string     `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
