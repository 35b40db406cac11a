package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "HR/Admin"
	RoleEmployee Role = "Employee"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceHalfDay AttendanceStatus = "Half-day"
	AttendanceLeave   AttendanceStatus = "Leave"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

type LeaveType string

const (
	LeavePaid   LeaveType = "Paid"
	LeaveSick   LeaveType = "Sick"
	LeaveUnpaid LeaveType = "Unpaid"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch AttendanceStatus(s) {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay, AttendanceLeave:
		return AttendanceStatus(s), nil
	}
	return "", fmt.Errorf("unknown attendance status %q", s)
}

func ParseLeaveStatus(s string) (LeaveStatus, error) {
	switch LeaveStatus(s) {
	case LeavePending, LeaveApproved, LeaveRejected:
		return LeaveStatus(s), nil
	}
	return "", fmt.Errorf("unknown leave status %q", s)
}

func ParseLeaveType(s string) (LeaveType, error) {
	switch LeaveType(s) {
	case LeavePaid, LeaveSick, LeaveUnpaid:
		return LeaveType(s), nil
	}
	return "", fmt.Errorf("unknown leave type %q", s)
}

type Salary struct {
	Base       float64 `json:"base"`
	Allowance  float64 `json:"allowance"`
	Deductions float64 `json:"deductions"`
}

// Net pay may go negative when deductions are misconfigured; that is not
// guarded here.
func (s Salary) Net() float64 {
	return s.Base + s.Allowance - s.Deductions
}

type User struct {
	ID          uuid.UUID `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        Role      `json:"role"`
	Avatar      string    `json:"avatar"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	JoiningDate time.Time `json:"joining_date"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Salary      Salary    `json:"salary"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type AttendanceRecord struct {
	ID       uuid.UUID        `json:"id"`
	UserID   uuid.UUID        `json:"user_id"`
	Date     time.Time        `json:"date"`
	CheckIn  *time.Time       `json:"check_in"`
	CheckOut *time.Time       `json:"check_out"`
	Status   AttendanceStatus `json:"status"`
}

type LeaveRequest struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	UserName     string      `json:"user_name"`
	Type         LeaveType   `json:"type"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	Remarks      string      `json:"remarks"`
	Status       LeaveStatus `json:"status"`
	AdminComment string      `json:"admin_comment,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// DateOnly truncates a timestamp to its calendar day in UTC. All date
// columns are stored at midnight UTC so same-day matching is an equality
// check.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
