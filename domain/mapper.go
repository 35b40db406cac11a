package domain

import (
	"fmt"
	"strconv"
	"time"

	"dayflow/models"
)

// MappingError reports a store row that could not be converted into a
// domain entity. The caller skips the affected record, not the collection.
type MappingError struct {
	Entity string
	Field  string
	Value  string
	Reason error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping %s.%s: invalid value %q: %v", e.Entity, e.Field, e.Value, e.Reason)
}

func (e *MappingError) Unwrap() error {
	return e.Reason
}

// parseAmount coerces a numeric column scanned as a string. The store may
// deliver numerics as strings; a non-numeric value is an error, never a
// silent zero. An empty string means the column was null.
func parseAmount(entity, field, value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &MappingError{Entity: entity, Field: field, Value: value, Reason: err}
	}
	return n, nil
}

func formatAmount(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func UserFromRow(row *models.Profile) (*User, error) {
	role, err := ParseRole(row.Role)
	if err != nil {
		return nil, &MappingError{Entity: "profiles", Field: "role", Value: row.Role, Reason: err}
	}

	base, err := parseAmount("profiles", "salary_base", row.SalaryBase)
	if err != nil {
		return nil, err
	}
	allowance, err := parseAmount("profiles", "salary_allowance", row.SalaryAllowance)
	if err != nil {
		return nil, err
	}
	deductions, err := parseAmount("profiles", "salary_deductions", row.SalaryDeductions)
	if err != nil {
		return nil, err
	}

	var joining time.Time
	if row.JoiningDate != nil {
		joining = *row.JoiningDate
	}

	return &User{
		ID:          row.ID,
		EmployeeID:  row.EmployeeID,
		Email:       row.Email,
		FullName:    row.FullName,
		Role:        role,
		Avatar:      row.AvatarURL,
		Department:  row.Department,
		Designation: row.Designation,
		JoiningDate: joining,
		Phone:       row.Phone,
		Address:     row.Address,
		Salary:      Salary{Base: base, Allowance: allowance, Deductions: deductions},
	}, nil
}

// UserToRow builds the row for an insert. Server-generated fields (id,
// timestamps) and credentials are left unset.
func UserToRow(u *User) *models.Profile {
	row := &models.Profile{
		EmployeeID:       u.EmployeeID,
		Email:            u.Email,
		FullName:         u.FullName,
		Role:             string(u.Role),
		AvatarURL:        u.Avatar,
		Department:       u.Department,
		Designation:      u.Designation,
		Phone:            u.Phone,
		Address:          u.Address,
		SalaryBase:       formatAmount(u.Salary.Base),
		SalaryAllowance:  formatAmount(u.Salary.Allowance),
		SalaryDeductions: formatAmount(u.Salary.Deductions),
	}
	if !u.JoiningDate.IsZero() {
		d := u.JoiningDate
		row.JoiningDate = &d
	}
	return row
}

func AttendanceFromRow(row *models.Attendance) (*AttendanceRecord, error) {
	status, err := ParseAttendanceStatus(row.Status)
	if err != nil {
		return nil, &MappingError{Entity: "attendance", Field: "status", Value: row.Status, Reason: err}
	}
	return &AttendanceRecord{
		ID:       row.ID,
		UserID:   row.UserID,
		Date:     row.Date,
		CheckIn:  row.CheckIn,
		CheckOut: row.CheckOut,
		Status:   status,
	}, nil
}

func AttendanceToRow(r *AttendanceRecord) *models.Attendance {
	return &models.Attendance{
		UserID:   r.UserID,
		Date:     r.Date,
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		Status:   string(r.Status),
	}
}

func LeaveFromRow(row *models.LeaveRequest) (*LeaveRequest, error) {
	typ, err := ParseLeaveType(row.Type)
	if err != nil {
		return nil, &MappingError{Entity: "leave_requests", Field: "type", Value: row.Type, Reason: err}
	}
	status, err := ParseLeaveStatus(row.Status)
	if err != nil {
		return nil, &MappingError{Entity: "leave_requests", Field: "status", Value: row.Status, Reason: err}
	}

	var comment string
	if row.AdminComment != nil {
		comment = *row.AdminComment
	}

	return &LeaveRequest{
		ID:           row.ID,
		UserID:       row.UserID,
		UserName:     row.UserName,
		Type:         typ,
		StartDate:    row.StartDate,
		EndDate:      row.EndDate,
		Remarks:      row.Remarks,
		Status:       status,
		AdminComment: comment,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func LeaveToRow(r *LeaveRequest) *models.LeaveRequest {
	row := &models.LeaveRequest{
		UserID:    r.UserID,
		UserName:  r.UserName,
		Type:      string(r.Type),
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Remarks:   r.Remarks,
		Status:    string(r.Status),
	}
	if r.AdminComment != "" {
		c := r.AdminComment
		row.AdminComment = &c
	}
	return row
}
