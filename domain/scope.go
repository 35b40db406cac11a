package domain

// Role-scoped visibility. Employees only see rows they own; admins see the
// full collection. These filters run at the handler boundary before any
// data is returned, on top of the role-scoped repository queries.

func VisibleAttendance(viewer *User, records []AttendanceRecord) []AttendanceRecord {
	if viewer.IsAdmin() {
		return records
	}
	out := make([]AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r.UserID == viewer.ID {
			out = append(out, r)
		}
	}
	return out
}

func VisibleLeaves(viewer *User, requests []LeaveRequest) []LeaveRequest {
	if viewer.IsAdmin() {
		return requests
	}
	out := make([]LeaveRequest, 0, len(requests))
	for _, r := range requests {
		if r.UserID == viewer.ID {
			out = append(out, r)
		}
	}
	return out
}

// VisiblePayroll scopes the payroll table: admins get the full roster,
// employees only their own entry.
func VisiblePayroll(viewer *User, employees []User) []User {
	if viewer.IsAdmin() {
		return employees
	}
	out := make([]User, 0, 1)
	for _, e := range employees {
		if e.ID == viewer.ID {
			out = append(out, e)
		}
	}
	return out
}
