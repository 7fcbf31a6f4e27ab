package domain

import "time"

// Staff is a member of the pesantren's staff directory. Only the fields the
// core engines need for attribution and role checks are modeled here.
type Staff struct {
	StaffID  string `json:"staffID"`
	Name     string `json:"name"`
	Role     string `json:"role"` // May be an ApproverRole or any other staff role
	IsActive bool   `json:"isActive"`
	AuditFields
}

// HoldsRole reports whether the staff member holds the given approver role.
func (s Staff) HoldsRole(role ApproverRole) bool {
	return s.IsActive && s.Role == string(role)
}

// AcademicYear is one school year; exactly one is active at a time.
type AcademicYear struct {
	AcademicYearID string    `json:"academicYearID"`
	Name           string    `json:"name"` // e.g., "2024/2025"
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsActive       bool      `json:"isActive"`
	AuditFields
}
