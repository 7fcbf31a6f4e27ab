package models

import "time"

// StudentLeave represents one row in the student_leaves table.
type StudentLeave struct {
	LeaveID            string     `db:"leave_id"`
	LeaveNumber        string     `db:"leave_number"`
	StudentReference   string     `db:"student_reference"`
	LeaveType          string     `db:"leave_type"`
	AcademicYearID     string     `db:"academic_year_id"`
	StartDate          time.Time  `db:"start_date"`
	EndDate            time.Time  `db:"end_date"`
	DurationDays       int        `db:"duration_days"`
	ExpectedReturnDate time.Time  `db:"expected_return_date"`
	ActualReturnDate   *time.Time `db:"actual_return_date"`
	Status             string     `db:"status"`
	ApprovalCount      int        `db:"approval_count"`
	RequiredApprovals  int        `db:"required_approvals"`
	AllApproved        bool       `db:"all_approved"`
	HasPenalty         bool       `db:"has_penalty"`
	Reason             string     `db:"reason"`
	Destination        string     `db:"destination"`
	ApprovedBy         *string    `db:"approved_by"`
	ApprovedAt         *time.Time `db:"approved_at"`
	AuditFields
}

// LeaveApproval represents one approver role's decision row.
type LeaveApproval struct {
	ApprovalID        string     `db:"approval_id"`
	LeaveID           string     `db:"leave_id"`
	ApproverRole      string     `db:"approver_role"`
	ApproverReference *string    `db:"approver_reference"`
	Status            string     `db:"status"`
	Notes             string     `db:"notes"`
	ReviewedAt        *time.Time `db:"reviewed_at"`
	AuditFields
}

// LeaveReport represents the 1:1 return report row for a leave.
type LeaveReport struct {
	ReportID          string     `db:"report_id"`
	LeaveID           string     `db:"leave_id"`
	ReportDate        time.Time  `db:"report_date"`
	ReportTime        string     `db:"report_time"`
	Condition         string     `db:"condition"`
	IsLate            bool       `db:"is_late"`
	LateDays          int        `db:"late_days"`
	IsVerified        bool       `db:"is_verified"`
	VerifiedBy        *string    `db:"verified_by"`
	VerifiedAt        *time.Time `db:"verified_at"`
	Notes             string     `db:"notes"`
	VerificationNotes string     `db:"verification_notes"`
	AuditFields
}

// LeavePenalty represents one disciplinary consequence row.
type LeavePenalty struct {
	PenaltyID   string    `db:"penalty_id"`
	LeaveID     string    `db:"leave_id"`
	ReportID    *string   `db:"report_id"`
	PenaltyType string    `db:"penalty_type"`
	PointValue  int       `db:"point_value"`
	Description string    `db:"description"`
	AssignedBy  string    `db:"assigned_by"`
	AssignedAt  time.Time `db:"assigned_at"`
}

// ActivityLog represents one append-only activity row. The bigserial sequence
// breaks ordering ties between entries sharing a timestamp.
type ActivityLog struct {
	Sequence       int64             `db:"sequence"`
	LeaveID        string            `db:"leave_id"`
	ActivityType   string            `db:"activity_type"`
	ActorReference string            `db:"actor_reference"`
	ActorRole      string            `db:"actor_role"`
	Description    string            `db:"description"`
	Metadata       map[string]string `db:"metadata"` // Stored as JSONB
	CreatedAt      time.Time         `db:"created_at"`
}

// Staff represents one staff directory row.
type Staff struct {
	StaffID  string `db:"staff_id"`
	Name     string `db:"name"`
	Role     string `db:"role"`
	IsActive bool   `db:"is_active"`
	AuditFields
}

// AcademicYear represents one academic year row.
type AcademicYear struct {
	AcademicYearID string    `db:"academic_year_id"`
	Name           string    `db:"name"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	IsActive       bool      `db:"is_active"`
	AuditFields
}
