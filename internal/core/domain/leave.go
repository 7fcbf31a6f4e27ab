package domain

import "time"

// LeaveStatus is the lifecycle state of a student leave request.
//
//	pending -> approved -> active -> completed
//	pending -> approved -> active -> overdue -> completed
//	pending -> rejected
//	pending|approved -> cancelled
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveActive    LeaveStatus = "active"
	LeaveOverdue   LeaveStatus = "overdue"
	LeaveCompleted LeaveStatus = "completed"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// ReportableLeaveStatuses are the statuses in which a return report may still
// be submitted.
var ReportableLeaveStatuses = []LeaveStatus{LeaveApproved, LeaveActive, LeaveOverdue}

// Reportable reports whether a return report may be submitted in this status.
func (s LeaveStatus) Reportable() bool {
	for _, reportable := range ReportableLeaveStatuses {
		if s == reportable {
			return true
		}
	}
	return false
}

// RequiredApprovals is the fixed number of distinct approver roles that must
// approve before a leave becomes approved.
const RequiredApprovals = 3

// ApprovalOutcome is the leave-level result of folding one role's decision
// into the approval state. Final marks the decision that ends the workflow.
type ApprovalOutcome struct {
	Status        LeaveStatus
	ApprovalCount int
	AllApproved   bool
	Final         bool
}

// ResolveApprovalDecision folds one approver role's decision into a pending
// leave. approvedCount is the number of approved roles including this decision
// when approve is true. A single rejection is final regardless of how many
// roles approved before it; an approval is final once approvedCount reaches
// requiredApprovals, and leaves the status pending otherwise.
func ResolveApprovalDecision(approvedCount, requiredApprovals int, approve bool) ApprovalOutcome {
	outcome := ApprovalOutcome{Status: LeavePending, ApprovalCount: approvedCount}
	switch {
	case !approve:
		outcome.Status = LeaveRejected
		outcome.Final = true
	case approvedCount >= requiredApprovals:
		outcome.Status = LeaveApproved
		outcome.AllApproved = true
		outcome.Final = true
	}
	return outcome
}

// ApproverRole is one of the fixed set of staff roles that jointly authorize a leave.
type ApproverRole string

const (
	RoleSecurity        ApproverRole = "security"
	RoleDormHead        ApproverRole = "dorm_head"
	RoleHomeroomTeacher ApproverRole = "homeroom_teacher"
)

// ApproverRoles lists all roles in the order approvals are provisioned.
// The order carries no authority; any pending role may decide first.
var ApproverRoles = []ApproverRole{RoleSecurity, RoleDormHead, RoleHomeroomTeacher}

// DisplayName returns the human-readable label for the role.
func (r ApproverRole) DisplayName() string {
	switch r {
	case RoleSecurity:
		return "Keamanan"
	case RoleDormHead:
		return "Kepala Asrama"
	case RoleHomeroomTeacher:
		return "Wali Kelas"
	}
	return string(r)
}

// ParseApproverRole maps a role string to the closed enum. Unknown strings are
// rejected at the boundary, never treated as a silent no-op.
func ParseApproverRole(s string) (ApproverRole, bool) {
	switch ApproverRole(s) {
	case RoleSecurity, RoleDormHead, RoleHomeroomTeacher:
		return ApproverRole(s), true
	}
	return "", false
}

// StudentLeave tracks one leave-of-absence request through its full lifecycle.
// Leaves are never physically deleted; cancellation is a status transition.
type StudentLeave struct {
	LeaveID            string      `json:"leaveID"`     // Primary key (UUID)
	LeaveNumber        string      `json:"leaveNumber"` // Unique, date-encoded business key
	StudentReference   string      `json:"studentReference"`
	LeaveType          string      `json:"leaveType"`
	AcademicYearID     string      `json:"academicYearID"`
	StartDate          time.Time   `json:"startDate"`
	EndDate            time.Time   `json:"endDate"`
	DurationDays       int         `json:"durationDays"`       // Inclusive day span of [start,end]
	ExpectedReturnDate time.Time   `json:"expectedReturnDate"` // end + 1 day
	ActualReturnDate   *time.Time  `json:"actualReturnDate,omitempty"`
	Status             LeaveStatus `json:"status"`
	ApprovalCount      int         `json:"approvalCount"`
	RequiredApprovals  int         `json:"requiredApprovals"`
	AllApproved        bool        `json:"allApproved"`
	HasPenalty         bool        `json:"hasPenalty"`
	Reason             string      `json:"reason"`
	Destination        string      `json:"destination"`
	ApprovedBy         *string     `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time  `json:"approvedAt,omitempty"`
	AuditFields
}

// ApprovalStatus is the decision state of one approver role on one leave.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// LeaveApproval holds one approver role's decision on one leave.
// At most one terminal decision per role per leave.
type LeaveApproval struct {
	ApprovalID        string         `json:"approvalID"` // Primary key (UUID)
	LeaveID           string         `json:"leaveID"`
	ApproverRole      ApproverRole   `json:"approverRole"`
	ApproverReference *string        `json:"approverReference,omitempty"` // Nil until reviewed
	Status            ApprovalStatus `json:"status"`
	Notes             string         `json:"notes"`
	ReviewedAt        *time.Time     `json:"reviewedAt,omitempty"`
	AuditFields
}

// ReportCondition describes the student's condition on return.
type ReportCondition string

const (
	ConditionHealthy ReportCondition = "healthy"
	ConditionSick    ReportCondition = "sick"
	ConditionOther   ReportCondition = "other"
)

// ParseReportCondition maps a condition string to the closed enum.
func ParseReportCondition(s string) (ReportCondition, bool) {
	switch ReportCondition(s) {
	case ConditionHealthy, ConditionSick, ConditionOther:
		return ReportCondition(s), true
	}
	return "", false
}

// LeaveReport is the student's return report, at most one per leave.
type LeaveReport struct {
	ReportID          string          `json:"reportID"` // Primary key (UUID)
	LeaveID           string          `json:"leaveID"`
	ReportDate        time.Time       `json:"reportDate"`
	ReportTime        string          `json:"reportTime"` // HH:MM, informational
	Condition         ReportCondition `json:"condition"`
	IsLate            bool            `json:"isLate"`
	LateDays          int             `json:"lateDays"`
	IsVerified        bool            `json:"isVerified"`
	VerifiedBy        *string         `json:"verifiedBy,omitempty"`
	VerifiedAt        *time.Time      `json:"verifiedAt,omitempty"`
	Notes             string          `json:"notes"`
	VerificationNotes string          `json:"verificationNotes,omitempty"`
	AuditFields
}

// PenaltyType classifies a disciplinary consequence.
type PenaltyType string

const (
	PenaltyWarning  PenaltyType = "warning"
	PenaltySanction PenaltyType = "sanction"
	PenaltyPoints   PenaltyType = "points"
)

// ParsePenaltyType maps a penalty type string to the closed enum.
func ParsePenaltyType(s string) (PenaltyType, bool) {
	switch PenaltyType(s) {
	case PenaltyWarning, PenaltySanction, PenaltyPoints:
		return PenaltyType(s), true
	}
	return "", false
}

// LatePenaltyPointsPerDay is applied when a return report arrives after the
// expected return date.
const LatePenaltyPointsPerDay = 5

// LeavePenalty is a disciplinary consequence of lateness or violation.
type LeavePenalty struct {
	PenaltyID   string      `json:"penaltyID"` // Primary key (UUID)
	LeaveID     string      `json:"leaveID"`
	ReportID    *string     `json:"reportID,omitempty"` // Set for auto-penalties on late reports
	PenaltyType PenaltyType `json:"penaltyType"`
	PointValue  int         `json:"pointValue"` // >= 0
	Description string      `json:"description"`
	AssignedBy  string      `json:"assignedBy"`
	AssignedAt  time.Time   `json:"assignedAt"`
}

// DateOnly truncates t to midnight UTC so day arithmetic is stable across time zones.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LeaveDurationDays returns the inclusive day count of [start, end].
// start == end counts as 1 day. Callers must ensure end >= start.
func LeaveDurationDays(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours()/24) + 1
}

// ExpectedReturnDate is the day after the leave ends.
func ExpectedReturnDate(end time.Time) time.Time {
	return DateOnly(end).AddDate(0, 0, 1)
}

// LateDaysFor returns the whole days by which reportDate exceeds expectedReturn.
// A report on the expected return date itself is not late.
func LateDaysFor(reportDate, expectedReturn time.Time) int {
	days := int(DateOnly(reportDate).Sub(DateOnly(expectedReturn)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
