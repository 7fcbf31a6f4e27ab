package dto

import (
	"time"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

// CreateLeaveRequest defines the data needed to register a new student leave.
// Dates use YYYY-MM-DD (validated by the registered dateonly rule).
type CreateLeaveRequest struct {
	StudentReference string `json:"studentReference" binding:"required"`
	LeaveType        string `json:"leaveType" binding:"required"`
	StartDate        string `json:"startDate" binding:"required,dateonly"`
	EndDate          string `json:"endDate" binding:"required,dateonly"`
	Reason           string `json:"reason" binding:"required"`
	Destination      string `json:"destination"`
	AcademicYearID   string `json:"academicYearID"` // Optional; resolved to the active year when empty
}

// ApproveLeaveRequest defines one role's approval of a leave.
type ApproveLeaveRequest struct {
	Role  string `json:"role" binding:"required"`
	Notes string `json:"notes"`
}

// RejectLeaveRequest defines one role's rejection of a leave.
// Rejections must carry an explanation.
type RejectLeaveRequest struct {
	Role  string `json:"role" binding:"required"`
	Notes string `json:"notes" binding:"required,min=5"`
}

// SubmitReportRequest defines the student's return report.
type SubmitReportRequest struct {
	ReportDate string `json:"reportDate" binding:"required,dateonly"`
	ReportTime string `json:"reportTime"`
	Condition  string `json:"condition" binding:"required,oneof=healthy sick other"`
	Notes      string `json:"notes"`
}

// VerifyReportRequest defines the verification of a return report.
type VerifyReportRequest struct {
	Notes string `json:"notes"`
}

// AssignPenaltyRequest defines a manually assigned disciplinary penalty.
type AssignPenaltyRequest struct {
	PenaltyType string  `json:"penaltyType" binding:"required,oneof=warning sanction points"`
	Description string  `json:"description" binding:"required"`
	PointValue  int     `json:"pointValue" binding:"gte=0"`
	ReportID    *string `json:"reportID"`
}

// LeaveResponse defines the data returned for a student leave.
type LeaveResponse struct {
	LeaveID            string     `json:"leaveID"`
	LeaveNumber        string     `json:"leaveNumber"`
	StudentReference   string     `json:"studentReference"`
	LeaveType          string     `json:"leaveType"`
	AcademicYearID     string     `json:"academicYearID"`
	StartDate          string     `json:"startDate"`
	EndDate            string     `json:"endDate"`
	DurationDays       int        `json:"durationDays"`
	ExpectedReturnDate string     `json:"expectedReturnDate"`
	ActualReturnDate   *string    `json:"actualReturnDate,omitempty"`
	Status             string     `json:"status"`
	ApprovalCount      int        `json:"approvalCount"`
	RequiredApprovals  int        `json:"requiredApprovals"`
	AllApproved        bool       `json:"allApproved"`
	HasPenalty         bool       `json:"hasPenalty"`
	Reason             string     `json:"reason"`
	Destination        string     `json:"destination"`
	ApprovedBy         *string    `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// ApprovalResponse defines one approver role's row in the approval timeline.
type ApprovalResponse struct {
	ApprovalID        string     `json:"approvalID"`
	ApproverRole      string     `json:"approverRole"`
	RoleDisplayName   string     `json:"roleDisplayName"`
	ApproverReference *string    `json:"approverReference,omitempty"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes"`
	ReviewedAt        *time.Time `json:"reviewedAt,omitempty"`
}

// ReportResponse defines the data returned for a return report.
type ReportResponse struct {
	ReportID          string     `json:"reportID"`
	LeaveID           string     `json:"leaveID"`
	ReportDate        string     `json:"reportDate"`
	ReportTime        string     `json:"reportTime"`
	Condition         string     `json:"condition"`
	IsLate            bool       `json:"isLate"`
	LateDays          int        `json:"lateDays"`
	IsVerified        bool       `json:"isVerified"`
	VerifiedBy        *string    `json:"verifiedBy,omitempty"`
	VerifiedAt        *time.Time `json:"verifiedAt,omitempty"`
	Notes             string     `json:"notes"`
	VerificationNotes string     `json:"verificationNotes,omitempty"`
}

// PenaltyResponse defines the data returned for a penalty.
type PenaltyResponse struct {
	PenaltyID   string    `json:"penaltyID"`
	LeaveID     string    `json:"leaveID"`
	ReportID    *string   `json:"reportID,omitempty"`
	PenaltyType string    `json:"penaltyType"`
	PointValue  int       `json:"pointValue"`
	Description string    `json:"description"`
	AssignedBy  string    `json:"assignedBy"`
	AssignedAt  time.Time `json:"assignedAt"`
}

// ActivityResponse defines one entry of a leave's activity history.
type ActivityResponse struct {
	Sequence       int64             `json:"sequence"`
	ActivityType   string            `json:"activityType"`
	ActorReference string            `json:"actorReference"`
	ActorRole      string            `json:"actorRole"`
	Description    string            `json:"description"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// BatchResultResponse reports how many rows a batch operation touched.
type BatchResultResponse struct {
	Updated int64 `json:"updated"`
}

const dateLayout = "2006-01-02"

// ToLeaveResponse converts a domain.StudentLeave to LeaveResponse DTO.
func ToLeaveResponse(l *domain.StudentLeave) LeaveResponse {
	resp := LeaveResponse{
		LeaveID:            l.LeaveID,
		LeaveNumber:        l.LeaveNumber,
		StudentReference:   l.StudentReference,
		LeaveType:          l.LeaveType,
		AcademicYearID:     l.AcademicYearID,
		StartDate:          l.StartDate.Format(dateLayout),
		EndDate:            l.EndDate.Format(dateLayout),
		DurationDays:       l.DurationDays,
		ExpectedReturnDate: l.ExpectedReturnDate.Format(dateLayout),
		Status:             string(l.Status),
		ApprovalCount:      l.ApprovalCount,
		RequiredApprovals:  l.RequiredApprovals,
		AllApproved:        l.AllApproved,
		HasPenalty:         l.HasPenalty,
		Reason:             l.Reason,
		Destination:        l.Destination,
		ApprovedBy:         l.ApprovedBy,
		ApprovedAt:         l.ApprovedAt,
		CreatedAt:          l.CreatedAt,
	}
	if l.ActualReturnDate != nil {
		formatted := l.ActualReturnDate.Format(dateLayout)
		resp.ActualReturnDate = &formatted
	}
	return resp
}

// ToApprovalResponses converts domain approvals to the timeline DTO.
func ToApprovalResponses(approvals []domain.LeaveApproval) []ApprovalResponse {
	responses := make([]ApprovalResponse, len(approvals))
	for i, a := range approvals {
		responses[i] = ApprovalResponse{
			ApprovalID:        a.ApprovalID,
			ApproverRole:      string(a.ApproverRole),
			RoleDisplayName:   a.ApproverRole.DisplayName(),
			ApproverReference: a.ApproverReference,
			Status:            string(a.Status),
			Notes:             a.Notes,
			ReviewedAt:        a.ReviewedAt,
		}
	}
	return responses
}

// ToReportResponse converts a domain.LeaveReport to ReportResponse DTO.
func ToReportResponse(r *domain.LeaveReport) ReportResponse {
	return ReportResponse{
		ReportID:          r.ReportID,
		LeaveID:           r.LeaveID,
		ReportDate:        r.ReportDate.Format(dateLayout),
		ReportTime:        r.ReportTime,
		Condition:         string(r.Condition),
		IsLate:            r.IsLate,
		LateDays:          r.LateDays,
		IsVerified:        r.IsVerified,
		VerifiedBy:        r.VerifiedBy,
		VerifiedAt:        r.VerifiedAt,
		Notes:             r.Notes,
		VerificationNotes: r.VerificationNotes,
	}
}

// ToPenaltyResponse converts a domain.LeavePenalty to PenaltyResponse DTO.
func ToPenaltyResponse(p *domain.LeavePenalty) PenaltyResponse {
	return PenaltyResponse{
		PenaltyID:   p.PenaltyID,
		LeaveID:     p.LeaveID,
		ReportID:    p.ReportID,
		PenaltyType: string(p.PenaltyType),
		PointValue:  p.PointValue,
		Description: p.Description,
		AssignedBy:  p.AssignedBy,
		AssignedAt:  p.AssignedAt,
	}
}

// ToPenaltyResponses converts domain penalties to DTOs.
func ToPenaltyResponses(penalties []domain.LeavePenalty) []PenaltyResponse {
	responses := make([]PenaltyResponse, len(penalties))
	for i := range penalties {
		responses[i] = ToPenaltyResponse(&penalties[i])
	}
	return responses
}

// ToActivityResponses converts domain activity entries to DTOs.
func ToActivityResponses(entries []domain.ActivityLog) []ActivityResponse {
	responses := make([]ActivityResponse, len(entries))
	for i, e := range entries {
		responses[i] = ActivityResponse{
			Sequence:       e.Sequence,
			ActivityType:   string(e.ActivityType),
			ActorReference: e.ActorReference,
			ActorRole:      e.ActorRole,
			Description:    e.Description,
			Metadata:       e.Metadata,
			CreatedAt:      e.CreatedAt,
		}
	}
	return responses
}
