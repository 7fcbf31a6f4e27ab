package mapping

import (
	"github.com/barengs/smpt-sub000/internal/core/domain"
	"github.com/barengs/smpt-sub000/internal/models"
)

// ToModelStudentLeave converts a domain StudentLeave to a model StudentLeave
func ToModelStudentLeave(d domain.StudentLeave) models.StudentLeave {
	return models.StudentLeave{
		LeaveID:            d.LeaveID,
		LeaveNumber:        d.LeaveNumber,
		StudentReference:   d.StudentReference,
		LeaveType:          d.LeaveType,
		AcademicYearID:     d.AcademicYearID,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		DurationDays:       d.DurationDays,
		ExpectedReturnDate: d.ExpectedReturnDate,
		ActualReturnDate:   d.ActualReturnDate,
		Status:             string(d.Status),
		ApprovalCount:      d.ApprovalCount,
		RequiredApprovals:  d.RequiredApprovals,
		AllApproved:        d.AllApproved,
		HasPenalty:         d.HasPenalty,
		Reason:             d.Reason,
		Destination:        d.Destination,
		ApprovedBy:         d.ApprovedBy,
		ApprovedAt:         d.ApprovedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStudentLeave converts a model StudentLeave to a domain StudentLeave
func ToDomainStudentLeave(m models.StudentLeave) domain.StudentLeave {
	return domain.StudentLeave{
		LeaveID:            m.LeaveID,
		LeaveNumber:        m.LeaveNumber,
		StudentReference:   m.StudentReference,
		LeaveType:          m.LeaveType,
		AcademicYearID:     m.AcademicYearID,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		DurationDays:       m.DurationDays,
		ExpectedReturnDate: m.ExpectedReturnDate,
		ActualReturnDate:   m.ActualReturnDate,
		Status:             domain.LeaveStatus(m.Status),
		ApprovalCount:      m.ApprovalCount,
		RequiredApprovals:  m.RequiredApprovals,
		AllApproved:        m.AllApproved,
		HasPenalty:         m.HasPenalty,
		Reason:             m.Reason,
		Destination:        m.Destination,
		ApprovedBy:         m.ApprovedBy,
		ApprovedAt:         m.ApprovedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLeaveApproval converts a domain LeaveApproval to a model LeaveApproval
func ToModelLeaveApproval(d domain.LeaveApproval) models.LeaveApproval {
	return models.LeaveApproval{
		ApprovalID:        d.ApprovalID,
		LeaveID:           d.LeaveID,
		ApproverRole:      string(d.ApproverRole),
		ApproverReference: d.ApproverReference,
		Status:            string(d.Status),
		Notes:             d.Notes,
		ReviewedAt:        d.ReviewedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLeaveApproval converts a model LeaveApproval to a domain LeaveApproval
func ToDomainLeaveApproval(m models.LeaveApproval) domain.LeaveApproval {
	return domain.LeaveApproval{
		ApprovalID:        m.ApprovalID,
		LeaveID:           m.LeaveID,
		ApproverRole:      domain.ApproverRole(m.ApproverRole),
		ApproverReference: m.ApproverReference,
		Status:            domain.ApprovalStatus(m.Status),
		Notes:             m.Notes,
		ReviewedAt:        m.ReviewedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLeaveReport converts a domain LeaveReport to a model LeaveReport
func ToModelLeaveReport(d domain.LeaveReport) models.LeaveReport {
	return models.LeaveReport{
		ReportID:    d.ReportID,
		LeaveID:     d.LeaveID,
		ReportDate:  d.ReportDate,
		ReportTime:  d.ReportTime,
		Condition:   string(d.Condition),
		IsLate:      d.IsLate,
		LateDays:    d.LateDays,
		IsVerified:  d.IsVerified,
		VerifiedBy:        d.VerifiedBy,
		VerifiedAt:        d.VerifiedAt,
		Notes:             d.Notes,
		VerificationNotes: d.VerificationNotes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLeaveReport converts a model LeaveReport to a domain LeaveReport
func ToDomainLeaveReport(m models.LeaveReport) domain.LeaveReport {
	return domain.LeaveReport{
		ReportID:    m.ReportID,
		LeaveID:     m.LeaveID,
		ReportDate:  m.ReportDate,
		ReportTime:  m.ReportTime,
		Condition:   domain.ReportCondition(m.Condition),
		IsLate:      m.IsLate,
		LateDays:    m.LateDays,
		IsVerified:  m.IsVerified,
		VerifiedBy:        m.VerifiedBy,
		VerifiedAt:        m.VerifiedAt,
		Notes:             m.Notes,
		VerificationNotes: m.VerificationNotes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLeavePenalty converts a domain LeavePenalty to a model LeavePenalty
func ToModelLeavePenalty(d domain.LeavePenalty) models.LeavePenalty {
	return models.LeavePenalty{
		PenaltyID:   d.PenaltyID,
		LeaveID:     d.LeaveID,
		ReportID:    d.ReportID,
		PenaltyType: string(d.PenaltyType),
		PointValue:  d.PointValue,
		Description: d.Description,
		AssignedBy:  d.AssignedBy,
		AssignedAt:  d.AssignedAt,
	}
}

// ToDomainLeavePenalty converts a model LeavePenalty to a domain LeavePenalty
func ToDomainLeavePenalty(m models.LeavePenalty) domain.LeavePenalty {
	return domain.LeavePenalty{
		PenaltyID:   m.PenaltyID,
		LeaveID:     m.LeaveID,
		ReportID:    m.ReportID,
		PenaltyType: domain.PenaltyType(m.PenaltyType),
		PointValue:  m.PointValue,
		Description: m.Description,
		AssignedBy:  m.AssignedBy,
		AssignedAt:  m.AssignedAt,
	}
}

// ToModelActivityLog converts a domain ActivityLog to a model ActivityLog
func ToModelActivityLog(d domain.ActivityLog) models.ActivityLog {
	return models.ActivityLog{
		Sequence:       d.Sequence,
		LeaveID:        d.LeaveID,
		ActivityType:   string(d.ActivityType),
		ActorReference: d.ActorReference,
		ActorRole:      d.ActorRole,
		Description:    d.Description,
		Metadata:       d.Metadata,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainActivityLog converts a model ActivityLog to a domain ActivityLog
func ToDomainActivityLog(m models.ActivityLog) domain.ActivityLog {
	return domain.ActivityLog{
		Sequence:       m.Sequence,
		LeaveID:        m.LeaveID,
		ActivityType:   domain.ActivityType(m.ActivityType),
		ActorReference: m.ActorReference,
		ActorRole:      m.ActorRole,
		Description:    m.Description,
		Metadata:       m.Metadata,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainStaff converts a model Staff to a domain Staff
func ToDomainStaff(m models.Staff) domain.Staff {
	return domain.Staff{
		StaffID:     m.StaffID,
		Name:        m.Name,
		Role:        m.Role,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAcademicYear converts a model AcademicYear to a domain AcademicYear
func ToDomainAcademicYear(m models.AcademicYear) domain.AcademicYear {
	return domain.AcademicYear{
		AcademicYearID: m.AcademicYearID,
		Name:           m.Name,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
