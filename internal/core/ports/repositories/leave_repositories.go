package repositories

import (
	"context"
	"time"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

// ApprovalDecision carries everything the repository needs to record one
// approver role's decision atomically. RoleActivity is always appended;
// FinalActivity is appended only when this decision completes the workflow
// (quorum reached on approve, immediately on reject).
type ApprovalDecision struct {
	LeaveID       string
	Role          domain.ApproverRole
	Approve       bool
	ReviewerID    string
	Notes         string
	ReviewedAt    time.Time
	RoleActivity  domain.ActivityLog
	FinalActivity domain.ActivityLog
}

// ReportSubmission carries the return report plus the leave-row updates and
// optional auto-penalty that must commit with it.
type ReportSubmission struct {
	Report      domain.LeaveReport
	NewStatus   domain.LeaveStatus
	Penalty     *domain.LeavePenalty
	Activity    domain.ActivityLog
	SubmittedBy string
}

// LeaveReader defines read operations for leave data
type LeaveReader interface {
	// FindLeaveByID retrieves a leave by its primary key.
	FindLeaveByID(ctx context.Context, leaveID string) (*domain.StudentLeave, error)

	// FindLeaveByNumber retrieves a leave by its unique business number.
	// Used to probe for leave-number collisions.
	FindLeaveByNumber(ctx context.Context, leaveNumber string) (*domain.StudentLeave, error)

	// FindApprovalsByLeaveID retrieves all approval rows for a leave,
	// ordered by creation.
	FindApprovalsByLeaveID(ctx context.Context, leaveID string) ([]domain.LeaveApproval, error)

	// FindReportByLeaveID retrieves the 1:1 return report, if any.
	// Returns apperrors.ErrNotFound when none exists.
	FindReportByLeaveID(ctx context.Context, leaveID string) (*domain.LeaveReport, error)

	// FindPenaltiesByLeaveID retrieves all penalties for a leave.
	FindPenaltiesByLeaveID(ctx context.Context, leaveID string) ([]domain.LeavePenalty, error)
}

// LeaveWriter defines write operations for leave data. Each method is one
// atomic unit covering every row it touches.
type LeaveWriter interface {
	// SaveLeave persists a new leave with its provisioned approval rows and
	// the initial activity entry. Returns apperrors.ErrDuplicate on a
	// leave-number collision.
	SaveLeave(ctx context.Context, leave domain.StudentLeave, approvals []domain.LeaveApproval, activity domain.ActivityLog) error

	// RecordApprovalDecision applies one role's decision. The leave row is
	// locked FOR UPDATE, the approval row is updated only if still pending,
	// and the approval count is recomputed from the approvals table under the
	// lock, so concurrent role decisions cannot lose counts and only one call
	// observes the quorum transition. Returns the updated leave.
	// Reports apperrors.ErrConflict when the leave is not pending or the role
	// has already decided.
	RecordApprovalDecision(ctx context.Context, decision ApprovalDecision) (*domain.StudentLeave, error)

	// SaveReport persists the return report, updates the leave row
	// (status, actual return date, penalty flag) and creates the auto-penalty
	// when present. Returns apperrors.ErrDuplicate if a report already exists
	// and apperrors.ErrConflict if the leave left a reportable status.
	SaveReport(ctx context.Context, submission ReportSubmission) error

	// UpdateReportVerification marks the report verified. Guarded on the
	// report being unverified; a lost race reports apperrors.ErrConflict.
	UpdateReportVerification(ctx context.Context, reportID string, verifiedBy string, verifiedAt time.Time, notes string, activity domain.ActivityLog) error

	// SavePenalty persists a manually assigned penalty and raises the leave's
	// has_penalty flag in the same unit.
	SavePenalty(ctx context.Context, penalty domain.LeavePenalty, activity domain.ActivityLog) error

	// UpdateLeaveStatus transitions a leave guarded on its current status
	// being one of `from`; reports apperrors.ErrConflict otherwise.
	UpdateLeaveStatus(ctx context.Context, leaveID string, from []domain.LeaveStatus, to domain.LeaveStatus, updatedBy string, updatedAt time.Time, activity *domain.ActivityLog) error

	// ActivateStartedLeaves transitions approved leaves whose start date has
	// been reached to active. Idempotent; returns the number updated.
	ActivateStartedLeaves(ctx context.Context, asOf time.Time, updatedBy string) (int64, error)

	// MarkOverdueLeaves transitions active leaves past their expected return
	// date, with no report, to overdue. Idempotent; returns the number updated.
	MarkOverdueLeaves(ctx context.Context, asOf time.Time, updatedBy string) (int64, error)
}

// LeaveRepositoryFacade combines all leave-related repository interfaces
type LeaveRepositoryFacade interface {
	LeaveReader
	LeaveWriter
}

// LeaveRepositoryWithTx extends LeaveRepositoryFacade with transaction capabilities
type LeaveRepositoryWithTx interface {
	LeaveRepositoryFacade
	TransactionManager
}
