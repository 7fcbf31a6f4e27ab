package services

import (
	"context"

	"github.com/barengs/smpt-sub000/internal/core/domain"
	"github.com/barengs/smpt-sub000/internal/dto"
)

// LeaveReaderSvc defines side-effect-free leave projections.
type LeaveReaderSvc interface {
	// GetLeave retrieves a leave by id.
	GetLeave(ctx context.Context, leaveID string) (*domain.StudentLeave, error)

	// GetApprovalTimeline retrieves all approval rows for a leave, ordered by
	// creation time.
	GetApprovalTimeline(ctx context.Context, leaveID string) ([]domain.LeaveApproval, error)

	// GetActivityHistory retrieves the append-only activity stream for a
	// leave, ordered by timestamp then sequence.
	GetActivityHistory(ctx context.Context, leaveID string) ([]domain.ActivityLog, error)

	// GetPenalties retrieves all penalties recorded against a leave,
	// automatic and manual alike.
	GetPenalties(ctx context.Context, leaveID string) ([]domain.LeavePenalty, error)
}

// LeaveWriterSvc defines the lifecycle-mutating leave operations.
type LeaveWriterSvc interface {
	// CreateLeave registers a new leave in status pending with its three
	// provisioned approval rows.
	CreateLeave(ctx context.Context, req dto.CreateLeaveRequest, actorID string) (*domain.StudentLeave, error)

	// ApproveByRole records one approver role's approval; the third distinct
	// role's approval transitions the leave to approved.
	ApproveByRole(ctx context.Context, leaveID string, role string, actorID string, notes string) (*domain.StudentLeave, error)

	// RejectByRole records one approver role's rejection; a single veto
	// transitions the leave to rejected.
	RejectByRole(ctx context.Context, leaveID string, role string, actorID string, notes string) (*domain.StudentLeave, error)

	// SubmitReport records the student's return report, derives lateness and
	// auto-assigns the late penalty in the same unit.
	SubmitReport(ctx context.Context, leaveID string, req dto.SubmitReportRequest, actorID string) (*domain.LeaveReport, error)

	// VerifyReport marks the return report verified.
	VerifyReport(ctx context.Context, leaveID string, actorID string, notes string) (*domain.LeaveReport, error)

	// AssignPenalty records a manual disciplinary penalty; allowed in any status.
	AssignPenalty(ctx context.Context, leaveID string, req dto.AssignPenaltyRequest, actorID string) (*domain.LeavePenalty, error)

	// Cancel transitions a pending or approved leave to cancelled.
	Cancel(ctx context.Context, leaveID string, actorID string) error

	// ActivateStartedLeaves transitions approved leaves whose start date has
	// arrived to active. Batch entry point for an external scheduler.
	ActivateStartedLeaves(ctx context.Context) (int64, error)

	// SweepOverdue transitions active leaves past their expected return date
	// to overdue. Idempotent batch entry point.
	SweepOverdue(ctx context.Context) (int64, error)
}

// LeaveSvcFacade combines all leave service interfaces.
type LeaveSvcFacade interface {
	LeaveReaderSvc
	LeaveWriterSvc
}

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Ledger LedgerSvcFacade
	Leave  LeaveSvcFacade
}
