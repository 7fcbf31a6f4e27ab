package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/barengs/smpt-sub000/internal/apperrors"
	"github.com/barengs/smpt-sub000/internal/core/domain"
	portsrepo "github.com/barengs/smpt-sub000/internal/core/ports/repositories"
	portssvc "github.com/barengs/smpt-sub000/internal/core/ports/services"
	"github.com/barengs/smpt-sub000/internal/dto"
	"github.com/barengs/smpt-sub000/internal/middleware"
	"github.com/barengs/smpt-sub000/internal/utils"
)

var (
	ErrInvalidDateRange   = fmt.Errorf("%w: end date must not be before start date", apperrors.ErrValidation)
	ErrUnknownRole        = fmt.Errorf("%w: unknown approver role", apperrors.ErrValidation)
	ErrRejectionNeedsNote = fmt.Errorf("%w: rejection requires an explanation", apperrors.ErrValidation)
	ErrNotReportable      = fmt.Errorf("%w: leave is not in a reportable status", apperrors.ErrConflict)
	ErrNotCancellable     = fmt.Errorf("%w: only pending or approved leaves can be cancelled", apperrors.ErrConflict)
	ErrReportExists       = fmt.Errorf("%w: leave already has a return report", apperrors.ErrDuplicate)
	ErrLeaveNumberGen     = fmt.Errorf("%w: failed to generate a unique leave number", apperrors.ErrDuplicate)
)

const dateLayout = "2006-01-02"

// systemActor attributes batch transitions that no staff member initiated.
const systemActor = "system"

// leaveService provides the student leave workflow operations.
type leaveService struct {
	leaveRepo        portsrepo.LeaveRepositoryFacade
	activityRepo     portsrepo.ActivityRepositoryFacade
	staffRepo        portsrepo.StaffRepositoryFacade
	academicYearRepo portsrepo.AcademicYearRepositoryFacade
	clock            portssvc.Clock
}

// NewLeaveService creates a new LeaveService.
func NewLeaveService(
	leaveRepo portsrepo.LeaveRepositoryFacade,
	activityRepo portsrepo.ActivityRepositoryFacade,
	staffRepo portsrepo.StaffRepositoryFacade,
	academicYearRepo portsrepo.AcademicYearRepositoryFacade,
	clock portssvc.Clock,
) portssvc.LeaveSvcFacade {
	return &leaveService{
		leaveRepo:        leaveRepo,
		activityRepo:     activityRepo,
		staffRepo:        staffRepo,
		academicYearRepo: academicYearRepo,
		clock:            clock,
	}
}

// Ensure leaveService implements the portssvc.LeaveSvcFacade interface
var _ portssvc.LeaveSvcFacade = (*leaveService)(nil)

func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, value)
	}
	return t, nil
}

// CreateLeave registers a new leave in status pending with one provisioned
// approval row per approver role.
func (s *leaveService) CreateLeave(ctx context.Context, req dto.CreateLeaveRequest, actorID string) (*domain.StudentLeave, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	academicYearID := req.AcademicYearID
	if academicYearID == "" {
		year, err := s.academicYearRepo.FindActiveAcademicYear(ctx)
		if err != nil {
			return nil, fmt.Errorf("no active academic year: %w", err)
		}
		academicYearID = year.AcademicYearID
	} else {
		if _, err := s.academicYearRepo.FindAcademicYearByID(ctx, academicYearID); err != nil {
			return nil, fmt.Errorf("academic year %s: %w", academicYearID, err)
		}
	}

	now := s.clock.Now()
	leave := domain.StudentLeave{
		LeaveID:            uuid.NewString(),
		StudentReference:   req.StudentReference,
		LeaveType:          req.LeaveType,
		AcademicYearID:     academicYearID,
		StartDate:          domain.DateOnly(startDate),
		EndDate:            domain.DateOnly(endDate),
		DurationDays:       domain.LeaveDurationDays(startDate, endDate),
		ExpectedReturnDate: domain.ExpectedReturnDate(endDate),
		Status:             domain.LeavePending,
		RequiredApprovals:  domain.RequiredApprovals,
		Reason:             req.Reason,
		Destination:        req.Destination,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	approvals := make([]domain.LeaveApproval, 0, len(domain.ApproverRoles))
	for _, role := range domain.ApproverRoles {
		approvals = append(approvals, domain.LeaveApproval{
			ApprovalID:   uuid.NewString(),
			ApproverRole: role,
			Status:       domain.ApprovalPending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		})
	}

	for attempt := 0; attempt < refGenAttempts; attempt++ {
		number, err := utils.GenerateLeaveNumber(now)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLeaveNumberGen, err)
		}
		if _, err := s.leaveRepo.FindLeaveByNumber(ctx, number); err == nil {
			// Taken, try again with fresh randomness.
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check leave number %s: %w", number, err)
		}
		leave.LeaveNumber = number
		for i := range approvals {
			approvals[i].LeaveID = leave.LeaveID
		}

		activity := domain.ActivityLog{
			LeaveID:        leave.LeaveID,
			ActivityType:   domain.ActivityCreated,
			ActorReference: actorID,
			Description:    fmt.Sprintf("Pengajuan izin %s dibuat", number),
			CreatedAt:      now,
		}
		err = s.leaveRepo.SaveLeave(ctx, leave, approvals, activity)
		if errors.Is(err, apperrors.ErrDuplicate) {
			continue
		}
		if err != nil {
			logger.Error("Failed to save leave", slog.String("student", req.StudentReference), slog.String("error", err.Error()))
			return nil, err
		}
		logger.Info("Leave created",
			slog.String("leave_number", number),
			slog.String("student", req.StudentReference),
			slog.Int("duration_days", leave.DurationDays),
		)
		return &leave, nil
	}
	return nil, ErrLeaveNumberGen
}

// resolveApprover validates the role string and checks the acting staff member
// holds that role.
func (s *leaveService) resolveApprover(ctx context.Context, roleStr, actorID string) (domain.ApproverRole, *domain.Staff, error) {
	role, ok := domain.ParseApproverRole(roleStr)
	if !ok {
		return "", nil, fmt.Errorf("%q: %w", roleStr, ErrUnknownRole)
	}
	staff, err := s.staffRepo.FindStaffByID(ctx, actorID)
	if err != nil {
		return "", nil, fmt.Errorf("staff %s: %w", actorID, err)
	}
	if !staff.HoldsRole(role) {
		return "", nil, fmt.Errorf("%w: staff %s does not hold role %s", apperrors.ErrForbidden, actorID, role)
	}
	return role, staff, nil
}

// ApproveByRole records one approver role's approval. The decision, the
// recount and the possible quorum transition happen under the leave row lock
// in the repository.
func (s *leaveService) ApproveByRole(ctx context.Context, leaveID string, roleStr string, actorID string, notes string) (*domain.StudentLeave, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, staff, err := s.resolveApprover(ctx, roleStr, actorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	decision := portsrepo.ApprovalDecision{
		LeaveID:    leaveID,
		Role:       role,
		Approve:    true,
		ReviewerID: actorID,
		Notes:      notes,
		ReviewedAt: now,
		RoleActivity: domain.ActivityLog{
			LeaveID:        leaveID,
			ActivityType:   domain.ActivityApprovedByRole,
			ActorReference: actorID,
			ActorRole:      string(role),
			Description:    fmt.Sprintf("Disetujui oleh %s (%s)", staff.Name, role.DisplayName()),
			CreatedAt:      now,
		},
		FinalActivity: domain.ActivityLog{
			LeaveID:        leaveID,
			ActivityType:   domain.ActivityFullyApproved,
			ActorReference: actorID,
			ActorRole:      string(role),
			Description:    "Semua persetujuan terpenuhi, izin disetujui",
			CreatedAt:      now,
		},
	}

	leave, err := s.leaveRepo.RecordApprovalDecision(ctx, decision)
	if err != nil {
		return nil, err
	}

	logger.Info("Leave approval recorded",
		slog.String("leave_id", leaveID),
		slog.String("role", string(role)),
		slog.Int("approval_count", leave.ApprovalCount),
		slog.String("status", string(leave.Status)),
	)
	return leave, nil
}

// RejectByRole records one approver role's rejection. A single veto moves the
// leave to rejected regardless of other roles' decisions.
func (s *leaveService) RejectByRole(ctx context.Context, leaveID string, roleStr string, actorID string, notes string) (*domain.StudentLeave, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if notes == "" {
		return nil, ErrRejectionNeedsNote
	}
	role, staff, err := s.resolveApprover(ctx, roleStr, actorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	decision := portsrepo.ApprovalDecision{
		LeaveID:    leaveID,
		Role:       role,
		Approve:    false,
		ReviewerID: actorID,
		Notes:      notes,
		ReviewedAt: now,
		RoleActivity: domain.ActivityLog{
			LeaveID:        leaveID,
			ActivityType:   domain.ActivityRejectedByRole,
			ActorReference: actorID,
			ActorRole:      string(role),
			Description:    fmt.Sprintf("Ditolak oleh %s (%s): %s", staff.Name, role.DisplayName(), notes),
			CreatedAt:      now,
		},
		FinalActivity: domain.ActivityLog{
			LeaveID:        leaveID,
			ActivityType:   domain.ActivityFullyRejected,
			ActorReference: actorID,
			ActorRole:      string(role),
			Description:    "Izin ditolak",
			CreatedAt:      now,
		},
	}

	leave, err := s.leaveRepo.RecordApprovalDecision(ctx, decision)
	if err != nil {
		return nil, err
	}

	logger.Info("Leave rejected",
		slog.String("leave_id", leaveID),
		slog.String("role", string(role)),
	)
	return leave, nil
}

// SubmitReport records the student's return report. Lateness is measured in
// whole days past the expected return date; a late return auto-assigns a
// warning penalty in the same atomic unit.
func (s *leaveService) SubmitReport(ctx context.Context, leaveID string, req dto.SubmitReportRequest, actorID string) (*domain.LeaveReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	leave, err := s.leaveRepo.FindLeaveByID(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	if !leave.Status.Reportable() {
		return nil, fmt.Errorf("leave %s is %s: %w", leaveID, leave.Status, ErrNotReportable)
	}

	if _, err := s.leaveRepo.FindReportByLeaveID(ctx, leaveID); err == nil {
		return nil, fmt.Errorf("leave %s: %w", leaveID, ErrReportExists)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	reportDate, err := parseDate(req.ReportDate)
	if err != nil {
		return nil, err
	}
	condition, ok := domain.ParseReportCondition(req.Condition)
	if !ok {
		return nil, fmt.Errorf("%w: unknown condition %q", apperrors.ErrValidation, req.Condition)
	}

	now := s.clock.Now()
	lateDays := domain.LateDaysFor(reportDate, leave.ExpectedReturnDate)
	report := domain.LeaveReport{
		ReportID:   uuid.NewString(),
		LeaveID:    leaveID,
		ReportDate: domain.DateOnly(reportDate),
		ReportTime: req.ReportTime,
		Condition:  condition,
		IsLate:     lateDays > 0,
		LateDays:   lateDays,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	// A late return leaves the record in overdue; on-time returns complete it.
	newStatus := domain.LeaveCompleted
	if report.IsLate {
		newStatus = domain.LeaveOverdue
	}

	submission := portsrepo.ReportSubmission{
		Report:      report,
		NewStatus:   newStatus,
		SubmittedBy: actorID,
		Activity: domain.ActivityLog{
			LeaveID:        leaveID,
			ActivityType:   domain.ActivityReportSubmitted,
			ActorReference: actorID,
			Description:    fmt.Sprintf("Laporan kembali diterima, kondisi %s", condition),
			Metadata: map[string]string{
				"is_late":   fmt.Sprintf("%t", report.IsLate),
				"late_days": fmt.Sprintf("%d", lateDays),
			},
			CreatedAt: now,
		},
	}
	if report.IsLate {
		reportID := report.ReportID
		submission.Penalty = &domain.LeavePenalty{
			PenaltyID:   uuid.NewString(),
			LeaveID:     leaveID,
			ReportID:    &reportID,
			PenaltyType: domain.PenaltyWarning,
			PointValue:  lateDays * domain.LatePenaltyPointsPerDay,
			Description: fmt.Sprintf("Terlambat kembali %d hari", lateDays),
			AssignedBy:  systemActor,
			AssignedAt:  now,
		}
	}

	if err := s.leaveRepo.SaveReport(ctx, submission); err != nil {
		logger.Error("Failed to save report", slog.String("leave_id", leaveID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Return report submitted",
		slog.String("leave_id", leaveID),
		slog.Bool("is_late", report.IsLate),
		slog.Int("late_days", lateDays),
	)
	return &report, nil
}

// VerifyReport marks the return report verified by a staff member.
func (s *leaveService) VerifyReport(ctx context.Context, leaveID string, actorID string, notes string) (*domain.LeaveReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	report, err := s.leaveRepo.FindReportByLeaveID(ctx, leaveID)
	if err != nil {
		return nil, fmt.Errorf("report for leave %s: %w", leaveID, err)
	}
	if report.IsVerified {
		return nil, fmt.Errorf("%w: report %s is already verified", apperrors.ErrConflict, report.ReportID)
	}

	now := s.clock.Now()
	activity := domain.ActivityLog{
		LeaveID:        leaveID,
		ActivityType:   domain.ActivityReportVerified,
		ActorReference: actorID,
		Description:    "Laporan kembali diverifikasi",
		CreatedAt:      now,
	}
	if err := s.leaveRepo.UpdateReportVerification(ctx, report.ReportID, actorID, now, notes, activity); err != nil {
		return nil, err
	}

	logger.Info("Return report verified", slog.String("leave_id", leaveID), slog.String("report_id", report.ReportID))
	return s.leaveRepo.FindReportByLeaveID(ctx, leaveID)
}

// AssignPenalty records a manually assigned disciplinary penalty.
func (s *leaveService) AssignPenalty(ctx context.Context, leaveID string, req dto.AssignPenaltyRequest, actorID string) (*domain.LeavePenalty, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.leaveRepo.FindLeaveByID(ctx, leaveID); err != nil {
		return nil, err
	}
	penaltyType, ok := domain.ParsePenaltyType(req.PenaltyType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown penalty type %q", apperrors.ErrValidation, req.PenaltyType)
	}

	now := s.clock.Now()
	penalty := domain.LeavePenalty{
		PenaltyID:   uuid.NewString(),
		LeaveID:     leaveID,
		ReportID:    req.ReportID,
		PenaltyType: penaltyType,
		PointValue:  req.PointValue,
		Description: req.Description,
		AssignedBy:  actorID,
		AssignedAt:  now,
	}
	activity := domain.ActivityLog{
		LeaveID:        leaveID,
		ActivityType:   domain.ActivityPenaltyAssigned,
		ActorReference: actorID,
		Description:    fmt.Sprintf("Sanksi %s diberikan: %s", penaltyType, req.Description),
		Metadata:       map[string]string{"point_value": fmt.Sprintf("%d", req.PointValue)},
		CreatedAt:      now,
	}

	if err := s.leaveRepo.SavePenalty(ctx, penalty, activity); err != nil {
		logger.Error("Failed to save penalty", slog.String("leave_id", leaveID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Penalty assigned",
		slog.String("leave_id", leaveID),
		slog.String("penalty_type", string(penaltyType)),
		slog.Int("point_value", req.PointValue),
	)
	return &penalty, nil
}

// Cancel transitions a pending or approved leave to cancelled. Leaves that
// have started must run their course through the report flow instead.
func (s *leaveService) Cancel(ctx context.Context, leaveID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	leave, err := s.leaveRepo.FindLeaveByID(ctx, leaveID)
	if err != nil {
		return err
	}
	if leave.Status != domain.LeavePending && leave.Status != domain.LeaveApproved {
		return fmt.Errorf("leave %s is %s: %w", leaveID, leave.Status, ErrNotCancellable)
	}

	now := s.clock.Now()
	activity := domain.ActivityLog{
		LeaveID:        leaveID,
		ActivityType:   domain.ActivityCancelled,
		ActorReference: actorID,
		Description:    "Pengajuan izin dibatalkan",
		CreatedAt:      now,
	}
	from := []domain.LeaveStatus{domain.LeavePending, domain.LeaveApproved}
	if err := s.leaveRepo.UpdateLeaveStatus(ctx, leaveID, from, domain.LeaveCancelled, actorID, now, &activity); err != nil {
		return err
	}

	logger.Info("Leave cancelled", slog.String("leave_id", leaveID))
	return nil
}

// ActivateStartedLeaves transitions approved leaves whose start date has
// arrived to active. Intended to run from a scheduler; safe to rerun.
func (s *leaveService) ActivateStartedLeaves(ctx context.Context) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	updated, err := s.leaveRepo.ActivateStartedLeaves(ctx, domain.DateOnly(s.clock.Now()), systemActor)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		logger.Info("Activated started leaves", slog.Int64("updated", updated))
	}
	return updated, nil
}

// SweepOverdue transitions active leaves past their expected return date, with
// no report, to overdue. Intended to run from a scheduler; safe to rerun.
func (s *leaveService) SweepOverdue(ctx context.Context) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	updated, err := s.leaveRepo.MarkOverdueLeaves(ctx, domain.DateOnly(s.clock.Now()), systemActor)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		logger.Info("Marked overdue leaves", slog.Int64("updated", updated))
	}
	return updated, nil
}

// GetLeave retrieves a leave by id.
func (s *leaveService) GetLeave(ctx context.Context, leaveID string) (*domain.StudentLeave, error) {
	return s.leaveRepo.FindLeaveByID(ctx, leaveID)
}

// GetApprovalTimeline retrieves all approval rows for a leave.
func (s *leaveService) GetApprovalTimeline(ctx context.Context, leaveID string) ([]domain.LeaveApproval, error) {
	if _, err := s.leaveRepo.FindLeaveByID(ctx, leaveID); err != nil {
		return nil, err
	}
	return s.leaveRepo.FindApprovalsByLeaveID(ctx, leaveID)
}

// GetActivityHistory retrieves the append-only activity stream for a leave.
func (s *leaveService) GetActivityHistory(ctx context.Context, leaveID string) ([]domain.ActivityLog, error) {
	if _, err := s.leaveRepo.FindLeaveByID(ctx, leaveID); err != nil {
		return nil, err
	}
	return s.activityRepo.ListActivitiesByLeaveID(ctx, leaveID)
}

// GetPenalties retrieves all penalties recorded against a leave.
func (s *leaveService) GetPenalties(ctx context.Context, leaveID string) ([]domain.LeavePenalty, error) {
	if _, err := s.leaveRepo.FindLeaveByID(ctx, leaveID); err != nil {
		return nil, err
	}
	return s.leaveRepo.FindPenaltiesByLeaveID(ctx, leaveID)
}
