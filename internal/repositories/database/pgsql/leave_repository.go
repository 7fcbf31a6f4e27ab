package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/barengs/smpt-sub000/internal/apperrors"
	"github.com/barengs/smpt-sub000/internal/core/domain"
	portsrepo "github.com/barengs/smpt-sub000/internal/core/ports/repositories"
	"github.com/barengs/smpt-sub000/internal/models"
	"github.com/barengs/smpt-sub000/internal/utils/mapping"
)

type PgxLeaveRepository struct {
	BaseRepository
	activityRepo portsrepo.ActivityRepositoryFacade
}

// newPgxLeaveRepository creates a new repository for student leave data.
func newPgxLeaveRepository(pool *pgxpool.Pool, activityRepo portsrepo.ActivityRepositoryFacade) portsrepo.LeaveRepositoryFacade {
	return &PgxLeaveRepository{
		BaseRepository: BaseRepository{Pool: pool},
		activityRepo:   activityRepo,
	}
}

// Ensure PgxLeaveRepository implements portsrepo.LeaveRepositoryFacade
var _ portsrepo.LeaveRepositoryFacade = (*PgxLeaveRepository)(nil)

const leaveColumns = `leave_id, leave_number, student_reference, leave_type, academic_year_id, start_date, end_date, duration_days, expected_return_date, actual_return_date, status, approval_count, required_approvals, all_approved, has_penalty, reason, destination, approved_by, approved_at, created_at, created_by, last_updated_at, last_updated_by`

func scanLeaveRow(row pgx.Row) (models.StudentLeave, error) {
	var m models.StudentLeave
	err := row.Scan(
		&m.LeaveID,
		&m.LeaveNumber,
		&m.StudentReference,
		&m.LeaveType,
		&m.AcademicYearID,
		&m.StartDate,
		&m.EndDate,
		&m.DurationDays,
		&m.ExpectedReturnDate,
		&m.ActualReturnDate,
		&m.Status,
		&m.ApprovalCount,
		&m.RequiredApprovals,
		&m.AllApproved,
		&m.HasPenalty,
		&m.Reason,
		&m.Destination,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const reportColumns = `report_id, leave_id, report_date, report_time, condition, is_late, late_days, is_verified, verified_by, verified_at, notes, verification_notes, created_at, created_by, last_updated_at, last_updated_by`

func scanReportRow(row pgx.Row) (models.LeaveReport, error) {
	var m models.LeaveReport
	err := row.Scan(
		&m.ReportID,
		&m.LeaveID,
		&m.ReportDate,
		&m.ReportTime,
		&m.Condition,
		&m.IsLate,
		&m.LateDays,
		&m.IsVerified,
		&m.VerifiedBy,
		&m.VerifiedAt,
		&m.Notes,
		&m.VerificationNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveLeave persists a new leave with its provisioned approval rows and the
// initial activity entry within one database transaction.
func (r *PgxLeaveRepository) SaveLeave(ctx context.Context, leave domain.StudentLeave, approvals []domain.LeaveApproval, activity domain.ActivityLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored after a successful commit

	m := mapping.ToModelStudentLeave(leave)
	leaveQuery := `
		INSERT INTO student_leaves (` + leaveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, leaveQuery,
		m.LeaveID,
		m.LeaveNumber,
		m.StudentReference,
		m.LeaveType,
		m.AcademicYearID,
		m.StartDate,
		m.EndDate,
		m.DurationDays,
		m.ExpectedReturnDate,
		m.ActualReturnDate,
		m.Status,
		m.ApprovalCount,
		m.RequiredApprovals,
		m.AllApproved,
		m.HasPenalty,
		m.Reason,
		m.Destination,
		m.ApprovedBy,
		m.ApprovedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: leave number %s already exists", apperrors.ErrDuplicate, m.LeaveNumber)
		}
		return fmt.Errorf("failed to insert leave %s: %w", m.LeaveID, err)
	}

	approvalQuery := `
		INSERT INTO leave_approvals (approval_id, leave_id, approver_role, approver_reference, status, notes, reviewed_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, approval := range approvals {
		ma := mapping.ToModelLeaveApproval(approval)
		batch.Queue(approvalQuery,
			ma.ApprovalID,
			ma.LeaveID,
			ma.ApproverRole,
			ma.ApproverReference,
			ma.Status,
			ma.Notes,
			ma.ReviewedAt,
			ma.CreatedAt,
			ma.CreatedBy,
			ma.LastUpdatedAt,
			ma.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert approval rows for leave %s: %w", m.LeaveID, err)
	}

	if err := r.activityRepo.InsertActivitiesInTx(ctx, tx, []domain.ActivityLog{activity}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// RecordApprovalDecision applies one approver role's decision. The leave row
// is locked FOR UPDATE for the whole unit, the approval row update is guarded
// on still being pending, and the approval count is recomputed from the
// approvals table under the lock. Concurrent role decisions serialize on the
// leave row, so exactly one caller observes the quorum transition.
func (r *PgxLeaveRepository) RecordApprovalDecision(ctx context.Context, decision portsrepo.ApprovalDecision) (*domain.StudentLeave, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + leaveColumns + ` FROM student_leaves WHERE leave_id = $1 FOR UPDATE;`
	m, err := scanLeaveRow(tx.QueryRow(ctx, lockQuery, decision.LeaveID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock leave "+decision.LeaveID, err)
	}
	if domain.LeaveStatus(m.Status) != domain.LeavePending {
		return nil, fmt.Errorf("%w: leave %s is %s, not awaiting approval", apperrors.ErrConflict, decision.LeaveID, m.Status)
	}

	newApprovalStatus := domain.ApprovalApproved
	if !decision.Approve {
		newApprovalStatus = domain.ApprovalRejected
	}
	decideQuery := `
		UPDATE leave_approvals
		SET status = $1, approver_reference = $2, notes = $3, reviewed_at = $4, last_updated_at = $4, last_updated_by = $2
		WHERE leave_id = $5 AND approver_role = $6 AND status = $7;
	`
	ct, err := tx.Exec(ctx, decideQuery,
		string(newApprovalStatus),
		decision.ReviewerID,
		decision.Notes,
		decision.ReviewedAt,
		decision.LeaveID,
		string(decision.Role),
		string(domain.ApprovalPending),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record %s decision for leave %s: %w", decision.Role, decision.LeaveID, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: role %s has already decided on leave %s", apperrors.ErrConflict, decision.Role, decision.LeaveID)
	}

	var approvedCount int
	countQuery := `SELECT COUNT(*) FROM leave_approvals WHERE leave_id = $1 AND status = $2;`
	if err := tx.QueryRow(ctx, countQuery, decision.LeaveID, string(domain.ApprovalApproved)).Scan(&approvedCount); err != nil {
		return nil, apperrors.NewAppError(500, "failed to recount approvals for leave "+decision.LeaveID, err)
	}

	outcome := domain.ResolveApprovalDecision(approvedCount, m.RequiredApprovals, decision.Approve)
	m.Status = string(outcome.Status)
	m.ApprovalCount = outcome.ApprovalCount
	m.AllApproved = outcome.AllApproved
	m.LastUpdatedAt = decision.ReviewedAt
	m.LastUpdatedBy = decision.ReviewerID
	if outcome.Status == domain.LeaveApproved {
		m.ApprovedBy = &decision.ReviewerID
		reviewedAt := decision.ReviewedAt
		m.ApprovedAt = &reviewedAt
	}

	activities := []domain.ActivityLog{decision.RoleActivity}
	if outcome.Final {
		activities = append(activities, decision.FinalActivity)
	}

	leaveQuery := `
		UPDATE student_leaves
		SET status = $1, approval_count = $2, all_approved = $3, approved_by = $4, approved_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE leave_id = $8;
	`
	if _, err := tx.Exec(ctx, leaveQuery,
		m.Status,
		m.ApprovalCount,
		m.AllApproved,
		m.ApprovedBy,
		m.ApprovedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.LeaveID,
	); err != nil {
		return nil, fmt.Errorf("failed to update leave %s after decision: %w", decision.LeaveID, err)
	}

	if err := r.activityRepo.InsertActivitiesInTx(ctx, tx, activities); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	leave := mapping.ToDomainStudentLeave(m)
	return &leave, nil
}

// SaveReport persists the return report, updates the leave row and creates the
// auto-penalty (if any) within one database transaction.
func (r *PgxLeaveRepository) SaveReport(ctx context.Context, submission portsrepo.ReportSubmission) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	report := submission.Report
	mr := mapping.ToModelLeaveReport(report)
	reportQuery := `
		INSERT INTO leave_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, reportQuery,
		mr.ReportID,
		mr.LeaveID,
		mr.ReportDate,
		mr.ReportTime,
		mr.Condition,
		mr.IsLate,
		mr.LateDays,
		mr.IsVerified,
		mr.VerifiedBy,
		mr.VerifiedAt,
		mr.Notes,
		mr.VerificationNotes,
		mr.CreatedAt,
		mr.CreatedBy,
		mr.LastUpdatedAt,
		mr.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // One report per leave
			return fmt.Errorf("%w: leave %s already has a return report", apperrors.ErrDuplicate, mr.LeaveID)
		}
		return fmt.Errorf("failed to insert report for leave %s: %w", mr.LeaveID, err)
	}

	// The status guard catches leaves cancelled or rejected since the service
	// loaded them.
	leaveQuery := `
		UPDATE student_leaves
		SET status = $1, actual_return_date = $2, has_penalty = has_penalty OR $3, last_updated_at = $4, last_updated_by = $5
		WHERE leave_id = $6 AND status = ANY($7);
	`
	reportable := make([]string, 0, len(domain.ReportableLeaveStatuses))
	for _, s := range domain.ReportableLeaveStatuses {
		reportable = append(reportable, string(s))
	}
	ct, err := tx.Exec(ctx, leaveQuery,
		string(submission.NewStatus),
		report.ReportDate,
		submission.Penalty != nil,
		report.CreatedAt,
		submission.SubmittedBy,
		report.LeaveID,
		reportable,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave %s on report submission: %w", report.LeaveID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: leave %s is no longer in a reportable status", apperrors.ErrConflict, report.LeaveID)
	}

	if submission.Penalty != nil {
		if err := r.insertPenaltyInTx(ctx, tx, *submission.Penalty); err != nil {
			return err
		}
	}

	if err := r.activityRepo.InsertActivitiesInTx(ctx, tx, []domain.ActivityLog{submission.Activity}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateReportVerification marks the report verified, guarded on it being
// unverified.
func (r *PgxLeaveRepository) UpdateReportVerification(ctx context.Context, reportID string, verifiedBy string, verifiedAt time.Time, notes string, activity domain.ActivityLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE leave_reports
		SET is_verified = TRUE, verified_by = $1, verified_at = $2, verification_notes = $3, last_updated_at = $2, last_updated_by = $1
		WHERE report_id = $4 AND is_verified = FALSE;
	`
	ct, err := tx.Exec(ctx, query, verifiedBy, verifiedAt, notes, reportID)
	if err != nil {
		return fmt.Errorf("failed to verify report %s: %w", reportID, err)
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if probeErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leave_reports WHERE report_id = $1);`, reportID).Scan(&exists); probeErr != nil {
			return apperrors.NewAppError(500, "failed to verify report "+reportID, probeErr)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: report %s is already verified", apperrors.ErrConflict, reportID)
	}

	if err := r.activityRepo.InsertActivitiesInTx(ctx, tx, []domain.ActivityLog{activity}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxLeaveRepository) insertPenaltyInTx(ctx context.Context, tx pgx.Tx, penalty domain.LeavePenalty) error {
	mp := mapping.ToModelLeavePenalty(penalty)
	query := `
		INSERT INTO leave_penalties (penalty_id, leave_id, report_id, penalty_type, point_value, description, assigned_by, assigned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		mp.PenaltyID,
		mp.LeaveID,
		mp.ReportID,
		mp.PenaltyType,
		mp.PointValue,
		mp.Description,
		mp.AssignedBy,
		mp.AssignedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert penalty %s for leave %s: %w", mp.PenaltyID, mp.LeaveID, err)
	}
	return nil
}

// SavePenalty persists a manually assigned penalty and raises the leave's
// has_penalty flag in the same database transaction.
func (r *PgxLeaveRepository) SavePenalty(ctx context.Context, penalty domain.LeavePenalty, activity domain.ActivityLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertPenaltyInTx(ctx, tx, penalty); err != nil {
		return err
	}

	flagQuery := `
		UPDATE student_leaves
		SET has_penalty = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE leave_id = $3;
	`
	ct, err := tx.Exec(ctx, flagQuery, penalty.AssignedAt, penalty.AssignedBy, penalty.LeaveID)
	if err != nil {
		return fmt.Errorf("failed to flag penalty on leave %s: %w", penalty.LeaveID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.activityRepo.InsertActivitiesInTx(ctx, tx, []domain.ActivityLog{activity}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateLeaveStatus transitions a leave guarded on its current status being
// one of `from`.
func (r *PgxLeaveRepository) UpdateLeaveStatus(ctx context.Context, leaveID string, from []domain.LeaveStatus, to domain.LeaveStatus, updatedBy string, updatedAt time.Time, activity *domain.ActivityLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	fromStatuses := make([]string, 0, len(from))
	for _, s := range from {
		fromStatuses = append(fromStatuses, string(s))
	}

	query := `
		UPDATE student_leaves
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE leave_id = $4 AND status = ANY($5);
	`
	ct, err := tx.Exec(ctx, query, string(to), updatedAt, updatedBy, leaveID, fromStatuses)
	if err != nil {
		return fmt.Errorf("failed to update status for leave %s: %w", leaveID, err)
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if probeErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM student_leaves WHERE leave_id = $1);`, leaveID).Scan(&exists); probeErr != nil {
			return apperrors.NewAppError(500, "failed to verify leave "+leaveID, probeErr)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: leave %s is not in an expected status for transition to %s", apperrors.ErrConflict, leaveID, to)
	}

	if activity != nil {
		if err := r.activityRepo.InsertActivitiesInTx(ctx, tx, []domain.ActivityLog{*activity}); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// batchTransition flips every leave matched by the filter to the target
// status and appends one activity entry per flipped leave.
func (r *PgxLeaveRepository) batchTransition(ctx context.Context, updateQuery string, args []interface{}, activityType domain.ActivityType, description string, updatedBy string, asOf time.Time) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx, updateQuery, args...)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to run batch leave transition", err)
	}
	leaveIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, apperrors.NewAppError(500, "failed to scan transitioned leave id", err)
		}
		leaveIDs = append(leaveIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, apperrors.NewAppError(500, "error iterating transitioned leave ids", err)
	}

	if len(leaveIDs) > 0 {
		activities := make([]domain.ActivityLog, len(leaveIDs))
		for i, id := range leaveIDs {
			activities[i] = domain.ActivityLog{
				LeaveID:        id,
				ActivityType:   activityType,
				ActorReference: updatedBy,
				ActorRole:      "system",
				Description:    description,
				CreatedAt:      asOf,
			}
		}
		if err := r.activityRepo.InsertActivitiesInTx(ctx, tx, activities); err != nil {
			return 0, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return int64(len(leaveIDs)), nil
}

// ActivateStartedLeaves transitions approved leaves whose start date has been
// reached to active. Safe to run repeatedly.
func (r *PgxLeaveRepository) ActivateStartedLeaves(ctx context.Context, asOf time.Time, updatedBy string) (int64, error) {
	query := `
		UPDATE student_leaves
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE status = $4 AND start_date <= $5
		RETURNING leave_id;
	`
	args := []interface{}{string(domain.LeaveActive), asOf, updatedBy, string(domain.LeaveApproved), asOf}
	return r.batchTransition(ctx, query, args, domain.ActivityActivated, "Izin mulai berlaku", updatedBy, asOf)
}

// MarkOverdueLeaves transitions active leaves past their expected return date,
// with no report, to overdue. Safe to run repeatedly.
func (r *PgxLeaveRepository) MarkOverdueLeaves(ctx context.Context, asOf time.Time, updatedBy string) (int64, error) {
	query := `
		UPDATE student_leaves sl
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE sl.status = $4
		  AND sl.expected_return_date < $5
		  AND NOT EXISTS (SELECT 1 FROM leave_reports lr WHERE lr.leave_id = sl.leave_id)
		RETURNING sl.leave_id;
	`
	args := []interface{}{string(domain.LeaveOverdue), asOf, updatedBy, string(domain.LeaveActive), asOf}
	return r.batchTransition(ctx, query, args, domain.ActivityMarkedOverdue, "Melewati batas tanggal kembali tanpa lapor", updatedBy, asOf)
}

// FindLeaveByID retrieves a leave by its primary key.
func (r *PgxLeaveRepository) FindLeaveByID(ctx context.Context, leaveID string) (*domain.StudentLeave, error) {
	query := `SELECT ` + leaveColumns + ` FROM student_leaves WHERE leave_id = $1;`
	return r.findLeave(ctx, query, leaveID)
}

// FindLeaveByNumber retrieves a leave by its unique business number.
func (r *PgxLeaveRepository) FindLeaveByNumber(ctx context.Context, leaveNumber string) (*domain.StudentLeave, error) {
	query := `SELECT ` + leaveColumns + ` FROM student_leaves WHERE leave_number = $1;`
	return r.findLeave(ctx, query, leaveNumber)
}

func (r *PgxLeaveRepository) findLeave(ctx context.Context, query, arg string) (*domain.StudentLeave, error) {
	m, err := scanLeaveRow(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find leave "+arg, err)
	}
	leave := mapping.ToDomainStudentLeave(m)
	return &leave, nil
}

// FindApprovalsByLeaveID retrieves all approval rows for a leave, ordered by creation.
func (r *PgxLeaveRepository) FindApprovalsByLeaveID(ctx context.Context, leaveID string) ([]domain.LeaveApproval, error) {
	query := `
		SELECT approval_id, leave_id, approver_role, approver_reference, status, notes, reviewed_at, created_at, created_by, last_updated_at, last_updated_by
		FROM leave_approvals
		WHERE leave_id = $1
		ORDER BY created_at, approver_role;
	`
	rows, err := r.Pool.Query(ctx, query, leaveID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query approvals for leave "+leaveID, err)
	}
	defer rows.Close()

	approvals := []domain.LeaveApproval{}
	for rows.Next() {
		var m models.LeaveApproval
		err := rows.Scan(
			&m.ApprovalID,
			&m.LeaveID,
			&m.ApproverRole,
			&m.ApproverReference,
			&m.Status,
			&m.Notes,
			&m.ReviewedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan approval row for leave "+leaveID, err)
		}
		approvals = append(approvals, mapping.ToDomainLeaveApproval(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating approval rows for leave "+leaveID, err)
	}
	return approvals, nil
}

// FindReportByLeaveID retrieves the 1:1 return report, if any.
func (r *PgxLeaveRepository) FindReportByLeaveID(ctx context.Context, leaveID string) (*domain.LeaveReport, error) {
	query := `SELECT ` + reportColumns + ` FROM leave_reports WHERE leave_id = $1;`

	m, err := scanReportRow(r.Pool.QueryRow(ctx, query, leaveID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find report for leave "+leaveID, err)
	}
	report := mapping.ToDomainLeaveReport(m)
	return &report, nil
}

// FindPenaltiesByLeaveID retrieves all penalties for a leave.
func (r *PgxLeaveRepository) FindPenaltiesByLeaveID(ctx context.Context, leaveID string) ([]domain.LeavePenalty, error) {
	query := `
		SELECT penalty_id, leave_id, report_id, penalty_type, point_value, description, assigned_by, assigned_at
		FROM leave_penalties
		WHERE leave_id = $1
		ORDER BY assigned_at;
	`
	rows, err := r.Pool.Query(ctx, query, leaveID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query penalties for leave "+leaveID, err)
	}
	defer rows.Close()

	penalties := []domain.LeavePenalty{}
	for rows.Next() {
		var m models.LeavePenalty
		err := rows.Scan(
			&m.PenaltyID,
			&m.LeaveID,
			&m.ReportID,
			&m.PenaltyType,
			&m.PointValue,
			&m.Description,
			&m.AssignedBy,
			&m.AssignedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan penalty row for leave "+leaveID, err)
		}
		penalties = append(penalties, mapping.ToDomainLeavePenalty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating penalty rows for leave "+leaveID, err)
	}
	return penalties, nil
}
