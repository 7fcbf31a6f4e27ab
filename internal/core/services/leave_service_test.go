package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/barengs/smpt-sub000/internal/apperrors"
	"github.com/barengs/smpt-sub000/internal/core/domain"
	portsrepo "github.com/barengs/smpt-sub000/internal/core/ports/repositories"
	portssvc "github.com/barengs/smpt-sub000/internal/core/ports/services"
	"github.com/barengs/smpt-sub000/internal/core/services"
	"github.com/barengs/smpt-sub000/internal/dto"
)

// MockLeaveRepository is a mock type for the LeaveRepositoryFacade interface
type MockLeaveRepository struct {
	mock.Mock
}

func (m *MockLeaveRepository) FindLeaveByID(ctx context.Context, leaveID string) (*domain.StudentLeave, error) {
	args := m.Called(ctx, leaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentLeave), args.Error(1)
}

func (m *MockLeaveRepository) FindLeaveByNumber(ctx context.Context, leaveNumber string) (*domain.StudentLeave, error) {
	args := m.Called(ctx, leaveNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentLeave), args.Error(1)
}

func (m *MockLeaveRepository) FindApprovalsByLeaveID(ctx context.Context, leaveID string) ([]domain.LeaveApproval, error) {
	args := m.Called(ctx, leaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveApproval), args.Error(1)
}

func (m *MockLeaveRepository) FindReportByLeaveID(ctx context.Context, leaveID string) (*domain.LeaveReport, error) {
	args := m.Called(ctx, leaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveReport), args.Error(1)
}

func (m *MockLeaveRepository) FindPenaltiesByLeaveID(ctx context.Context, leaveID string) ([]domain.LeavePenalty, error) {
	args := m.Called(ctx, leaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeavePenalty), args.Error(1)
}

func (m *MockLeaveRepository) SaveLeave(ctx context.Context, leave domain.StudentLeave, approvals []domain.LeaveApproval, activity domain.ActivityLog) error {
	args := m.Called(ctx, leave, approvals, activity)
	return args.Error(0)
}

func (m *MockLeaveRepository) RecordApprovalDecision(ctx context.Context, decision portsrepo.ApprovalDecision) (*domain.StudentLeave, error) {
	args := m.Called(ctx, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentLeave), args.Error(1)
}

func (m *MockLeaveRepository) SaveReport(ctx context.Context, submission portsrepo.ReportSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockLeaveRepository) UpdateReportVerification(ctx context.Context, reportID string, verifiedBy string, verifiedAt time.Time, notes string, activity domain.ActivityLog) error {
	args := m.Called(ctx, reportID, verifiedBy, verifiedAt, notes, activity)
	return args.Error(0)
}

func (m *MockLeaveRepository) SavePenalty(ctx context.Context, penalty domain.LeavePenalty, activity domain.ActivityLog) error {
	args := m.Called(ctx, penalty, activity)
	return args.Error(0)
}

func (m *MockLeaveRepository) UpdateLeaveStatus(ctx context.Context, leaveID string, from []domain.LeaveStatus, to domain.LeaveStatus, updatedBy string, updatedAt time.Time, activity *domain.ActivityLog) error {
	args := m.Called(ctx, leaveID, from, to, updatedBy, updatedAt, activity)
	return args.Error(0)
}

func (m *MockLeaveRepository) ActivateStartedLeaves(ctx context.Context, asOf time.Time, updatedBy string) (int64, error) {
	args := m.Called(ctx, asOf, updatedBy)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaveRepository) MarkOverdueLeaves(ctx context.Context, asOf time.Time, updatedBy string) (int64, error) {
	args := m.Called(ctx, asOf, updatedBy)
	return args.Get(0).(int64), args.Error(1)
}

// MockActivityRepository is a mock type for the ActivityRepositoryFacade interface
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) ListActivitiesByLeaveID(ctx context.Context, leaveID string) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, leaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

func (m *MockActivityRepository) InsertActivitiesInTx(ctx context.Context, tx pgx.Tx, entries []domain.ActivityLog) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

// MockStaffRepository is a mock type for the StaffRepositoryFacade interface
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

// MockAcademicYearRepository is a mock type for the AcademicYearRepositoryFacade interface
type MockAcademicYearRepository struct {
	mock.Mock
}

func (m *MockAcademicYearRepository) FindActiveAcademicYear(ctx context.Context) (*domain.AcademicYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcademicYear), args.Error(1)
}

func (m *MockAcademicYearRepository) FindAcademicYearByID(ctx context.Context, academicYearID string) (*domain.AcademicYear, error) {
	args := m.Called(ctx, academicYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcademicYear), args.Error(1)
}

// --- Test Suite Setup ---

type LeaveServiceTestSuite struct {
	suite.Suite
	mockLeaveRepo    *MockLeaveRepository
	mockActivityRepo *MockActivityRepository
	mockStaffRepo    *MockStaffRepository
	mockYearRepo     *MockAcademicYearRepository
	now              time.Time
	service          portssvc.LeaveSvcFacade
}

func (suite *LeaveServiceTestSuite) SetupTest() {
	suite.mockLeaveRepo = new(MockLeaveRepository)
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.mockStaffRepo = new(MockStaffRepository)
	suite.mockYearRepo = new(MockAcademicYearRepository)
	suite.now = time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewLeaveService(
		suite.mockLeaveRepo,
		suite.mockActivityRepo,
		suite.mockStaffRepo,
		suite.mockYearRepo,
		fixedClock{now: suite.now},
	)
}

func (suite *LeaveServiceTestSuite) activeYear() *domain.AcademicYear {
	return &domain.AcademicYear{AcademicYearID: "AY-2025", Name: "2024/2025", IsActive: true}
}

func (suite *LeaveServiceTestSuite) securityStaff() *domain.Staff {
	return &domain.Staff{StaffID: "staff-1", Name: "Ahmad", Role: string(domain.RoleSecurity), IsActive: true}
}

// expectFreshLeaveNumber makes every leave-number collision check report the
// number as free.
func (suite *LeaveServiceTestSuite) expectFreshLeaveNumber() {
	suite.mockLeaveRepo.On("FindLeaveByNumber", mock.Anything, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
}

// approvedLeave returns a leave in `status` with a fixed expected return date
// of 2025-03-13 (end date 2025-03-12).
func approvedLeave(status domain.LeaveStatus) *domain.StudentLeave {
	return &domain.StudentLeave{
		LeaveID:            "leave-1",
		LeaveNumber:        "LV20250308XYZ",
		StudentReference:   "STD-001",
		StartDate:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		DurationDays:       3,
		ExpectedReturnDate: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		Status:             status,
		RequiredApprovals:  domain.RequiredApprovals,
	}
}

// --- Test Cases ---

func (suite *LeaveServiceTestSuite) TestCreateLeave_Success() {
	ctx := context.Background()
	req := dto.CreateLeaveRequest{
		StudentReference: "STD-001",
		LeaveType:        "pulang",
		StartDate:        "2025-03-10",
		EndDate:          "2025-03-12",
		Reason:           "Acara keluarga",
		Destination:      "Bandung",
	}

	suite.mockYearRepo.On("FindActiveAcademicYear", ctx).Return(suite.activeYear(), nil).Once()
	suite.expectFreshLeaveNumber()
	suite.mockLeaveRepo.On("SaveLeave", ctx, mock.AnythingOfType("domain.StudentLeave"), mock.MatchedBy(func(approvals []domain.LeaveApproval) bool {
		if len(approvals) != 3 {
			return false
		}
		for _, a := range approvals {
			if a.Status != domain.ApprovalPending {
				return false
			}
		}
		return true
	}), mock.MatchedBy(func(activity domain.ActivityLog) bool {
		return activity.ActivityType == domain.ActivityCreated
	})).Return(nil).Once()

	leave, err := suite.service.CreateLeave(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(leave)
	suite.Equal(domain.LeavePending, leave.Status)
	suite.Equal(3, leave.DurationDays)
	suite.Equal(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), leave.ExpectedReturnDate)
	suite.Equal("AY-2025", leave.AcademicYearID)
	suite.Equal(domain.RequiredApprovals, leave.RequiredApprovals)
	suite.NotEmpty(leave.LeaveNumber)
	suite.mockLeaveRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestCreateLeave_SingleDay() {
	ctx := context.Background()
	req := dto.CreateLeaveRequest{
		StudentReference: "STD-001",
		LeaveType:        "pulang",
		StartDate:        "2025-03-10",
		EndDate:          "2025-03-10",
		Reason:           "Berobat",
	}

	suite.mockYearRepo.On("FindActiveAcademicYear", ctx).Return(suite.activeYear(), nil).Once()
	suite.expectFreshLeaveNumber()
	suite.mockLeaveRepo.On("SaveLeave", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	leave, err := suite.service.CreateLeave(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(1, leave.DurationDays)
	suite.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), leave.ExpectedReturnDate)
}

func (suite *LeaveServiceTestSuite) TestCreateLeave_RegeneratesOnNumberCollision() {
	ctx := context.Background()
	req := dto.CreateLeaveRequest{
		StudentReference: "STD-001",
		LeaveType:        "pulang",
		StartDate:        "2025-03-10",
		EndDate:          "2025-03-12",
		Reason:           "Acara keluarga",
	}

	suite.mockYearRepo.On("FindActiveAcademicYear", ctx).Return(suite.activeYear(), nil).Once()
	// The first generated number is already taken, the second is free.
	suite.mockLeaveRepo.On("FindLeaveByNumber", ctx, mock.AnythingOfType("string")).Return(approvedLeave(domain.LeavePending), nil).Once()
	suite.mockLeaveRepo.On("FindLeaveByNumber", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLeaveRepo.On("SaveLeave", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	leave, err := suite.service.CreateLeave(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(leave)
	suite.mockLeaveRepo.AssertNumberOfCalls(suite.T(), "FindLeaveByNumber", 2)
	suite.mockLeaveRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestCreateLeave_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreateLeaveRequest{
		StudentReference: "STD-001",
		LeaveType:        "pulang",
		StartDate:        "2025-03-12",
		EndDate:          "2025-03-10",
		Reason:           "Acara keluarga",
	}

	_, err := suite.service.CreateLeave(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidDateRange)
	suite.mockLeaveRepo.AssertNotCalled(suite.T(), "SaveLeave")
}

func (suite *LeaveServiceTestSuite) TestCreateLeave_NoActiveAcademicYear() {
	ctx := context.Background()
	req := dto.CreateLeaveRequest{
		StudentReference: "STD-001",
		LeaveType:        "pulang",
		StartDate:        "2025-03-10",
		EndDate:          "2025-03-12",
		Reason:           "Acara keluarga",
	}

	suite.mockYearRepo.On("FindActiveAcademicYear", ctx).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateLeave(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LeaveServiceTestSuite) TestApproveByRole_Success() {
	ctx := context.Background()
	approved := approvedLeave(domain.LeaveApproved)
	approved.ApprovalCount = 3
	approved.AllApproved = true

	suite.mockStaffRepo.On("FindStaffByID", ctx, "staff-1").Return(suite.securityStaff(), nil).Once()
	suite.mockLeaveRepo.On("RecordApprovalDecision", ctx, mock.MatchedBy(func(d portsrepo.ApprovalDecision) bool {
		return d.LeaveID == "leave-1" &&
			d.Role == domain.RoleSecurity &&
			d.Approve &&
			d.RoleActivity.ActivityType == domain.ActivityApprovedByRole &&
			d.FinalActivity.ActivityType == domain.ActivityFullyApproved
	})).Return(approved, nil).Once()

	leave, err := suite.service.ApproveByRole(ctx, "leave-1", "security", "staff-1", "ok")

	suite.Require().NoError(err)
	suite.Equal(domain.LeaveApproved, leave.Status)
	suite.Equal(3, leave.ApprovalCount)
	suite.True(leave.AllApproved)
	suite.mockLeaveRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestApproveByRole_UnknownRole() {
	ctx := context.Background()

	_, err := suite.service.ApproveByRole(ctx, "leave-1", "janitor", "staff-1", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownRole)
	suite.mockStaffRepo.AssertNotCalled(suite.T(), "FindStaffByID")
}

func (suite *LeaveServiceTestSuite) TestApproveByRole_StaffLacksRole() {
	ctx := context.Background()

	suite.mockStaffRepo.On("FindStaffByID", ctx, "staff-1").Return(suite.securityStaff(), nil).Once()

	_, err := suite.service.ApproveByRole(ctx, "leave-1", "dorm_head", "staff-1", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLeaveRepo.AssertNotCalled(suite.T(), "RecordApprovalDecision")
}

func (suite *LeaveServiceTestSuite) TestApproveByRole_RoleAlreadyDecided() {
	ctx := context.Background()

	suite.mockStaffRepo.On("FindStaffByID", ctx, "staff-1").Return(suite.securityStaff(), nil).Once()
	suite.mockLeaveRepo.On("RecordApprovalDecision", ctx, mock.Anything).Return(nil, apperrors.ErrConflict).Once()

	_, err := suite.service.ApproveByRole(ctx, "leave-1", "security", "staff-1", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LeaveServiceTestSuite) TestRejectByRole_Success() {
	ctx := context.Background()
	rejected := approvedLeave(domain.LeaveRejected)

	suite.mockStaffRepo.On("FindStaffByID", ctx, "staff-1").Return(suite.securityStaff(), nil).Once()
	suite.mockLeaveRepo.On("RecordApprovalDecision", ctx, mock.MatchedBy(func(d portsrepo.ApprovalDecision) bool {
		return !d.Approve &&
			d.Notes == "tanpa surat wali" &&
			d.RoleActivity.ActivityType == domain.ActivityRejectedByRole &&
			d.FinalActivity.ActivityType == domain.ActivityFullyRejected
	})).Return(rejected, nil).Once()

	leave, err := suite.service.RejectByRole(ctx, "leave-1", "security", "staff-1", "tanpa surat wali")

	suite.Require().NoError(err)
	suite.Equal(domain.LeaveRejected, leave.Status)
}

func (suite *LeaveServiceTestSuite) TestRejectByRole_RequiresNotes() {
	ctx := context.Background()

	_, err := suite.service.RejectByRole(ctx, "leave-1", "security", "staff-1", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRejectionNeedsNote)
	suite.mockStaffRepo.AssertNotCalled(suite.T(), "FindStaffByID")
}

func (suite *LeaveServiceTestSuite) TestSubmitReport_OnTime() {
	ctx := context.Background()
	req := dto.SubmitReportRequest{ReportDate: "2025-03-13", ReportTime: "08:30", Condition: "healthy"}

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeaveActive), nil).Once()
	suite.mockLeaveRepo.On("FindReportByLeaveID", ctx, "leave-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLeaveRepo.On("SaveReport", ctx, mock.MatchedBy(func(s portsrepo.ReportSubmission) bool {
		return !s.Report.IsLate &&
			s.Report.LateDays == 0 &&
			s.NewStatus == domain.LeaveCompleted &&
			s.Penalty == nil
	})).Return(nil).Once()

	report, err := suite.service.SubmitReport(ctx, "leave-1", req, "staff-1")

	suite.Require().NoError(err)
	suite.False(report.IsLate)
	suite.Equal(domain.ConditionHealthy, report.Condition)
	suite.mockLeaveRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestSubmitReport_LateAssignsPenalty() {
	ctx := context.Background()
	// Two days past the expected return date of 2025-03-13.
	req := dto.SubmitReportRequest{ReportDate: "2025-03-15", Condition: "healthy"}

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeaveOverdue), nil).Once()
	suite.mockLeaveRepo.On("FindReportByLeaveID", ctx, "leave-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLeaveRepo.On("SaveReport", ctx, mock.MatchedBy(func(s portsrepo.ReportSubmission) bool {
		return s.Report.IsLate &&
			s.Report.LateDays == 2 &&
			s.NewStatus == domain.LeaveOverdue &&
			s.Penalty != nil &&
			s.Penalty.PenaltyType == domain.PenaltyWarning &&
			s.Penalty.PointValue == 2*domain.LatePenaltyPointsPerDay
	})).Return(nil).Once()

	report, err := suite.service.SubmitReport(ctx, "leave-1", req, "staff-1")

	suite.Require().NoError(err)
	suite.True(report.IsLate)
	suite.Equal(2, report.LateDays)
	suite.mockLeaveRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestSubmitReport_OnExpectedDateIsNotLate() {
	ctx := context.Background()
	req := dto.SubmitReportRequest{ReportDate: "2025-03-13", Condition: "sick"}

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeaveApproved), nil).Once()
	suite.mockLeaveRepo.On("FindReportByLeaveID", ctx, "leave-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLeaveRepo.On("SaveReport", ctx, mock.MatchedBy(func(s portsrepo.ReportSubmission) bool {
		return !s.Report.IsLate && s.Penalty == nil
	})).Return(nil).Once()

	report, err := suite.service.SubmitReport(ctx, "leave-1", req, "staff-1")

	suite.Require().NoError(err)
	suite.Equal(0, report.LateDays)
}

func (suite *LeaveServiceTestSuite) TestSubmitReport_NotReportable() {
	ctx := context.Background()
	req := dto.SubmitReportRequest{ReportDate: "2025-03-13", Condition: "healthy"}

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeavePending), nil).Once()

	_, err := suite.service.SubmitReport(ctx, "leave-1", req, "staff-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotReportable)
	suite.mockLeaveRepo.AssertNotCalled(suite.T(), "SaveReport")
}

func (suite *LeaveServiceTestSuite) TestSubmitReport_AlreadyReported() {
	ctx := context.Background()
	req := dto.SubmitReportRequest{ReportDate: "2025-03-13", Condition: "healthy"}

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeaveActive), nil).Once()
	suite.mockLeaveRepo.On("FindReportByLeaveID", ctx, "leave-1").Return(&domain.LeaveReport{ReportID: "report-1"}, nil).Once()

	_, err := suite.service.SubmitReport(ctx, "leave-1", req, "staff-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReportExists)
}

func (suite *LeaveServiceTestSuite) TestVerifyReport_Success() {
	ctx := context.Background()
	unverified := &domain.LeaveReport{ReportID: "report-1", LeaveID: "leave-1"}
	verified := &domain.LeaveReport{ReportID: "report-1", LeaveID: "leave-1", IsVerified: true}

	suite.mockLeaveRepo.On("FindReportByLeaveID", ctx, "leave-1").Return(unverified, nil).Once()
	suite.mockLeaveRepo.On("UpdateReportVerification", ctx, "report-1", "staff-1", suite.now, "sudah dicek", mock.MatchedBy(func(activity domain.ActivityLog) bool {
		return activity.ActivityType == domain.ActivityReportVerified
	})).Return(nil).Once()
	suite.mockLeaveRepo.On("FindReportByLeaveID", ctx, "leave-1").Return(verified, nil).Once()

	report, err := suite.service.VerifyReport(ctx, "leave-1", "staff-1", "sudah dicek")

	suite.Require().NoError(err)
	suite.True(report.IsVerified)
	suite.mockLeaveRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestVerifyReport_AlreadyVerified() {
	ctx := context.Background()
	verified := &domain.LeaveReport{ReportID: "report-1", LeaveID: "leave-1", IsVerified: true}

	suite.mockLeaveRepo.On("FindReportByLeaveID", ctx, "leave-1").Return(verified, nil).Once()

	_, err := suite.service.VerifyReport(ctx, "leave-1", "staff-1", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLeaveRepo.AssertNotCalled(suite.T(), "UpdateReportVerification")
}

func (suite *LeaveServiceTestSuite) TestAssignPenalty_Success() {
	ctx := context.Background()
	req := dto.AssignPenaltyRequest{PenaltyType: "points", Description: "Melanggar tata tertib", PointValue: 15}

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeaveCompleted), nil).Once()
	suite.mockLeaveRepo.On("SavePenalty", ctx, mock.MatchedBy(func(p domain.LeavePenalty) bool {
		return p.PenaltyType == domain.PenaltyPoints && p.PointValue == 15 && p.AssignedBy == "staff-1"
	}), mock.MatchedBy(func(activity domain.ActivityLog) bool {
		return activity.ActivityType == domain.ActivityPenaltyAssigned
	})).Return(nil).Once()

	penalty, err := suite.service.AssignPenalty(ctx, "leave-1", req, "staff-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PenaltyPoints, penalty.PenaltyType)
	suite.mockLeaveRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestAssignPenalty_UnknownType() {
	ctx := context.Background()
	req := dto.AssignPenaltyRequest{PenaltyType: "expulsion", Description: "x"}

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeaveActive), nil).Once()

	_, err := suite.service.AssignPenalty(ctx, "leave-1", req, "staff-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LeaveServiceTestSuite) TestCancel_Pending() {
	ctx := context.Background()

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeavePending), nil).Once()
	suite.mockLeaveRepo.On("UpdateLeaveStatus", ctx, "leave-1", mock.AnythingOfType("[]domain.LeaveStatus"), domain.LeaveCancelled, "admin-1", suite.now, mock.MatchedBy(func(activity *domain.ActivityLog) bool {
		return activity != nil && activity.ActivityType == domain.ActivityCancelled
	})).Return(nil).Once()

	err := suite.service.Cancel(ctx, "leave-1", "admin-1")

	suite.Require().NoError(err)
	suite.mockLeaveRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestCancel_ActiveLeaveNotCancellable() {
	ctx := context.Background()

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeaveActive), nil).Once()

	err := suite.service.Cancel(ctx, "leave-1", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotCancellable)
	suite.mockLeaveRepo.AssertNotCalled(suite.T(), "UpdateLeaveStatus")
}

func (suite *LeaveServiceTestSuite) TestActivateStartedLeaves() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	suite.mockLeaveRepo.On("ActivateStartedLeaves", ctx, asOf, "system").Return(int64(2), nil).Once()

	updated, err := suite.service.ActivateStartedLeaves(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(2), updated)
}

func (suite *LeaveServiceTestSuite) TestSweepOverdue() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	suite.mockLeaveRepo.On("MarkOverdueLeaves", ctx, asOf, "system").Return(int64(0), nil).Once()

	updated, err := suite.service.SweepOverdue(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(0), updated)
}

func (suite *LeaveServiceTestSuite) TestGetPenalties() {
	ctx := context.Background()
	penalties := []domain.LeavePenalty{
		{PenaltyID: "pen-1", PenaltyType: domain.PenaltyWarning},
		{PenaltyID: "pen-2", PenaltyType: domain.PenaltyPoints},
	}

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeaveCompleted), nil).Once()
	suite.mockLeaveRepo.On("FindPenaltiesByLeaveID", ctx, "leave-1").Return(penalties, nil).Once()

	got, err := suite.service.GetPenalties(ctx, "leave-1")

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.mockLeaveRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestGetPenalties_UnknownLeave() {
	ctx := context.Background()

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-404").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetPenalties(ctx, "leave-404")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLeaveRepo.AssertNotCalled(suite.T(), "FindPenaltiesByLeaveID")
}

func (suite *LeaveServiceTestSuite) TestGetActivityHistory() {
	ctx := context.Background()
	activities := []domain.ActivityLog{
		{Sequence: 1, ActivityType: domain.ActivityCreated},
		{Sequence: 2, ActivityType: domain.ActivityApprovedByRole},
	}

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-1").Return(approvedLeave(domain.LeaveApproved), nil).Once()
	suite.mockActivityRepo.On("ListActivitiesByLeaveID", ctx, "leave-1").Return(activities, nil).Once()

	got, err := suite.service.GetActivityHistory(ctx, "leave-1")

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func (suite *LeaveServiceTestSuite) TestGetActivityHistory_UnknownLeave() {
	ctx := context.Background()

	suite.mockLeaveRepo.On("FindLeaveByID", ctx, "leave-404").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetActivityHistory(ctx, "leave-404")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "ListActivitiesByLeaveID")
}

func TestLeaveServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeaveServiceTestSuite))
}
