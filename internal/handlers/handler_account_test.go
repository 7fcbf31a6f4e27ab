package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/barengs/smpt-sub000/internal/apperrors"
	"github.com/barengs/smpt-sub000/internal/core/domain"
	portssvc "github.com/barengs/smpt-sub000/internal/core/ports/services"
	"github.com/barengs/smpt-sub000/internal/dto"
	"github.com/barengs/smpt-sub000/internal/handlers"
	"github.com/barengs/smpt-sub000/internal/middleware"
	"github.com/barengs/smpt-sub000/pkg/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetAccountsByOwner(ctx context.Context, ownerReference string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetHistory(ctx context.Context, accountNumber string, params dto.ListTransactionsParams) (*dto.TransactionHistoryResponse, error) {
	args := m.Called(ctx, accountNumber, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionHistoryResponse), args.Error(1)
}

func (m *MockLedgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, []domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).([]domain.LedgerEntry), args.Error(2)
}

func (m *MockLedgerService) OpenAccount(ctx context.Context, ownerReference string, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerReference, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Deposit(ctx context.Context, req dto.DepositRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, req dto.WithdrawRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, req dto.TransferRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Reverse(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) UpdateAccountStatus(ctx context.Context, accountNumber string, status domain.AccountStatus, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber, status, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock LeaveService ---
type MockLeaveService struct {
	mock.Mock
}

func (m *MockLeaveService) GetLeave(ctx context.Context, leaveID string) (*domain.StudentLeave, error) {
	args := m.Called(ctx, leaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentLeave), args.Error(1)
}

func (m *MockLeaveService) GetApprovalTimeline(ctx context.Context, leaveID string) ([]domain.LeaveApproval, error) {
	args := m.Called(ctx, leaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveApproval), args.Error(1)
}

func (m *MockLeaveService) GetPenalties(ctx context.Context, leaveID string) ([]domain.LeavePenalty, error) {
	args := m.Called(ctx, leaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeavePenalty), args.Error(1)
}

func (m *MockLeaveService) GetActivityHistory(ctx context.Context, leaveID string) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, leaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

func (m *MockLeaveService) CreateLeave(ctx context.Context, req dto.CreateLeaveRequest, actorID string) (*domain.StudentLeave, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentLeave), args.Error(1)
}

func (m *MockLeaveService) ApproveByRole(ctx context.Context, leaveID string, role string, actorID string, notes string) (*domain.StudentLeave, error) {
	args := m.Called(ctx, leaveID, role, actorID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentLeave), args.Error(1)
}

func (m *MockLeaveService) RejectByRole(ctx context.Context, leaveID string, role string, actorID string, notes string) (*domain.StudentLeave, error) {
	args := m.Called(ctx, leaveID, role, actorID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentLeave), args.Error(1)
}

func (m *MockLeaveService) SubmitReport(ctx context.Context, leaveID string, req dto.SubmitReportRequest, actorID string) (*domain.LeaveReport, error) {
	args := m.Called(ctx, leaveID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveReport), args.Error(1)
}

func (m *MockLeaveService) VerifyReport(ctx context.Context, leaveID string, actorID string, notes string) (*domain.LeaveReport, error) {
	args := m.Called(ctx, leaveID, actorID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveReport), args.Error(1)
}

func (m *MockLeaveService) AssignPenalty(ctx context.Context, leaveID string, req dto.AssignPenaltyRequest, actorID string) (*domain.LeavePenalty, error) {
	args := m.Called(ctx, leaveID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeavePenalty), args.Error(1)
}

func (m *MockLeaveService) Cancel(ctx context.Context, leaveID string, actorID string) error {
	args := m.Called(ctx, leaveID, actorID)
	return args.Error(0)
}

func (m *MockLeaveService) ActivateStartedLeaves(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaveService) SweepOverdue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LeaveSvcFacade = (*MockLeaveService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	mockLeaveService  *MockLeaveService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterCustomValidators())
	suite.router = gin.New()

	suite.mockLedgerService = new(MockLedgerService)
	suite.mockLeaveService = new(MockLeaveService)

	// IsProduction skips the swagger routes; they are not under test here.
	cfg := &config.Config{IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Ledger: suite.mockLedgerService,
		Leave:  suite.mockLeaveService,
	})
}

func (suite *AccountHandlerTestSuite) performRequest(method, path, actorID string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set(middleware.ActorHeader, actorID)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestOpenAccount_Success() {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	account := &domain.Account{
		AccountNumber:  "SAV20250310ABC",
		OwnerReference: "STD-001",
		Balance:        decimal.Zero,
		Status:         domain.AccountInactive,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	suite.mockLedgerService.On("OpenAccount", mock.Anything, "STD-001", "admin-1").Return(account, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", "admin-1", `{"ownerReference":"STD-001"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("SAV20250310ABC", resp.AccountNumber)
	suite.Equal("INACTIVE", resp.Status)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestOpenAccount_MissingActorHeader() {
	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", "", `{"ownerReference":"STD-001"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "OpenAccount")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockLedgerService.On("GetAccount", mock.Anything, "SAV-404").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/SAV-404", "", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeposit_Success() {
	txn := &domain.Transaction{
		TransactionID:      "txn-1",
		TransactionType:    domain.CashDeposit,
		Amount:             decimal.NewFromInt(100),
		Status:             domain.TransactionSuccess,
		ReferenceNumber:    "TXN20250310XYZ",
		DestinationAccount: "SAV-1",
	}

	suite.mockLedgerService.On("Deposit", mock.Anything, mock.MatchedBy(func(req dto.DepositRequest) bool {
		return req.AccountNumber == "SAV-1" && req.Amount.Equal(decimal.NewFromInt(100))
	}), "admin-1").Return(txn, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions/deposit", "admin-1", `{"accountNumber":"SAV-1","amount":100}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("TXN20250310XYZ", resp.ReferenceNumber)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestWithdraw_InsufficientBalance() {
	suite.mockLedgerService.On("Withdraw", mock.Anything, mock.AnythingOfType("dto.WithdrawRequest"), "admin-1").Return(nil, apperrors.ErrInsufficientBalance).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions/withdraw", "admin-1", `{"accountNumber":"SAV-1","amount":500}`)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *AccountHandlerTestSuite) TestUpdateAccountStatus_InvalidStatus() {
	w := suite.performRequest(http.MethodPatch, "/api/v1/accounts/SAV-1/status", "admin-1", `{"status":"DORMANT"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "UpdateAccountStatus")
}

func (suite *AccountHandlerTestSuite) TestListAccountsByOwner_Success() {
	accounts := []domain.Account{
		{AccountNumber: "SAV-1", OwnerReference: "STD-001", Balance: decimal.NewFromInt(150), Status: domain.AccountActive},
		{AccountNumber: "SAV-2", OwnerReference: "STD-001", Balance: decimal.Zero, Status: domain.AccountInactive},
	}

	suite.mockLedgerService.On("GetAccountsByOwner", mock.Anything, "STD-001").Return(accounts, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/owners/STD-001/accounts", "", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal("SAV-1", resp[0].AccountNumber)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetLeavePenalties_NotFound() {
	suite.mockLeaveService.On("GetPenalties", mock.Anything, "leave-404").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/leaves/leave-404/penalties", "", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateLeave_Conflict() {
	suite.mockLeaveService.On("CreateLeave", mock.Anything, mock.AnythingOfType("dto.CreateLeaveRequest"), "admin-1").Return(nil, apperrors.ErrConflict).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/leaves", "admin-1", `{"studentReference":"STD-001","leaveType":"pulang","startDate":"2025-03-10","endDate":"2025-03-12","reason":"acara"}`)

	suite.Equal(http.StatusConflict, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
