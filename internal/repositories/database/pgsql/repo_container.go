package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/barengs/smpt-sub000/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	activityRepo := newPgxActivityRepository(dbPool)
	leaveRepo := newPgxLeaveRepository(dbPool, activityRepo)
	staffRepo := newPgxStaffRepository(dbPool)
	academicYearRepo := newPgxAcademicYearRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		TransactionRepo:  transactionRepo,
		LeaveRepo:        leaveRepo,
		ActivityRepo:     activityRepo,
		StaffRepo:        staffRepo,
		AcademicYearRepo: academicYearRepo,
	}
}
