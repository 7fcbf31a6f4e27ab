package services

import (
	portsrepo "github.com/barengs/smpt-sub000/internal/core/ports/repositories"
	portssvc "github.com/barengs/smpt-sub000/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, clock portssvc.Clock) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(
		repos.AccountRepo,
		repos.TransactionRepo,
		clock,
	)

	container.Leave = NewLeaveService(
		repos.LeaveRepo,
		repos.ActivityRepo,
		repos.StaffRepo,
		repos.AcademicYearRepo,
		clock,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
	_ portssvc.LeaveSvcFacade  = (*leaveService)(nil)
)
