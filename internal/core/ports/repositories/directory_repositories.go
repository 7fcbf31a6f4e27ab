package repositories

import (
	"context"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

// StaffRepositoryFacade resolves staff members for audit attribution and
// approver-role checks.
type StaffRepositoryFacade interface {
	// FindStaffByID retrieves a staff member by id.
	FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)
}

// AcademicYearRepositoryFacade resolves academic years for leave creation.
type AcademicYearRepositoryFacade interface {
	// FindActiveAcademicYear retrieves the currently active academic year.
	// Returns apperrors.ErrNotFound when none is marked active.
	FindActiveAcademicYear(ctx context.Context) (*domain.AcademicYear, error)

	// FindAcademicYearByID retrieves a specific academic year.
	FindAcademicYearByID(ctx context.Context, academicYearID string) (*domain.AcademicYear, error)
}
