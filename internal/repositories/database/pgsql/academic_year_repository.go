package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/barengs/smpt-sub000/internal/apperrors"
	"github.com/barengs/smpt-sub000/internal/core/domain"
	portsrepo "github.com/barengs/smpt-sub000/internal/core/ports/repositories"
	"github.com/barengs/smpt-sub000/internal/models"
	"github.com/barengs/smpt-sub000/internal/utils/mapping"
)

type PgxAcademicYearRepository struct {
	BaseRepository
}

// newPgxAcademicYearRepository creates a new repository for academic year data.
func newPgxAcademicYearRepository(pool *pgxpool.Pool) portsrepo.AcademicYearRepositoryFacade {
	return &PgxAcademicYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AcademicYearRepositoryFacade = (*PgxAcademicYearRepository)(nil)

const academicYearColumns = `academic_year_id, name, start_date, end_date, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAcademicYearRow(row pgx.Row) (models.AcademicYear, error) {
	var m models.AcademicYear
	err := row.Scan(
		&m.AcademicYearID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindActiveAcademicYear retrieves the currently active academic year.
func (r *PgxAcademicYearRepository) FindActiveAcademicYear(ctx context.Context) (*domain.AcademicYear, error) {
	query := `SELECT ` + academicYearColumns + ` FROM academic_years WHERE is_active = TRUE ORDER BY start_date DESC LIMIT 1;`

	m, err := scanAcademicYearRow(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active academic year", err)
	}

	year := mapping.ToDomainAcademicYear(m)
	return &year, nil
}

// FindAcademicYearByID retrieves a specific academic year.
func (r *PgxAcademicYearRepository) FindAcademicYearByID(ctx context.Context, academicYearID string) (*domain.AcademicYear, error) {
	query := `SELECT ` + academicYearColumns + ` FROM academic_years WHERE academic_year_id = $1;`

	m, err := scanAcademicYearRow(r.Pool.QueryRow(ctx, query, academicYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find academic year "+academicYearID, err)
	}

	year := mapping.ToDomainAcademicYear(m)
	return &year, nil
}
