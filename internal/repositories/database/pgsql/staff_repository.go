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

type PgxStaffRepository struct {
	BaseRepository
}

// newPgxStaffRepository creates a new repository for the staff directory.
func newPgxStaffRepository(pool *pgxpool.Pool) portsrepo.StaffRepositoryFacade {
	return &PgxStaffRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StaffRepositoryFacade = (*PgxStaffRepository)(nil)

// FindStaffByID retrieves an active staff member by id.
func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	query := `
		SELECT staff_id, name, role, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM staff
		WHERE staff_id = $1;
	`
	var m models.Staff
	err := r.Pool.QueryRow(ctx, query, staffID).Scan(
		&m.StaffID,
		&m.Name,
		&m.Role,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find staff "+staffID, err)
	}

	staff := mapping.ToDomainStaff(m)
	return &staff, nil
}
