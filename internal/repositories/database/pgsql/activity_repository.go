package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/barengs/smpt-sub000/internal/apperrors"
	"github.com/barengs/smpt-sub000/internal/core/domain"
	portsrepo "github.com/barengs/smpt-sub000/internal/core/ports/repositories"
	"github.com/barengs/smpt-sub000/internal/models"
	"github.com/barengs/smpt-sub000/internal/utils/mapping"
)

type PgxActivityRepository struct {
	BaseRepository
}

// newPgxActivityRepository creates a new repository for the append-only
// activity stream. Rows are only ever inserted; there is no update or delete.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxActivityRepository implements portsrepo.ActivityRepositoryFacade
var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

// InsertActivitiesInTx appends entries as part of an enclosing database
// transaction owned by the caller. The sequence column is assigned by the
// database and breaks ordering ties between same-timestamp entries.
func (r *PgxActivityRepository) InsertActivitiesInTx(ctx context.Context, tx pgx.Tx, entries []domain.ActivityLog) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO activity_logs (leave_id, activity_type, actor_reference, actor_role, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelActivityLog(entry)
		batch.Queue(query, m.LeaveID, m.ActivityType, m.ActorReference, m.ActorRole, m.Description, m.Metadata, m.CreatedAt)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert activity entries: %w", err)
	}
	return nil
}

// ListActivitiesByLeaveID retrieves a leave's activity entries ordered by
// timestamp, then insertion sequence.
func (r *PgxActivityRepository) ListActivitiesByLeaveID(ctx context.Context, leaveID string) ([]domain.ActivityLog, error) {
	query := `
		SELECT sequence, leave_id, activity_type, actor_reference, actor_role, description, metadata, created_at
		FROM activity_logs
		WHERE leave_id = $1
		ORDER BY created_at, sequence;
	`
	rows, err := r.Pool.Query(ctx, query, leaveID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activities for leave "+leaveID, err)
	}
	defer rows.Close()

	activities := []domain.ActivityLog{}
	for rows.Next() {
		var m models.ActivityLog
		err := rows.Scan(
			&m.Sequence,
			&m.LeaveID,
			&m.ActivityType,
			&m.ActorReference,
			&m.ActorRole,
			&m.Description,
			&m.Metadata,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan activity row for leave "+leaveID, err)
		}
		activities = append(activities, mapping.ToDomainActivityLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating activity rows for leave "+leaveID, err)
	}
	return activities, nil
}
