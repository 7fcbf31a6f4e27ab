package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

// ActivityReader defines read operations for the append-only activity stream.
type ActivityReader interface {
	// ListActivitiesByLeaveID retrieves a leave's activity entries ordered by
	// timestamp, then insertion sequence.
	ListActivitiesByLeaveID(ctx context.Context, leaveID string) ([]domain.ActivityLog, error)
}

// ActivityWriter defines the append operation. Entries are never updated or
// deleted after insertion.
type ActivityWriter interface {
	// InsertActivitiesInTx appends entries as part of an enclosing database
	// transaction owned by the caller.
	InsertActivitiesInTx(ctx context.Context, tx pgx.Tx, entries []domain.ActivityLog) error
}

// ActivityRepositoryFacade combines the activity stream interfaces.
type ActivityRepositoryFacade interface {
	ActivityReader
	ActivityWriter
}
