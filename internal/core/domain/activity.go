package domain

import "time"

// ActivityType tags one entry in a leave's append-only activity stream.
type ActivityType string

const (
	ActivityCreated         ActivityType = "created"
	ActivityApprovedByRole  ActivityType = "approved_by_role"
	ActivityRejectedByRole  ActivityType = "rejected_by_role"
	ActivityFullyApproved   ActivityType = "fully_approved"
	ActivityFullyRejected   ActivityType = "fully_rejected"
	ActivityReportSubmitted ActivityType = "report_submitted"
	ActivityReportVerified  ActivityType = "report_verified"
	ActivityPenaltyAssigned ActivityType = "penalty_assigned"
	ActivityCancelled       ActivityType = "cancelled"
	ActivityActivated       ActivityType = "activated"
	ActivityMarkedOverdue   ActivityType = "marked_overdue"
)

// ActivityLog is one append-only audit record for a leave. Entries are never
// updated or deleted; ordering is by timestamp, then insertion sequence.
type ActivityLog struct {
	Sequence       int64             `json:"sequence"` // Assigned by storage on insert
	LeaveID        string            `json:"leaveID"`
	ActivityType   ActivityType      `json:"activityType"`
	ActorReference string            `json:"actorReference"`
	ActorRole      string            `json:"actorRole"`
	Description    string            `json:"description"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}
