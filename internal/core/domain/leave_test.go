package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveDurationDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "single day leave",
			start: date(2025, 3, 10),
			end:   date(2025, 3, 10),
			want:  1,
		},
		{
			name:  "three day leave",
			start: date(2025, 3, 10),
			end:   date(2025, 3, 12),
			want:  3,
		},
		{
			name:  "spans a month boundary",
			start: date(2025, 3, 30),
			end:   date(2025, 4, 2),
			want:  4,
		},
		{
			name:  "time-of-day does not change the day count",
			start: time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC),
			end:   time.Date(2025, 3, 12, 0, 1, 0, 0, time.UTC),
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.LeaveDurationDays(tt.start, tt.end))
		})
	}
}

func TestExpectedReturnDate(t *testing.T) {
	assert.Equal(t, date(2025, 3, 13), domain.ExpectedReturnDate(date(2025, 3, 12)))
	assert.Equal(t, date(2025, 4, 1), domain.ExpectedReturnDate(date(2025, 3, 31)))
}

func TestLateDaysFor(t *testing.T) {
	expected := date(2025, 3, 13)

	tests := []struct {
		name       string
		reportDate time.Time
		want       int
	}{
		{
			name:       "early return is not late",
			reportDate: date(2025, 3, 12),
			want:       0,
		},
		{
			name:       "on the expected return date is not late",
			reportDate: date(2025, 3, 13),
			want:       0,
		},
		{
			name:       "one day past",
			reportDate: date(2025, 3, 14),
			want:       1,
		},
		{
			name:       "two days past",
			reportDate: date(2025, 3, 15),
			want:       2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.LateDaysFor(tt.reportDate, expected))
		})
	}
}

func TestResolveApprovalDecision(t *testing.T) {
	tests := []struct {
		name          string
		approvedCount int
		approve       bool
		want          domain.ApprovalOutcome
	}{
		{
			name:          "first approval stays pending",
			approvedCount: 1,
			approve:       true,
			want:          domain.ApprovalOutcome{Status: domain.LeavePending, ApprovalCount: 1},
		},
		{
			name:          "second approval stays pending",
			approvedCount: 2,
			approve:       true,
			want:          domain.ApprovalOutcome{Status: domain.LeavePending, ApprovalCount: 2},
		},
		{
			name:          "third approval reaches quorum",
			approvedCount: 3,
			approve:       true,
			want:          domain.ApprovalOutcome{Status: domain.LeaveApproved, ApprovalCount: 3, AllApproved: true, Final: true},
		},
		{
			name:          "rejection vetoes with no approvals yet",
			approvedCount: 0,
			approve:       false,
			want:          domain.ApprovalOutcome{Status: domain.LeaveRejected, ApprovalCount: 0, Final: true},
		},
		{
			name:          "rejection vetoes despite prior approvals",
			approvedCount: 2,
			approve:       false,
			want:          domain.ApprovalOutcome{Status: domain.LeaveRejected, ApprovalCount: 2, Final: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ResolveApprovalDecision(tt.approvedCount, domain.RequiredApprovals, tt.approve)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeaveStatusReportable(t *testing.T) {
	tests := []struct {
		status domain.LeaveStatus
		want   bool
	}{
		{domain.LeaveApproved, true},
		{domain.LeaveActive, true},
		{domain.LeaveOverdue, true},
		{domain.LeavePending, false},
		{domain.LeaveRejected, false},
		{domain.LeaveCompleted, false},
		{domain.LeaveCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Reportable())
		})
	}
}

func TestParseApproverRole(t *testing.T) {
	role, ok := domain.ParseApproverRole("dorm_head")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleDormHead, role)

	_, ok = domain.ParseApproverRole("principal")
	assert.False(t, ok)
}
