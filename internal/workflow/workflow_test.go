package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrapdesk/admin-api/internal/models"
)

func TestNext(t *testing.T) {
	tests := []struct {
		current Status
		want    Status
		ok      bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusAccepted, StatusScheduled, true},
		{StatusScheduled, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, "", false},
		{StatusCancelled, "", false},
		{StatusRejected, "", false},
	}
	for _, tt := range tests {
		next, ok := Next(tt.current)
		assert.Equal(t, tt.ok, ok, "status %s", tt.current)
		if tt.ok {
			assert.Equal(t, tt.want, next)
		}
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusAccepted))
	assert.True(t, CanTransition(StatusPending, StatusRejected))
	assert.True(t, CanTransition(StatusInProgress, StatusCompleted))

	// No skipping stages, no rejecting past pending, no leaving terminal states.
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
	assert.False(t, CanTransition(StatusAccepted, StatusRejected))
	assert.False(t, CanTransition(StatusCompleted, StatusPending))
	assert.False(t, CanTransition(StatusRejected, StatusAccepted))
	assert.False(t, CanTransition(StatusCancelled, StatusAccepted))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusRejected))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusInProgress))
}

func TestValidateTransition(t *testing.T) {
	assert.NoError(t, ValidateTransition(StatusPending, StatusAccepted, ""))
	assert.NoError(t, ValidateTransition(StatusPending, StatusRejected, "incomplete address"))

	var validationErr *ValidationError

	err := ValidateTransition(StatusPending, StatusRejected, "   ")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "reason", validationErr.Field)

	err = ValidateTransition(StatusPending, StatusCompleted, "")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)

	err = ValidateTransition("bogus", StatusAccepted, "")
	require.ErrorAs(t, err, &validationErr)

	err = ValidateTransition(StatusPending, "bogus", "")
	require.ErrorAs(t, err, &validationErr)
}

func TestApplyTransition_StampsExactlyOneTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	req := &models.CollectionRequest{ID: "42", Status: string(StatusPending)}
	require.NoError(t, ApplyTransition(req, StatusAccepted, "", now))

	assert.Equal(t, string(StatusAccepted), req.Status)
	require.NotNil(t, req.AcceptedAt)
	assert.Equal(t, now, *req.AcceptedAt)
	assert.Nil(t, req.ScheduledAt)
	assert.Nil(t, req.StartedAt)
	assert.Nil(t, req.CompletedAt)
	assert.Nil(t, req.RejectedAt)
	assert.Nil(t, req.RejectionReason)
}

func TestApplyTransition_Reject(t *testing.T) {
	now := time.Now()
	req := &models.CollectionRequest{ID: "42", Status: string(StatusPending)}

	require.NoError(t, ApplyTransition(req, StatusRejected, "  duplicate request ", now))

	assert.Equal(t, string(StatusRejected), req.Status)
	require.NotNil(t, req.RejectedAt)
	require.NotNil(t, req.RejectionReason)
	assert.Equal(t, "duplicate request", *req.RejectionReason)
	assert.Nil(t, req.AcceptedAt)
}

func TestApplyTransition_IllegalLeavesRequestUntouched(t *testing.T) {
	req := &models.CollectionRequest{ID: "42", Status: string(StatusPending)}

	err := ApplyTransition(req, StatusCompleted, "", time.Now())

	assert.Error(t, err)
	assert.Equal(t, string(StatusPending), req.Status)
	assert.Nil(t, req.CompletedAt)
}
