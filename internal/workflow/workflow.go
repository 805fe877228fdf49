// Package workflow defines the collection request status machine and gates
// every transition before a network call is made on its behalf.
package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/scrapdesk/admin-api/internal/models"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRejected   Status = "rejected"
)

// ValidationError is a client-side precondition failure. It is reported to the
// operator and never forwarded upstream.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// next holds the single forward edge per status. pending additionally allows
// the rejected branch; terminal states have no entry.
var next = map[Status]Status{
	StatusPending:    StatusAccepted,
	StatusAccepted:   StatusScheduled,
	StatusScheduled:  StatusInProgress,
	StatusInProgress: StatusCompleted,
}

// Valid reports whether s is one of the known statuses.
func Valid(s Status) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusScheduled, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Next returns the status the single primary action advances to, if any.
// Terminal states return false.
func Next(current Status) (Status, bool) {
	n, ok := next[current]
	return n, ok
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is a legal edge: the linear happy
// path, or the rejected branch out of pending.
func CanTransition(from, to Status) bool {
	if n, ok := next[from]; ok && n == to {
		return true
	}
	return from == StatusPending && to == StatusRejected
}

// ValidateTransition enforces the client-side preconditions for a status
// update: both statuses known, the edge legal, and a non-empty reason when
// rejecting.
func ValidateTransition(from, to Status, reason string) error {
	if !Valid(from) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", from)}
	}
	if !Valid(to) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", to)}
	}
	if !CanTransition(from, to) {
		return &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		}
	}
	if to == StatusRejected && strings.TrimSpace(reason) == "" {
		return &ValidationError{Field: "reason", Message: "rejection reason is required"}
	}
	return nil
}

// ApplyTransition validates and applies a status change to the request in
// place: the status is replaced and exactly one stage timestamp is stamped
// with now. Rejection also records the reason. No other field changes.
func ApplyTransition(req *models.CollectionRequest, to Status, reason string, now time.Time) error {
	if err := ValidateTransition(Status(req.Status), to, reason); err != nil {
		return err
	}

	req.Status = string(to)
	switch to {
	case StatusAccepted:
		req.AcceptedAt = &now
	case StatusScheduled:
		req.ScheduledAt = &now
	case StatusInProgress:
		req.StartedAt = &now
	case StatusCompleted:
		req.CompletedAt = &now
	case StatusRejected:
		req.RejectedAt = &now
		trimmed := strings.TrimSpace(reason)
		req.RejectionReason = &trimmed
	}
	return nil
}
