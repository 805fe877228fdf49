package models

import "time"

// CollectionRequest is a scrap pickup request as reviewed by an operator. It
// is created upstream by the requester and only ever transitions status here;
// it is never deleted.
type CollectionRequest struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	UserPhone string `json:"user_phone"`
	Address   string `json:"address"`

	PickupDate     string `json:"pickup_date"`
	PickupTimeSlot string `json:"pickup_time_slot"`
	Notes          string `json:"notes"`

	Status string        `json:"status"`
	Items  []RequestItem `json:"items"`

	SubmittedAt     time.Time  `json:"submitted_at"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
}

type RequestItem struct {
	ID             string     `json:"id"`
	CategoryID     string     `json:"category_id"`
	CategoryName   string     `json:"category_name"`
	Quantity       int        `json:"quantity"`
	Weight         *float64   `json:"weight,omitempty"`
	EstimatedValue *float64   `json:"estimated_value,omitempty"`
	AdminNotes     *string    `json:"admin_notes,omitempty"`
	Images         []ImageRef `json:"images"`
}

// TotalWeight is the arithmetic sum across items, recomputed on every call.
// It is never stored.
func (r *CollectionRequest) TotalWeight() float64 {
	var total float64
	for _, item := range r.Items {
		if item.Weight != nil {
			total += *item.Weight
		}
	}
	return total
}

func (r *CollectionRequest) TotalValue() float64 {
	var total float64
	for _, item := range r.Items {
		if item.EstimatedValue != nil {
			total += *item.EstimatedValue
		}
	}
	return total
}
