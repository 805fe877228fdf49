package dto

import "time"

type ItemImageResponse struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Failed bool   `json:"failed,omitempty"`
}

type RequestItemResponse struct {
	ID             string              `json:"id"`
	CategoryID     string              `json:"category_id"`
	CategoryName   string              `json:"category_name"`
	Quantity       int                 `json:"quantity"`
	Weight         *float64            `json:"weight,omitempty"`
	EstimatedValue *float64            `json:"estimated_value,omitempty"`
	AdminNotes     *string             `json:"admin_notes,omitempty"`
	Images         []ItemImageResponse `json:"images"`
}

type RequestResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	UserPhone string `json:"user_phone,omitempty"`
	Address   string `json:"address"`

	PickupDate     string `json:"pickup_date"`
	PickupTimeSlot string `json:"pickup_time_slot"`
	Notes          string `json:"notes,omitempty"`

	Status     string `json:"status"`
	NextStatus string `json:"next_status,omitempty"`
	Terminal   bool   `json:"terminal"`

	Items       []RequestItemResponse `json:"items"`
	TotalWeight float64               `json:"total_weight"`
	TotalValue  float64               `json:"total_value"`

	SubmittedAt     time.Time  `json:"submitted_at"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
}

type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type RequestListResponse struct {
	Requests   []RequestResponse  `json:"requests"`
	Pagination PaginationResponse `json:"pagination"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type ItemWeightRequest struct {
	ID             string   `json:"id"`
	Weight         *float64 `json:"weight,omitempty"`
	EstimatedValue *float64 `json:"estimated_value,omitempty"`
	AdminNotes     *string  `json:"admin_notes,omitempty"`
}

type UpdateWeightsRequest struct {
	Items []ItemWeightRequest `json:"items"`
}
