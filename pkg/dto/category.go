package dto

import "time"

// CategoryResponse carries the resolved icon URL; IconFailed tells the client
// to render its placeholder instead of retrying a known-broken image.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url"`
	IconFailed  bool      `json:"icon_failed,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ToggleCategoryRequest struct {
	IsActive bool `json:"is_active"`
}
