package models

// AdminUser is the operator profile as returned by the upstream backend. A
// copy is cached on the session so the dashboard can render it without a
// round trip.
type AdminUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}
