package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/scrapdesk/admin-api/internal/models"
)

// The backend's response shapes are loose: optional fields, numeric ids,
// created_at vs createdAt, boolean flags as 0/1, weights as strings. Payload
// types here absorb all of that once, at the boundary, so the canonical models
// never branch on alternate spellings.

// envelope is the standard response wrapper. Success is a pointer so a body
// without the wrapper (bare data) is distinguishable from success=false.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// flexString decodes strings and numbers into a string.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexBool decodes true/false, 0/1 and their string forms.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	switch string(bytes.Trim(b, `"`)) {
	case "true", "1":
		*f = true
	case "false", "0", "", "null":
		*f = false
	default:
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexBool(v)
	}
	return nil
}

// flexFloat decodes numbers and numeric strings, tolerating unit suffixes
// ("5.2 kg"). Null and empty decode to unset.
type flexFloat struct {
	Value float64
	Set   bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := strings.Trim(string(b), `"`)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if idx := strings.IndexByte(raw, ' '); idx != -1 {
		raw = raw[:idx]
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil // unparseable weights degrade to unset, matching parseFloat||0 upstream behavior
	}
	f.Value = v
	f.Set = true
	return nil
}

func (f flexFloat) ptr() *float64 {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// flexTime decodes RFC 3339 and the backend's "2006-01-02 15:04:05" form.
type flexTime struct {
	Value time.Time
	Set   bool
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if v, err := time.Parse(layout, raw); err == nil {
			t.Value = v
			t.Set = true
			return nil
		}
	}
	return nil
}

func (t flexTime) ptr() *time.Time {
	if !t.Set {
		return nil
	}
	v := t.Value
	return &v
}

// pickTime returns the first timestamp that was actually present.
func pickTime(candidates ...flexTime) flexTime {
	for _, c := range candidates {
		if c.Set {
			return c
		}
	}
	return flexTime{}
}

func pickString(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// imagePayload accepts both a bare URL string and an object with a url/path
// field.
type imagePayload struct {
	URL string
}

func (p *imagePayload) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		p.URL = v
		return nil
	}
	var obj struct {
		URL      string `json:"url"`
		Path     string `json:"path"`
		ImageURL string `json:"image_url"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	p.URL = pickString(obj.URL, obj.Path, obj.ImageURL)
	return nil
}

type categoryPayload struct {
	ID          flexString `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	IconURL     string     `json:"icon_url"`
	IsActive    flexBool   `json:"is_active"`
	CreatedAt   flexTime   `json:"created_at"`
	CreatedAt2  flexTime   `json:"createdAt"`
	UpdatedAt   flexTime   `json:"updated_at"`
	UpdatedAt2  flexTime   `json:"updatedAt"`
}

func (p categoryPayload) toModel() models.Category {
	created := pickTime(p.CreatedAt, p.CreatedAt2)
	updated := pickTime(p.UpdatedAt, p.UpdatedAt2)
	return models.Category{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Icon:        models.NewImageRef(pickString(p.Icon, p.IconURL)),
		IsActive:    bool(p.IsActive),
		CreatedAt:   created.Value,
		UpdatedAt:   updated.Value,
	}
}

type userPayload struct {
	ID    flexString `json:"id"`
	Name  string     `json:"name"`
	Name2 string     `json:"full_name"`
	Email string     `json:"email"`
	Phone flexString `json:"phone"`
	Role  string     `json:"role"`
}

func (p userPayload) toModel() models.AdminUser {
	return models.AdminUser{
		ID:    string(p.ID),
		Name:  pickString(p.Name, p.Name2),
		Email: p.Email,
		Phone: string(p.Phone),
		Role:  p.Role,
	}
}

type itemPayload struct {
	ID              flexString     `json:"id"`
	CategoryID      flexString     `json:"category_id"`
	CategoryID2     flexString     `json:"categoryId"`
	CategoryName    string         `json:"category_name"`
	CategoryName2   string         `json:"categoryName"`
	Category        string         `json:"category"`
	Quantity        int            `json:"quantity"`
	Weight          flexFloat      `json:"weight"`
	EstimatedValue  flexFloat      `json:"estimated_value"`
	EstimatedValue2 flexFloat      `json:"estimatedValue"`
	AdminNotes      string         `json:"admin_notes"`
	AdminNotes2     string         `json:"adminNotes"`
	Images          []imagePayload `json:"images"`
}

func (p itemPayload) toModel() models.RequestItem {
	item := models.RequestItem{
		ID:           string(p.ID),
		CategoryID:   pickString(string(p.CategoryID), string(p.CategoryID2)),
		CategoryName: pickString(p.CategoryName, p.CategoryName2, p.Category),
		Quantity:     p.Quantity,
		Weight:       p.Weight.ptr(),
		Images:       make([]models.ImageRef, 0, len(p.Images)),
	}
	if v := pickEstimated(p.EstimatedValue, p.EstimatedValue2); v != nil {
		item.EstimatedValue = v
	}
	if notes := pickString(p.AdminNotes, p.AdminNotes2); notes != "" {
		item.AdminNotes = &notes
	}
	for _, img := range p.Images {
		item.Images = append(item.Images, models.NewImageRef(img.URL))
	}
	return item
}

func pickEstimated(candidates ...flexFloat) *float64 {
	for _, c := range candidates {
		if c.Set {
			return c.ptr()
		}
	}
	return nil
}

type requestPayload struct {
	ID         flexString `json:"id"`
	UserID     flexString `json:"user_id"`
	UserID2    flexString `json:"userId"`
	UserName   string     `json:"user_name"`
	UserName2  string     `json:"userName"`
	UserEmail  string     `json:"user_email"`
	UserEmail2 string     `json:"userEmail"`
	UserPhone  flexString `json:"user_phone"`
	UserPhone2 flexString `json:"userPhone"`
	User       *userPayload `json:"user"`

	Address        string `json:"address"`
	PickupDate     string `json:"pickup_date"`
	PickupTimeSlot string `json:"pickup_time_slot"`
	Notes          string `json:"notes"`

	Status string        `json:"status"`
	Items  []itemPayload `json:"items"`

	SubmittedAt  flexTime `json:"submitted_at"`
	SubmittedAt2 flexTime `json:"submittedAt"`
	CreatedAt    flexTime `json:"created_at"`
	CreatedAt2   flexTime `json:"createdAt"`
	AcceptedAt   flexTime `json:"accepted_at"`
	AcceptedAt2  flexTime `json:"acceptedAt"`
	ScheduledAt  flexTime `json:"scheduled_at"`
	ScheduledAt2 flexTime `json:"scheduledAt"`
	StartedAt    flexTime `json:"started_at"`
	StartedAt2   flexTime `json:"startedAt"`
	CompletedAt  flexTime `json:"completed_at"`
	CompletedAt2 flexTime `json:"completedAt"`
	RejectedAt   flexTime `json:"rejected_at"`
	RejectedAt2  flexTime `json:"rejectedAt"`

	RejectionReason  string `json:"rejection_reason"`
	RejectionReason2 string `json:"rejectionReason"`
}

func (p requestPayload) toModel() models.CollectionRequest {
	req := models.CollectionRequest{
		ID:             string(p.ID),
		UserID:         pickString(string(p.UserID), string(p.UserID2)),
		UserName:       pickString(p.UserName, p.UserName2),
		UserEmail:      pickString(p.UserEmail, p.UserEmail2),
		UserPhone:      pickString(string(p.UserPhone), string(p.UserPhone2)),
		Address:        p.Address,
		PickupDate:     p.PickupDate,
		PickupTimeSlot: p.PickupTimeSlot,
		Notes:          p.Notes,
		Status:         p.Status,
		Items:          make([]models.RequestItem, 0, len(p.Items)),
		SubmittedAt:    pickTime(p.SubmittedAt, p.SubmittedAt2, p.CreatedAt, p.CreatedAt2).Value,
		AcceptedAt:     pickTime(p.AcceptedAt, p.AcceptedAt2).ptr(),
		ScheduledAt:    pickTime(p.ScheduledAt, p.ScheduledAt2).ptr(),
		StartedAt:      pickTime(p.StartedAt, p.StartedAt2).ptr(),
		CompletedAt:    pickTime(p.CompletedAt, p.CompletedAt2).ptr(),
		RejectedAt:     pickTime(p.RejectedAt, p.RejectedAt2).ptr(),
	}
	if p.User != nil {
		u := p.User.toModel()
		req.UserID = pickString(req.UserID, u.ID)
		req.UserName = pickString(req.UserName, u.Name)
		req.UserEmail = pickString(req.UserEmail, u.Email)
		req.UserPhone = pickString(req.UserPhone, u.Phone)
	}
	if reason := pickString(p.RejectionReason, p.RejectionReason2); reason != "" {
		req.RejectionReason = &reason
	}
	for _, item := range p.Items {
		req.Items = append(req.Items, item.toModel())
	}
	return req
}

// requestsPagePayload decodes both the wrapped shape
// {requests: [...], pagination: {...}} and a bare array.
type requestsPagePayload struct {
	Requests   []requestPayload
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

func (p *requestsPagePayload) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(b, &p.Requests)
	}
	var wrapped struct {
		Requests   []requestPayload `json:"requests"`
		Pagination struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	p.Requests = wrapped.Requests
	p.Page = wrapped.Pagination.Page
	p.Limit = wrapped.Pagination.Limit
	p.Total = wrapped.Pagination.Total
	p.TotalPages = wrapped.Pagination.TotalPages
	return nil
}

type loginPayload struct {
	Token         string      `json:"token"`
	AccessToken   string      `json:"access_token"`
	RefreshToken  string      `json:"refreshToken"`
	RefreshToken2 string      `json:"refresh_token"`
	User          userPayload `json:"user"`
}
