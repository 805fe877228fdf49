// Package backend is the HTTP client for the upstream scrap-collection REST
// backend. The backend is a collaborator, not part of this service: all
// persistence, authentication and file storage happen on its side. This
// package owns the wire concerns: response envelope unwrapping, payload
// normalization, the error taxonomy, and the single refresh-and-retry on an
// authorization failure.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/scrapdesk/admin-api/internal/models"
)

// Credentials are the upstream-issued token pair for one operator session.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// CredentialSource supplies the credentials for a call and persists rotated
// ones. The session store implements it; rotation happens at most once per
// call, on a 401.
type CredentialSource interface {
	Credentials() Credentials
	Rotate(ctx context.Context, creds Credentials) error
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the backend API at baseURL (including the /api/v1
// prefix). The timeout is advisory: on expiry the call fails with a
// NetworkError and is not retried.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type ListRequestsParams struct {
	Page      int
	Limit     int
	Status    string
	Search    string
	StartDate string
	EndDate   string
}

type RequestPage struct {
	Requests   []models.CollectionRequest `json:"requests"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	Total      int                        `json:"total"`
	TotalPages int                        `json:"total_pages"`
}

type IconFile struct {
	Filename string
	Content  []byte
}

type CategoryInput struct {
	Name        string
	Description string
	IsActive    bool
	Icon        *IconFile
}

// CategoryUpdate is a partial update; nil fields keep their upstream value.
// RemoveIcon sends an empty icon field, which the backend treats as removal.
type CategoryUpdate struct {
	Name        *string
	Description *string
	IsActive    *bool
	Icon        *IconFile
	RemoveIcon  bool
}

type ItemWeightUpdate struct {
	ID             string   `json:"id"`
	Weight         *float64 `json:"weight,omitempty"`
	EstimatedValue *float64 `json:"estimated_value,omitempty"`
	AdminNotes     *string  `json:"admin_notes,omitempty"`
}

type ProfileInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (Credentials, *models.AdminUser, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return Credentials{}, nil, err
	}

	data, err := c.do(ctx, http.MethodPost, "/auth/login", "application/json", body, nil)
	if err != nil {
		return Credentials{}, nil, err
	}

	var payload loginPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Credentials{}, nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	token := pickString(payload.Token, payload.AccessToken)
	if token == "" {
		return Credentials{}, nil, &ServerError{Status: http.StatusOK, Message: "login response carried no token"}
	}

	creds := Credentials{
		AccessToken:  token,
		RefreshToken: pickString(payload.RefreshToken, payload.RefreshToken2),
	}
	user := payload.User.toModel()
	return creds, &user, nil
}

func (c *Client) Logout(ctx context.Context, cs CredentialSource) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", "application/json", nil, cs)
	return err
}

func (c *Client) ResetPassword(ctx context.Context, cs CredentialSource, oldPassword, newPassword, email string) error {
	body, err := json.Marshal(map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
		"email":       email,
	})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, "/auth/reset-password", "application/json", body, cs)
	return err
}

func (c *Client) GetProfile(ctx context.Context, cs CredentialSource) (*models.AdminUser, error) {
	data, err := c.do(ctx, http.MethodGet, "/auth/profile", "", nil, cs)
	if err != nil {
		return nil, err
	}
	var payload userPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	user := payload.toModel()
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, cs CredentialSource, input ProfileInput) (*models.AdminUser, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPut, "/user/profile", "application/json", body, cs)
	if err != nil {
		return nil, err
	}
	var payload userPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	user := payload.toModel()
	return &user, nil
}

func (c *Client) ListCategories(ctx context.Context, cs CredentialSource) ([]models.Category, error) {
	data, err := c.do(ctx, http.MethodGet, "/categories", "", nil, cs)
	if err != nil {
		return nil, err
	}
	var payloads []categoryPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	categories := make([]models.Category, len(payloads))
	for i, p := range payloads {
		categories[i] = p.toModel()
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, cs CredentialSource, id string) (*models.Category, error) {
	data, err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), "", nil, cs)
	if err != nil {
		return nil, err
	}
	return decodeCategory(data)
}

func (c *Client) CreateCategory(ctx context.Context, cs CredentialSource, input CategoryInput) (*models.Category, error) {
	body, contentType, err := encodeCategoryForm(map[string]string{
		"name":        input.Name,
		"description": input.Description,
		"is_active":   strconv.FormatBool(input.IsActive),
	}, input.Icon, false)
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPost, "/categories", contentType, body, cs)
	if err != nil {
		return nil, err
	}
	return decodeCategory(data)
}

func (c *Client) UpdateCategory(ctx context.Context, cs CredentialSource, id string, update CategoryUpdate) (*models.Category, error) {
	fields := make(map[string]string)
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.IsActive != nil {
		fields["is_active"] = strconv.FormatBool(*update.IsActive)
	}

	body, contentType, err := encodeCategoryForm(fields, update.Icon, update.RemoveIcon)
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), contentType, body, cs)
	if err != nil {
		return nil, err
	}
	return decodeCategory(data)
}

func (c *Client) DeleteCategory(ctx context.Context, cs CredentialSource, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), "", nil, cs)
	return err
}

func (c *Client) SetCategoryActive(ctx context.Context, cs CredentialSource, id string, active bool) (*models.Category, error) {
	body, err := json.Marshal(map[string]bool{"is_active": active})
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), "application/json", body, cs)
	if err != nil {
		return nil, err
	}
	return decodeCategory(data)
}

func (c *Client) ListRequests(ctx context.Context, cs CredentialSource, params ListRequestsParams) (*RequestPage, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.StartDate != "" {
		query.Set("start_date", params.StartDate)
	}
	if params.EndDate != "" {
		query.Set("end_date", params.EndDate)
	}

	path := "/categories/requests/all"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	data, err := c.do(ctx, http.MethodGet, path, "", nil, cs)
	if err != nil {
		return nil, err
	}

	var payload requestsPagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %w", err)
	}

	page := &RequestPage{
		Requests:   make([]models.CollectionRequest, len(payload.Requests)),
		Page:       payload.Page,
		Limit:      payload.Limit,
		Total:      payload.Total,
		TotalPages: payload.TotalPages,
	}
	for i, p := range payload.Requests {
		page.Requests[i] = p.toModel()
	}
	return page, nil
}

func (c *Client) GetRequest(ctx context.Context, cs CredentialSource, id string) (*models.CollectionRequest, error) {
	data, err := c.do(ctx, http.MethodGet, "/categories/requests/all/"+url.PathEscape(id), "", nil, cs)
	if err != nil {
		return nil, err
	}
	return decodeRequest(data)
}

// UpdateRequestStatus issues the transition upstream. The returned request is
// nil when the backend answered with a bare success envelope; callers stamp
// the transition locally in that case.
func (c *Client) UpdateRequestStatus(ctx context.Context, cs CredentialSource, id, status, adminNotes string) (*models.CollectionRequest, error) {
	body, err := json.Marshal(map[string]string{
		"status":      status,
		"admin_notes": adminNotes,
	})
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPut, "/admin/requests/"+url.PathEscape(id)+"/status", "application/json", body, cs)
	if err != nil {
		return nil, err
	}
	return decodeOptionalRequest(data)
}

func (c *Client) UpdateItemWeights(ctx context.Context, cs CredentialSource, id string, items []ItemWeightUpdate) (*models.CollectionRequest, error) {
	body, err := json.Marshal(map[string]any{"items": items})
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPut, "/admin/requests/"+url.PathEscape(id)+"/weights", "application/json", body, cs)
	if err != nil {
		return nil, err
	}
	return decodeOptionalRequest(data)
}

// do performs one backend call: network failures become NetworkError, a 401
// triggers at most one refresh-and-retry, remaining non-2xx statuses become
// ServerError with the backend's message when present, and the success
// envelope is unwrapped down to its data.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, cs CredentialSource) (json.RawMessage, error) {
	send := func(token string) (*http.Response, []byte, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, nil, err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		req.Header.Set("Accept", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, nil, &NetworkError{Err: err}
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, nil, &NetworkError{Err: err}
		}
		return resp, respBody, nil
	}

	var token string
	if cs != nil {
		token = cs.Credentials().AccessToken
	}

	resp, respBody, err := send(token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && cs != nil {
		creds := cs.Credentials()
		if creds.RefreshToken == "" {
			return nil, &AuthError{Message: extractMessage(respBody)}
		}

		rotated, err := c.refresh(ctx, creds.RefreshToken)
		if err != nil {
			return nil, &AuthError{Message: "token refresh failed"}
		}
		if err := cs.Rotate(ctx, rotated); err != nil {
			return nil, fmt.Errorf("failed to persist rotated credentials: %w", err)
		}

		resp, respBody, err = send(rotated.AccessToken)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, &AuthError{Message: extractMessage(respBody)}
		}
	} else if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthError{Message: extractMessage(respBody)}
	}

	if resp.StatusCode >= 400 {
		return nil, &ServerError{Status: resp.StatusCode, Message: extractMessage(respBody)}
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err == nil && env.Success != nil {
		if !*env.Success {
			return nil, &ServerError{Status: resp.StatusCode, Message: env.Message}
		}
		return env.Data, nil
	}
	return respBody, nil
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (Credentials, error) {
	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return Credentials{}, err
	}

	data, err := c.do(ctx, http.MethodPost, "/auth/refresh-token", "application/json", body, nil)
	if err != nil {
		return Credentials{}, err
	}

	var payload loginPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Credentials{}, fmt.Errorf("failed to decode refresh response: %w", err)
	}

	token := pickString(payload.Token, payload.AccessToken)
	if token == "" {
		return Credentials{}, fmt.Errorf("refresh response carried no token")
	}

	return Credentials{
		AccessToken:  token,
		RefreshToken: pickString(payload.RefreshToken, payload.RefreshToken2, refreshToken),
	}, nil
}

func decodeCategory(data json.RawMessage) (*models.Category, error) {
	var payload categoryPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode category: %w", err)
	}
	category := payload.toModel()
	return &category, nil
}

func decodeRequest(data json.RawMessage) (*models.CollectionRequest, error) {
	var payload requestPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	req := payload.toModel()
	return &req, nil
}

func decodeOptionalRequest(data json.RawMessage) (*models.CollectionRequest, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	req, err := decodeRequest(data)
	if err != nil {
		return nil, nil // bare acknowledgement bodies are fine; the caller stamps locally
	}
	if req.ID == "" && req.Status == "" {
		return nil, nil
	}
	return req, nil
}

func extractMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	return ""
}

func encodeCategoryForm(fields map[string]string, icon *IconFile, removeIcon bool) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if icon != nil {
		part, err := writer.CreateFormFile("icon", icon.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(icon.Content); err != nil {
			return nil, "", err
		}
	} else if removeIcon {
		if err := writer.WriteField("icon", ""); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
