package services

import (
	"context"
	"strings"
	"time"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/workflow"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// RequestService reviews collection requests: listing, status transitions and
// item weight entry. Transitions are validated against the status machine
// before anything is sent upstream.
type RequestService struct {
	client   *backend.Client
	sessions *SessionService
}

func NewRequestService(client *backend.Client, sessions *SessionService) *RequestService {
	return &RequestService{client: client, sessions: sessions}
}

func (s *RequestService) List(ctx context.Context, session *models.Session, params backend.ListRequestsParams) (*backend.RequestPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultPageSize
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}
	if params.Status != "" && !workflow.Valid(workflow.Status(params.Status)) {
		return nil, &workflow.ValidationError{Field: "status", Message: "unknown status filter"}
	}

	page, err := s.client.ListRequests(ctx, s.sessions.CredentialsFor(session), params)
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	if page.Page == 0 {
		page.Page = params.Page
	}
	if page.Limit == 0 {
		page.Limit = params.Limit
	}
	return page, nil
}

func (s *RequestService) Get(ctx context.Context, session *models.Session, id string) (*models.CollectionRequest, error) {
	if id == "" {
		return nil, &workflow.ValidationError{Field: "id", Message: "request id is required"}
	}
	request, err := s.client.GetRequest(ctx, s.sessions.CredentialsFor(session), id)
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	return request, nil
}

// UpdateStatus moves a request along the workflow. The current status is
// fetched fresh and the transition validated locally; an illegal transition
// never reaches the backend. When the backend acknowledges without returning
// the updated request, the transition is stamped locally instead.
func (s *RequestService) UpdateStatus(ctx context.Context, session *models.Session, id string, target workflow.Status, reason string) (*models.CollectionRequest, error) {
	if id == "" {
		return nil, &workflow.ValidationError{Field: "id", Message: "request id is required"}
	}

	cs := s.sessions.CredentialsFor(session)
	current, err := s.client.GetRequest(ctx, cs, id)
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	if err := workflow.ValidateTransition(workflow.Status(current.Status), target, reason); err != nil {
		return nil, err
	}

	updated, err := s.client.UpdateRequestStatus(ctx, cs, id, string(target), strings.TrimSpace(reason))
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	if updated != nil {
		return updated, nil
	}

	if err := workflow.ApplyTransition(current, target, reason, time.Now()); err != nil {
		return nil, err
	}
	return current, nil
}

// UpdateWeights records measured weights, estimated values and notes for a
// subset of a request's items in one upstream call. Items not named in the
// batch are untouched; fields left nil within an update keep their value.
func (s *RequestService) UpdateWeights(ctx context.Context, session *models.Session, id string, updates []backend.ItemWeightUpdate) (*models.CollectionRequest, error) {
	if id == "" {
		return nil, &workflow.ValidationError{Field: "id", Message: "request id is required"}
	}
	if len(updates) == 0 {
		return nil, &workflow.ValidationError{Field: "items", Message: "at least one item update is required"}
	}
	for _, update := range updates {
		if update.ID == "" {
			return nil, &workflow.ValidationError{Field: "items", Message: "item id is required"}
		}
		if update.Weight != nil && *update.Weight < 0 {
			return nil, &workflow.ValidationError{Field: "weight", Message: "weight cannot be negative"}
		}
		if update.EstimatedValue != nil && *update.EstimatedValue < 0 {
			return nil, &workflow.ValidationError{Field: "estimated_value", Message: "estimated value cannot be negative"}
		}
	}

	cs := s.sessions.CredentialsFor(session)
	updated, err := s.client.UpdateItemWeights(ctx, cs, id, updates)
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	if updated != nil {
		return updated, nil
	}

	// Bare acknowledgement: fetch the fresh state so callers always get the
	// post-update request with recomputed totals.
	request, err := s.client.GetRequest(ctx, cs, id)
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	return request, nil
}
