package handlers

import (
	"errors"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/workflow"
)

// respondError maps the service error taxonomy onto HTTP statuses: validation
// failures are the client's fault, auth failures end the session, upstream
// outages are a bad gateway, and upstream rejections keep their status and
// message.
func respondError(c *drift.Context, err error) {
	var validationErr *workflow.ValidationError
	if errors.As(err, &validationErr) {
		c.BadRequest(validationErr.Error())
		return
	}

	var authErr *backend.AuthError
	if errors.As(err, &authErr) {
		msg := authErr.Message
		if msg == "" {
			msg = "session expired, please log in again"
		}
		c.Unauthorized(msg)
		return
	}

	var netErr *backend.NetworkError
	if errors.As(err, &netErr) {
		c.BadGateway("backend unreachable")
		return
	}

	var serverErr *backend.ServerError
	if errors.As(err, &serverErr) {
		msg := serverErr.Message
		if msg == "" {
			msg = "backend request failed"
		}
		_ = c.JSON(serverErr.Status, map[string]string{"error": msg})
		return
	}

	c.InternalServerError("internal server error")
}
