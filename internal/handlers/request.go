package handlers

import (
	"strconv"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/middleware"
	"github.com/scrapdesk/admin-api/internal/workflow"
	"github.com/scrapdesk/admin-api/pkg/dto"
)

type RequestHandler struct {
	requestService RequestServiceInterface
	imageService   ImageServiceInterface
}

func NewRequestHandler(requestService RequestServiceInterface, imageService ImageServiceInterface) *RequestHandler {
	return &RequestHandler{requestService: requestService, imageService: imageService}
}

func (h *RequestHandler) List(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	params := backend.ListRequestsParams{
		Status:    c.QueryParam("status"),
		Search:    c.QueryParam("search"),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.BadRequest("page must be a positive integer")
			return
		}
		params.Page = page
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.BadRequest("limit must be a positive integer")
			return
		}
		params.Limit = limit
	}

	page, err := h.requestService.List(c.Request.Context(), session, params)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.RequestListResponse{
		Requests: make([]dto.RequestResponse, 0, len(page.Requests)),
		Pagination: dto.PaginationResponse{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	}
	for i := range page.Requests {
		resp.Requests = append(resp.Requests, toRequestResponse(&page.Requests[i], h.imageService))
	}
	_ = c.JSON(200, resp)
}

func (h *RequestHandler) Get(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	request, err := h.requestService.Get(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, toRequestResponse(request, h.imageService))
}

func (h *RequestHandler) UpdateStatus(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Status == "" {
		c.BadRequest("status is required")
		return
	}

	request, err := h.requestService.UpdateStatus(c.Request.Context(), session, c.Param("id"), workflow.Status(req.Status), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, toRequestResponse(request, h.imageService))
}

func (h *RequestHandler) UpdateWeights(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateWeightsRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	updates := make([]backend.ItemWeightUpdate, 0, len(req.Items))
	for _, item := range req.Items {
		updates = append(updates, backend.ItemWeightUpdate{
			ID:             item.ID,
			Weight:         item.Weight,
			EstimatedValue: item.EstimatedValue,
			AdminNotes:     item.AdminNotes,
		})
	}

	request, err := h.requestService.UpdateWeights(c.Request.Context(), session, c.Param("id"), updates)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, toRequestResponse(request, h.imageService))
}
