package handlers

import (
	"github.com/scrapdesk/admin-api/internal/imageurl"
	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/workflow"
	"github.com/scrapdesk/admin-api/pkg/dto"
)

func toUserResponse(user *models.AdminUser) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role,
	}
}

func toCategoryResponse(category *models.Category, images ImageServiceInterface) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		IconURL:     images.ResolveURL(category.Icon),
		IconFailed:  images.CategoryIconFailed(category.ID),
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func toRequestResponse(request *models.CollectionRequest, images ImageServiceInterface) dto.RequestResponse {
	resp := dto.RequestResponse{
		ID:              request.ID,
		UserID:          request.UserID,
		UserName:        request.UserName,
		UserEmail:       request.UserEmail,
		UserPhone:       request.UserPhone,
		Address:         request.Address,
		PickupDate:      request.PickupDate,
		PickupTimeSlot:  request.PickupTimeSlot,
		Notes:           request.Notes,
		Status:          request.Status,
		Terminal:        workflow.IsTerminal(workflow.Status(request.Status)),
		Items:           make([]dto.RequestItemResponse, 0, len(request.Items)),
		TotalWeight:     request.TotalWeight(),
		TotalValue:      request.TotalValue(),
		SubmittedAt:     request.SubmittedAt,
		AcceptedAt:      request.AcceptedAt,
		ScheduledAt:     request.ScheduledAt,
		StartedAt:       request.StartedAt,
		CompletedAt:     request.CompletedAt,
		RejectedAt:      request.RejectedAt,
		RejectionReason: request.RejectionReason,
	}
	if next, ok := workflow.Next(workflow.Status(request.Status)); ok {
		resp.NextStatus = string(next)
	}

	for _, item := range request.Items {
		itemResp := dto.RequestItemResponse{
			ID:             item.ID,
			CategoryID:     item.CategoryID,
			CategoryName:   item.CategoryName,
			Quantity:       item.Quantity,
			Weight:         item.Weight,
			EstimatedValue: item.EstimatedValue,
			AdminNotes:     item.AdminNotes,
			Images:         make([]dto.ItemImageResponse, 0, len(item.Images)),
		}
		for i, img := range item.Images {
			itemResp.Images = append(itemResp.Images, dto.ItemImageResponse{
				Key:    imageurl.Key(item.ID, i),
				URL:    images.ResolveURL(img),
				Failed: images.ItemImageFailed(item.ID, i),
			})
		}
		resp.Items = append(resp.Items, itemResp)
	}
	return resp
}
