package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/scrapdesk/admin-api/pkg/dto"
)

// ImageHandler receives image load reports from clients. A failed report
// flips the image to its placeholder in subsequent listings; a loaded report
// clears it again.
type ImageHandler struct {
	imageService ImageServiceInterface
}

func NewImageHandler(imageService ImageServiceInterface) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) MarkFailed(c *drift.Context) {
	if err := h.imageService.MarkFailed(c.QueryParam("kind"), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, dto.MessageResponse{Message: "recorded"})
}

func (h *ImageHandler) MarkLoaded(c *drift.Context) {
	if err := h.imageService.MarkLoaded(c.QueryParam("kind"), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, dto.MessageResponse{Message: "recorded"})
}
