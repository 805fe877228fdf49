package services

import (
	"github.com/scrapdesk/admin-api/internal/imageurl"
	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/workflow"
)

const (
	ImageKindCategory = "category"
	ImageKindItem     = "item"
)

// ImageService resolves image references for display and tracks load failures
// reported by clients, so listings can flag broken images with a placeholder
// instead of retrying them on every render. Category icons are keyed by
// category id; request item images by "<itemID>-<index>".
type ImageService struct {
	base       string
	categories *imageurl.FailedSet
	items      *imageurl.FailedSet
}

func NewImageService(uploadsBaseURL string) *ImageService {
	return &ImageService{
		base:       uploadsBaseURL,
		categories: imageurl.NewFailedSet(),
		items:      imageurl.NewFailedSet(),
	}
}

func (s *ImageService) ResolveURL(ref models.ImageRef) string {
	return ref.Resolved(s.base)
}

func (s *ImageService) MarkFailed(kind, key string) error {
	set, err := s.set(kind)
	if err != nil {
		return err
	}
	set.MarkFailed(key)
	return nil
}

func (s *ImageService) MarkLoaded(kind, key string) error {
	set, err := s.set(kind)
	if err != nil {
		return err
	}
	set.MarkLoaded(key)
	return nil
}

func (s *ImageService) CategoryIconFailed(categoryID string) bool {
	return s.categories.Failed(categoryID)
}

func (s *ImageService) ItemImageFailed(itemID string, index int) bool {
	return s.items.Failed(imageurl.Key(itemID, index))
}

// ClearCategoryIcon forgets a recorded failure, typically after the icon file
// was replaced.
func (s *ImageService) ClearCategoryIcon(categoryID string) {
	s.categories.MarkLoaded(categoryID)
}

func (s *ImageService) set(kind string) (*imageurl.FailedSet, error) {
	switch kind {
	case ImageKindCategory:
		return s.categories, nil
	case ImageKindItem:
		return s.items, nil
	default:
		return nil, &workflow.ValidationError{Field: "kind", Message: "kind must be category or item"}
	}
}
