package models

import "github.com/scrapdesk/admin-api/internal/imageurl"

// ImageRef is one image reference as canonicalized at the HTTP boundary. Raw
// is whatever the backend returned (possibly malformed), Normalized is the
// repaired form. Normalized is always either "" (use the fallback graphic) or
// a root-relative path / valid absolute URL.
type ImageRef struct {
	Raw        string `json:"-"`
	Normalized string `json:"url"`
}

func NewImageRef(raw string) ImageRef {
	return ImageRef{Raw: raw, Normalized: imageurl.Normalize(raw)}
}

// Resolved returns the absolute, display-ready URL for the given uploads base,
// or "" when there is nothing to display.
func (r ImageRef) Resolved(baseURL string) string {
	return imageurl.Resolve(r.Normalized, baseURL)
}
