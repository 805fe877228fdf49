// Package imageurl repairs the malformed image URLs the scrap backend is known
// to return (dropped protocol slashes, doubled /uploads/ segments, bare
// filenames) and resolves them against the uploads origin.
package imageurl

import (
	"fmt"
	"strings"
	"sync"
)

const uploadDir = "/uploads/category-icons/"

// Normalize turns a raw image reference into a display-ready form: an absolute
// URL stays absolute (repaired), anything mentioning uploads becomes a
// root-relative path with exactly one /uploads/ segment, and a bare filename is
// placed under the category icon directory. Empty in, empty out. The function
// is pure and idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "http") || strings.HasPrefix(raw, "//") {
		fixed := repairScheme(raw)
		fixed = collapseSchemeSlashes(fixed)
		fixed = collapseUploads(fixed)
		return fixed
	}

	if strings.Contains(raw, "uploads") {
		rel := strings.TrimLeft(raw, "/")
		if !strings.HasPrefix(rel, "uploads/") {
			rel = "uploads/" + strings.TrimPrefix(rel, "uploads/")
		}
		rel = collapseUploads(rel)
		return "/" + rel
	}

	return uploadDir + raw
}

// Resolve makes a normalized reference usable as an image source. Already
// usable values (http, https, blob) pass through; root-relative paths are
// joined to baseURL with a single slash. Empty input resolves to "" so callers
// substitute their fallback graphic.
func Resolve(normalized, baseURL string) string {
	if normalized == "" {
		return ""
	}
	if strings.HasPrefix(normalized, "http://") ||
		strings.HasPrefix(normalized, "https://") ||
		strings.HasPrefix(normalized, "blob:") {
		return normalized
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(normalized, "/")
}

// repairScheme reinserts the slash the backend drops after the scheme
// (http:/host -> http://host).
func repairScheme(url string) string {
	for _, scheme := range []string{"https", "http"} {
		prefix := scheme + ":/"
		if strings.HasPrefix(url, prefix) && !strings.HasPrefix(url, scheme+"://") {
			return scheme + "://" + url[len(prefix):]
		}
	}
	return url
}

// collapseSchemeSlashes reduces any run of slashes right after scheme:// down
// to exactly two.
func collapseSchemeSlashes(url string) string {
	idx := strings.Index(url, "://")
	if idx == -1 {
		return url
	}
	rest := strings.TrimLeft(url[idx+3:], "/")
	return url[:idx+3] + rest
}

func collapseUploads(url string) string {
	for {
		next := strings.ReplaceAll(url, "uploads//uploads/", "uploads/")
		next = strings.ReplaceAll(next, "uploads/uploads/", "uploads/")
		if next == url {
			return next
		}
		url = next
	}
}

// BaseURL derives the uploads origin from an API URL by stripping any /api
// suffix, so http://host:5001/api/v1 serves uploads from http://host:5001.
func BaseURL(apiURL string) string {
	base := strings.TrimRight(apiURL, "/")
	if idx := strings.Index(base, "/api"); idx != -1 {
		base = base[:idx]
	}
	return strings.TrimRight(base, "/")
}

// Key identifies one image reference: the owning entity id plus the image's
// position, so multiple images per entity track failures independently.
func Key(ownerID string, index int) string {
	return fmt.Sprintf("%s-%d", ownerID, index)
}

// FailedSet tracks which image references failed to load at display time.
// Consumers mark failures from load-error events and clear them on a later
// successful load; membership means "render the placeholder instead".
type FailedSet struct {
	mu     sync.Mutex
	failed map[string]struct{}
}

func NewFailedSet() *FailedSet {
	return &FailedSet{failed: make(map[string]struct{})}
}

func (s *FailedSet) MarkFailed(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed[key] = struct{}{}
}

func (s *FailedSet) MarkLoaded(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failed, key)
}

func (s *FailedSet) Failed(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.failed[key]
	return ok
}
