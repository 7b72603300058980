package request

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
)

// DefaultMediaContentType is assumed for inline data without a data-URI header.
const DefaultMediaContentType = "image/jpeg"

var ErrInlineMediaIsEmpty = errors.New("inline media is empty")

// InlineMedia is a decoded inline media item.
type InlineMedia struct {
	ContentType string
	Data        []byte
}

// IsRemoteURL reports whether item already points at durable storage.
func IsRemoteURL(item string) bool {
	lower := strings.ToLower(strings.TrimSpace(item))
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

// HasInlineMedia reports whether any item still needs to be sideloaded.
func HasInlineMedia(items []string) bool {
	for _, item := range items {
		if !IsRemoteURL(item) {
			return true
		}
	}
	return false
}

// ParseInlineMedia decodes a data URI ("data:image/png;base64,....") or raw
// base64 payload.
func ParseInlineMedia(item string) (InlineMedia, error) {
	item = strings.TrimSpace(item)
	contentType := DefaultMediaContentType
	payload := item

	if strings.HasPrefix(item, "data:") {
		header, data, found := strings.Cut(item, ",")
		if !found {
			return InlineMedia{}, errors.New("malformed data URI: missing payload")
		}
		payload = data
		if mediaType, ok := strings.CutSuffix(strings.TrimPrefix(header, "data:"), ";base64"); ok && mediaType != "" {
			contentType = mediaType
		}
	}

	if payload == "" {
		return InlineMedia{}, ErrInlineMediaIsEmpty
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		var rawErr error
		if data, rawErr = base64.RawStdEncoding.DecodeString(payload); rawErr != nil {
			return InlineMedia{}, fmt.Errorf("decode inline media: %w", err)
		}
	}
	if len(data) == 0 {
		return InlineMedia{}, ErrInlineMediaIsEmpty
	}

	return InlineMedia{ContentType: contentType, Data: data}, nil
}

var knownExtensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
	"image/gif":       "gif",
	"image/heic":      "heic",
	"video/mp4":       "mp4",
	"video/quicktime": "mov",
}

// Extension returns the file extension used for the stored object.
func (m InlineMedia) Extension() string {
	if ext, ok := knownExtensions[m.ContentType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(m.ContentType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	if _, sub, ok := strings.Cut(m.ContentType, "/"); ok && sub != "" {
		return sub
	}
	return "bin"
}

// MediaPath is the durable storage key of the index-th media item of a request.
func MediaPath(requesterID, requestID kernel.UUID, at time.Time, index int, ext string) string {
	return fmt.Sprintf("service-requests/%s/%s/%d_%d.%s",
		requesterID.String(), requestID.String(), at.UnixMilli(), index, ext)
}
