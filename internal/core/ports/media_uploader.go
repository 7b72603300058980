package ports

import "context"

// MediaUploader stores a binary object durably and returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
}
