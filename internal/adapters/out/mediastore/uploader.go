// Package mediastore uploads request media to a Firebase-storage style bucket
// over its REST API.
package mediastore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"helpdispatch/internal/core/ports"
	"helpdispatch/internal/pkg/errs"
)

// DefaultBaseURL is the public Firebase storage endpoint.
const DefaultBaseURL = "https://firebasestorage.googleapis.com"

var ErrMissingDownloadToken = errors.New("upload response carries no download token")

// Uploader writes objects with a single POST per object and builds the public
// download URL from the token the store returns.
type Uploader struct {
	baseURL    string
	bucket     string
	httpClient *http.Client
}

var _ ports.MediaUploader = (*Uploader)(nil)

func NewUploader(baseURL, bucket string, httpClient *http.Client) (*Uploader, error) {
	if bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Uploader{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		httpClient: httpClient,
	}, nil
}

type uploadResponse struct {
	Name           string `json:"name"`
	DownloadTokens string `json:"downloadTokens"`
}

// Upload stores data under path and returns
// <base>/v0/b/<bucket>/o/<escaped path>?alt=media&token=<token>.
func (u *Uploader) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if path == "" {
		return "", errs.NewValueIsRequiredError("path")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectURL := u.objectURL(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, objectURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("media store returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out uploadResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	// several tokens come back comma separated; any of them works
	token, _, _ := strings.Cut(out.DownloadTokens, ",")
	if token == "" {
		return "", ErrMissingDownloadToken
	}

	return objectURL + "?alt=media&token=" + url.QueryEscape(token), nil
}

func (u *Uploader) objectURL(path string) string {
	return fmt.Sprintf("%s/v0/b/%s/o/%s", u.baseURL, url.PathEscape(u.bucket), url.PathEscape(path))
}
