// Package push triggers job-alert delivery through the application's push
// endpoint.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"helpdispatch/internal/core/ports"
)

// JobAlertPath is appended to the application base URL.
const JobAlertPath = "/api/push/job-alert"

// Client posts job alerts as JSON. It performs a single attempt; the caller
// decides what a failure means.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

var _ ports.PushSender = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + JobAlertPath,
		httpClient: httpClient,
	}
}

type jobAlertBody struct {
	HelperUserIDs    []string `json:"helperUserIds"`
	JobID            string   `json:"jobId"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"`
	Location         string   `json:"location"`
	CustomerName     string   `json:"customerName"`
	Urgency          string   `json:"urgency"`
	ExpiresInSeconds int      `json:"expiresInSeconds"`
}

func (c *Client) SendJobAlert(ctx context.Context, alert ports.JobAlert) error {
	payload, err := json.Marshal(jobAlertBody{
		HelperUserIDs:    alert.HelperUserIDs,
		JobID:            alert.JobID,
		Title:            alert.Title,
		Description:      alert.Description,
		Price:            alert.Price,
		Location:         alert.Location,
		CustomerName:     alert.CustomerName,
		Urgency:          alert.Urgency,
		ExpiresInSeconds: alert.ExpiresInSeconds,
	})
	if err != nil {
		return fmt.Errorf("encode job alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build job alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send job alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
