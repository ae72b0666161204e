// Package mastodon is the client for the social backend: media uploads and
// status submission against a Mastodon-compatible API.
package mastodon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/lachuoi/mstd-random-restaurant/internal/errs"
	"github.com/lachuoi/mstd-random-restaurant/internal/multipartform"
)

const (
	mediaPath    = "/api/v2/media"
	statusesPath = "/api/v1/statuses"
)

type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *slog.Logger
}

func NewClient(logger *slog.Logger, baseURL, accessToken string) *Client {
	return &Client{
		httpClient:  &http.Client{},
		baseURL:     baseURL,
		accessToken: accessToken,
		logger:      logger.With("component", "mastodon-client"),
	}
}

// UploadMedia posts one image with its description to the media endpoint.
// A non-200 response is fatal: the body is logged for diagnosis and the call
// fails with UnexpectedStatusError.
func (c *Client) UploadMedia(image []byte, filename, contentType, description string) (*MediaResponse, error) {
	boundary, body := multipartform.Encode(image, filename, contentType, description)

	req, err := http.NewRequest(http.MethodPost, c.baseURL+mediaPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building media request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", fmt.Sprintf("multipart/form-data; boundary=%s", boundary))
	req.Header.Set("Accept", "*/*")
	req.ContentLength = int64(len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: media upload: %v", errs.ErrUpstreamUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("media upload rejected",
			"status", resp.StatusCode,
			"body", string(respBody),
		)
		return nil, &errs.UnexpectedStatusError{StatusCode: resp.StatusCode}
	}

	var apiResp MediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: decoding media response: %v", errs.ErrUpstreamUnavailable, err)
	}

	return &apiResp, nil
}

// PostStatus submits the final status. The response body is not inspected
// beyond transport success.
func (c *Client) PostStatus(status StatusRequest) error {
	body, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encoding status body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+statusesPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = int64(len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: status post: %v", errs.ErrUpstreamUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	c.logger.Debug("status posted", "status_code", resp.StatusCode)
	return nil
}
