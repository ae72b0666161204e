// Package caption talks to the internal image captioning service, which takes
// a multipart-encoded image and answers with a natural-language description.
package caption

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lachuoi/mstd-random-restaurant/internal/errs"
	"github.com/lachuoi/mstd-random-restaurant/internal/multipartform"
)

// Sample request: POST http://localhost:3000/image/description
const describePath = "/image/description"

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

// DescriptionResponse carries the caption for an uploaded image.
type DescriptionResponse struct {
	Description *string `json:"description"`
}

// Describe uploads an image and returns the service's description of it.
// The description text part of the multipart body is left empty here; it is
// the response, not the request.
func (c *Client) Describe(image []byte, filename, contentType string) (*DescriptionResponse, error) {
	boundary, body := multipartform.Encode(image, filename, contentType, "")

	req, err := http.NewRequest(http.MethodPost, c.baseURL+describePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building describe request: %w", err)
	}
	req.Header.Set("Content-Type", fmt.Sprintf("multipart/form-data; boundary=%s", boundary))
	req.ContentLength = int64(len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: describe request: %v", errs.ErrUpstreamUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	var apiResp DescriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: decoding description response: %v", errs.ErrUpstreamUnavailable, err)
	}

	return &apiResp, nil
}
