package geodist

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lachuoi/mstd-random-restaurant/internal/errs"
)

// Sample request: http://localhost:3000/place/random/weighted/population
const randomWeightedPath = "/place/random/weighted/population"

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

// RandomWeighted fetches a population-weighted random set of coordinates.
// More populous locations are statistically more likely to appear first.
func (c *Client) RandomWeighted() ([]RandomPlaceEntry, error) {
	resp, err := c.httpClient.Get(c.baseURL + randomWeightedPath)
	if err != nil {
		return nil, fmt.Errorf("%w: random place fetch: %v", errs.ErrUpstreamUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: random place returned status %d: %s",
			errs.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	var entries []RandomPlaceEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: decoding random place response: %v", errs.ErrUpstreamUnavailable, err)
	}

	return entries, nil
}
