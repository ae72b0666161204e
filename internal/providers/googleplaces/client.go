package googleplaces

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/lachuoi/mstd-random-restaurant/internal/errs"
	"github.com/lachuoi/mstd-random-restaurant/internal/fetch"
)

// API docs: https://developers.google.com/maps/documentation/places/web-service/search-nearby
const (
	baseURL = "https://maps.googleapis.com/maps/api/place"

	// searchRadiusMeters is the nearby-search radius around a sampled point.
	searchRadiusMeters = 100000

	// photoMaxWidth bounds the longest edge of downloaded photos.
	photoMaxWidth = 1080
)

type Client struct {
	httpClient *http.Client
	fetcher    *fetch.Client
	baseURL    string
	apiKey     string
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{},
		fetcher:    fetch.NewClient(),
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// NearbySearch queries restaurants within the search radius of the given
// coordinates.
func (c *Client) NearbySearch(latitude, longitude float64) (*NearbySearchResponse, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", latitude, longitude))
	q.Set("radius", fmt.Sprintf("%d", searchRadiusMeters))
	q.Set("type", "restaurant")
	q.Set("key", c.apiKey)

	var apiResp NearbySearchResponse
	if err := c.getJSON(c.baseURL+"/nearbysearch/json?"+q.Encode(), &apiResp); err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}
	return &apiResp, nil
}

// Details fetches the formatted address and photo references for a place.
func (c *Client) Details(placeID string) (*DetailsResponse, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "photos,formatted_address")
	q.Set("key", c.apiKey)

	var apiResp DetailsResponse
	if err := c.getJSON(c.baseURL+"/details/json?"+q.Encode(), &apiResp); err != nil {
		return nil, fmt.Errorf("place details: %w", err)
	}
	return &apiResp, nil
}

// FetchPhoto downloads the image behind a photo reference. The photo endpoint
// answers with a 302 to the image host, so the bounded-redirect fetcher does
// the actual transfer. A 404 result is passed through to the caller.
func (c *Client) FetchPhoto(reference string) (*fetch.Result, error) {
	q := url.Values{}
	q.Set("maxwidth", fmt.Sprintf("%d", photoMaxWidth))
	q.Set("photoreference", reference)
	q.Set("key", c.apiKey)

	res, err := c.fetcher.Get(c.baseURL + "/photo?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("place photo: %w", err)
	}
	return res, nil
}

func (c *Client) getJSON(uri string, out any) error {
	resp, err := c.httpClient.Get(uri)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUpstreamUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", errs.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", errs.ErrUpstreamUnavailable, err)
	}
	return nil
}
