// Package fetch provides the bounded-redirect GET primitive used for photo
// downloads. Redirects are followed manually so the hop count and the Location
// handling stay under our control instead of net/http's defaults.
package fetch

import (
	"fmt"
	"io"
	"net/http"

	"github.com/lachuoi/mstd-random-restaurant/internal/errs"
)

// MaxRedirects is the number of 302 hops permitted before a fetch is
// abandoned.
const MaxRedirects = 5

// Result is a fully-read terminal response. StatusCode is either 200 or 404;
// the caller decides what a 404 means (some photo references legitimately
// 404 and must not be treated as fetch failures).
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			// Redirects are counted and re-issued by Get itself.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Get issues a GET against uri, following up to MaxRedirects 302 responses
// using the Location header verbatim. 200 and 404 are both terminal
// successes; any other status fails with errs.UnexpectedStatusError. No
// retry is performed on transport errors.
func (c *Client) Get(uri string) (*Result, error) {
	redirects := 0
	for {
		resp, err := c.httpClient.Get(uri)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrUpstreamUnavailable, err)
		}

		switch resp.StatusCode {
		case http.StatusFound:
			resp.Body.Close()
			location := resp.Header.Get("Location")
			if location == "" {
				return nil, errs.ErrMissingLocation
			}
			redirects++
			if redirects > MaxRedirects {
				return nil, fmt.Errorf("%w (exceeded %d)", errs.ErrTooManyRedirects, MaxRedirects)
			}
			uri = location

		case http.StatusOK, http.StatusNotFound:
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("%w: reading body: %v", errs.ErrUpstreamUnavailable, err)
			}
			return &Result{
				StatusCode: resp.StatusCode,
				Header:     resp.Header,
				Body:       body,
			}, nil

		default:
			code := resp.StatusCode
			resp.Body.Close()
			return nil, &errs.UnexpectedStatusError{StatusCode: code}
		}
	}
}
