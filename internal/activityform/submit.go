package activityform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"itinerary-planner/internal/dom"
)

const maxResponseBody = 1 << 20

// NewActivitiesRequest is the body posted to /itinerary/{id}/new.
type NewActivitiesRequest struct {
	Categories []string `json:"categories"`
}

// NewActivitiesResponse is the success body returned by the backend.
type NewActivitiesResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// Result reports the outcome of a submission.
type Result struct {
	ItineraryID string
	RedirectURL string
	StatusCode  int
	Err         error
}

// OK reports whether the submission produced a redirect target.
func (r Result) OK() bool {
	return r.Err == nil && r.RedirectURL != ""
}

// ItineraryID returns the path segment after the first one, e.g. "42" for
// "/itinerary/42/add-activities".
func ItineraryID(path string) (string, error) {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return parts[1], nil
}

// Collect reads slots 1..count in order and returns the non-empty values.
// Missing selects are skipped. The result is never nil.
func Collect(doc dom.Document, count int) []string {
	out := []string{}
	for i := 1; i <= count; i++ {
		el, ok := doc.GetElementByID(SlotID(i))
		if !ok {
			continue
		}
		if v := el.Value(); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Client posts category selections to the itinerary backend.
type Client struct {
	// BaseURL prefixes the request path. Empty means same-origin.
	BaseURL    string
	HTTPClient *http.Client
	// Timeout bounds the request when positive. By default the transport's
	// own behaviour applies.
	Timeout time.Duration
}

// EndpointURL returns the submission URL for an itinerary.
func (c Client) EndpointURL(itineraryID string) string {
	base := strings.TrimRight(c.BaseURL, "/")
	return base + "/itinerary/" + url.PathEscape(itineraryID) + "/new"
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Submit posts categories and decodes the redirect target. It never retries.
func (c Client) Submit(ctx context.Context, itineraryID string, categories []string) Result {
	res := Result{ItineraryID: itineraryID}
	if categories == nil {
		categories = []string{}
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(NewActivitiesRequest{Categories: categories})
	if err != nil {
		res.Err = fmt.Errorf("encode request: %w", err)
		return res
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.EndpointURL(itineraryID), bytes.NewReader(payload))
	if err != nil {
		res.Err = fmt.Errorf("%w: build request: %v", ErrTransport, err)
		return res
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrTransport, err)
		return res
	}
	defer resp.Body.Close()
	res.StatusCode = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		res.Err = fmt.Errorf("%w: read body: %v", ErrTransport, err)
		return res
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		res.Err = fmt.Errorf("%w: %d %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(body)))
		return res
	}

	var decoded NewActivitiesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		return res
	}
	if strings.TrimSpace(decoded.RedirectURL) == "" {
		res.Err = fmt.Errorf("%w: redirect_url missing", ErrMalformedResponse)
		return res
	}
	res.RedirectURL = decoded.RedirectURL
	return res
}
