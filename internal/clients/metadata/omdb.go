package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"watchwise/internal/metrics"
	"watchwise/internal/utils"
)

// HTTPStatusError is returned when the upstream answers with a non-2xx status.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("OMDb request failed with status: %d", e.StatusCode)
}

type OMDbClient struct {
	baseURL    string
	apiKey     string
	version    int
	httpClient *http.Client
	logger     *utils.Logger
}

func NewOMDbClient(baseURL, apiKey string, version int, timeout time.Duration, logger *utils.Logger) *OMDbClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OMDbClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		version: version,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Search returns the upstream hits for q in upstream order. Every failure,
// including an upstream "no results" answer, yields an empty slice.
func (c *OMDbClient) Search(ctx context.Context, q SearchQuery) []MediaSummary {
	c.logger.WithFields(map[string]interface{}{
		"term": q.Term,
		"type": q.Type.String(),
	}).Info("Searching OMDb for media")

	result, err := c.FetchSearch(ctx, q)
	if err != nil {
		outcome := failureOutcome(err)
		if outcome == metrics.OutcomeCanceled {
			c.logger.Debug("OMDb search canceled by caller:", err)
		} else {
			c.logger.Error("Unable to fetch data from OMDb:", err)
		}
		metrics.UpstreamSearchesTotal.WithLabelValues(outcome).Inc()
		return []MediaSummary{}
	}

	if !result.Found() {
		c.logger.Debug("OMDb returned no results:", result.Error)
		metrics.UpstreamSearchesTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
		return []MediaSummary{}
	}

	metrics.UpstreamSearchesTotal.WithLabelValues(metrics.OutcomeFound).Inc()
	if result.Search == nil {
		return []MediaSummary{}
	}
	return result.Search
}

// FetchSearch performs one search request and decodes the envelope. When
// the Response flag is "True" every item must carry a known Type.
func (c *OMDbClient) FetchSearch(ctx context.Context, q SearchQuery) (*UpstreamResult, error) {
	searchURL, err := c.buildSearchURL(q)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("OMDb API URL:", redactKey(searchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create OMDb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search OMDb: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode}
	}

	var result UpstreamResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &decodeError{err: err}
	}
	if result.Found() {
		for i, item := range result.Search {
			if item.Type == MediaTypeUnknown {
				return nil, &decodeError{err: fmt.Errorf("item %d (%s): missing Type", i, item.ImdbID)}
			}
		}
	}
	return &result, nil
}

func (c *OMDbClient) buildSearchURL(q SearchQuery) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid OMDb base URL: %w", err)
	}
	params := u.Query()
	for key, value := range searchParams(q, c.apiKey, c.version) {
		params[key] = value
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// searchParams encodes q for the upstream. Absent optional fields are left
// out entirely; the upstream rejects empty-string values for them.
func searchParams(q SearchQuery, apiKey string, version int) url.Values {
	params := url.Values{}
	params.Set("s", q.Term)
	if name := q.Type.String(); name != "" {
		params.Set("type", name)
	}
	if q.Year != "" {
		params.Set("y", q.Year)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if version > 0 {
		params.Set("v", strconv.Itoa(version))
	}
	if apiKey != "" {
		params.Set("apikey", apiKey)
	}
	return params
}

func redactKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	params := u.Query()
	if params.Has("apikey") {
		params.Set("apikey", "REDACTED")
		u.RawQuery = params.Encode()
	}
	return u.String()
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("failed to decode OMDb response: %v", e.err)
}

func (e *decodeError) Unwrap() error {
	return e.err
}

func failureOutcome(err error) string {
	var statusErr *HTTPStatusError
	var decErr *decodeError
	switch {
	case errors.Is(err, context.Canceled):
		return metrics.OutcomeCanceled
	case errors.As(err, &statusErr):
		return metrics.OutcomeHTTPError
	case errors.As(err, &decErr):
		return metrics.OutcomeDecodeError
	default:
		return metrics.OutcomeTransportError
	}
}
