package listings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"property-dashboard/internal/models"
	"property-dashboard/pkg/logger"
	"property-dashboard/pkg/metrics"
)

const (
	maxBodyBytes   = 32 << 20
	maxDetailBytes = 512
	sourceName     = "http"
)

// Client calls the listings provider with a fixed bearer credential.
// It holds no per-request state.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new listings provider client
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// buildRequest constructs the provider GET request for the query
func (c *Client) buildRequest(ctx context.Context, query models.SearchRequest) (*http.Request, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listings base url %q: %w", c.baseURL, err)
	}
	params := u.Query()
	params.Set("suburb", query.Suburb)
	params.Set("property_type", query.PropertyType)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create listings request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// FetchListings issues exactly one provider request and returns the sanitized result set.
func (c *Client) FetchListings(ctx context.Context, query models.SearchRequest) (*models.ListingsResponse, error) {
	query, err := prepareQuery(query)
	if err != nil {
		return nil, err
	}

	req, err := c.buildRequest(ctx, query)
	if err != nil {
		return nil, err
	}

	logger.GlobalLogger.Printf("Fetching properties for suburb: %s, type: %s", query.Suburb, query.PropertyType)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			metrics.RecordUpstream(sourceName, "timeout", start)
			logger.GlobalLogger.Errorf("Listings request timed out: suburb=%s, error=%v", query.Suburb, err)
			return nil, &UpstreamError{StatusCode: http.StatusGatewayTimeout, Message: "request timed out", Err: err}
		}
		metrics.RecordUpstream(sourceName, "transport_error", start)
		logger.GlobalLogger.Errorf("Listings request failed: suburb=%s, error=%v", query.Suburb, err)
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.RecordUpstream(sourceName, "read_error", start)
		logger.GlobalLogger.Errorf("Failed to read listings response body: status=%s, error=%v", resp.Status, err)
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Message: "failed to read response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordUpstream(sourceName, "status_error", start)
		logger.GlobalLogger.Errorf("API request failed with status %d: suburb=%s", resp.StatusCode, query.Suburb)
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("API request failed with status %d", resp.StatusCode),
			Details:    truncate(string(body), maxDetailBytes),
		}
	}

	result, err := Decode(body)
	if err != nil {
		metrics.RecordUpstream(sourceName, "malformed", start)
		logger.GlobalLogger.Errorf("Failed to decode listings response: suburb=%s, error=%v", query.Suburb, err)
		return nil, err
	}

	metrics.RecordUpstream(sourceName, "success", start)
	logger.GlobalLogger.Printf("Successfully fetched %d properties", len(result.Results))
	return result, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
