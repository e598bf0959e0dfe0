package naic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pulsarops/aosched/core/logger"
	"github.com/pulsarops/aosched/core/schedule"
)

// DefaultBaseURL is the observatory's raw schedule CGI endpoint.
const DefaultBaseURL = "http://www.naic.edu/~arun/cgi-bin/schedrawd.cgi"

// Client fetches the raw grid schedule for one project and year. It does not
// retry; transport failures and non-200 responses surface to the caller,
// which decides whether to fetch again.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewClient creates a schedule client. baseURL falls back to DefaultBaseURL
// and timeout to 15s when zero-valued.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Fetch retrieves and parses the schedule for the given project code and
// year. The CGI endpoint keys on a lower-case project code and a two-digit
// year, so "P2780"/"2020" becomes year=20&proj=p2780. Row order is preserved
// exactly as the feed emits it.
func (c *Client) Fetch(ctx context.Context, project, year string) ([]schedule.Row, error) {
	yr := year
	if len(yr) > 2 {
		yr = yr[len(yr)-2:]
	}
	url := fmt.Sprintf("%s?year=%s&proj=%s", c.baseURL, yr, strings.ToLower(project))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.log != nil {
		c.log.Infof("fetching schedule: %s", url)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	rows, err := ParseTable(body)
	if err != nil {
		return nil, fmt.Errorf("parse schedule for %s/%s: %w", project, year, err)
	}
	if c.log != nil {
		c.log.Infof("parsed %d schedule rows for %s/%s", len(rows), project, year)
	}
	return rows, nil
}
