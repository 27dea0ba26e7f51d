// internal/infra/praktikum/client.go
package praktikum

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"homework_status_bot/internal/domain/homework"
)

// maxErrorBody bounds how much of a failed response ends up in the error.
const maxErrorBody = 512

// StatusError is returned for non-2xx responses of the status API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status API returned HTTP %d", e.Code)
	}
	return fmt.Sprintf("status API returned HTTP %d: %s", e.Code, e.Body)
}

// Client queries the homework status endpoint with a static OAuth token.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	now      func() time.Time
}

func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

// Fetch returns every homework updated since cursor. A cursor that is not a
// positive Unix timestamp is replaced with the current time.
func (c *Client) Fetch(ctx context.Context, cursor int64) (*homework.Snapshot, error) {
	if cursor <= 0 {
		cursor = c.now().Unix()
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid status API url: %w", err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(cursor, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	snap, err := homework.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}
	return snap, nil
}
