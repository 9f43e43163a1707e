// Package karma talks to the external identity-risk (blacklist) service.
// The client reports what it saw; the policy for an unreachable service is
// decided by the caller.
package karma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Decision int

const (
	Allowed Decision = iota
	Blocked
	Unavailable
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Blocked:
		return "blocked"
	default:
		return "unavailable"
	}
}

type Checker interface {
	Check(ctx context.Context, email string) (Decision, error)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ Checker = (*Client)(nil)

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type checkResponse struct {
	IsBlacklisted bool `json:"isBlacklisted"`
}

// Check never blocks onboarding on its own: any transport error or
// unexpected status comes back as Unavailable together with the cause.
func (c *Client) Check(ctx context.Context, email string) (Decision, error) {
	const op = "karma.Check"

	endpoint := c.baseURL + "/check/" + url.PathEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Unavailable, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Unavailable, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unavailable, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var body checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Unavailable, fmt.Errorf("%s: %w", op, err)
	}

	if body.IsBlacklisted {
		return Blocked, nil
	}
	return Allowed, nil
}
