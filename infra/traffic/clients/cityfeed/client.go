// Package cityfeed implements the traffic client for the city open-data
// delay feed.
package cityfeed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kilianp07/dispatchsim/infra/auth"
	"github.com/kilianp07/dispatchsim/infra/traffic"
)

var (
	delaysBaseURL = "https://opendata.city.example/api/traffic/v1/delays?start_date=%s&end_date=%s"
)

type Client struct {
	startDate time.Time
	endDate   time.Time
}

// Fetch retrieves the observed delays for the configured window. Exactly two
// options must be provided: the start and end of the observation window.
func (c *Client) Fetch(authClient *auth.ClientCred, opts ...traffic.Option) (traffic.Response, error) {
	client := &http.Client{}

	if len(opts) != 2 {
		return nil, fmt.Errorf("missing options: %d are set", len(opts))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	url := fmt.Sprintf(delaysBaseURL, c.startDate.Format(time.RFC3339), c.endDate.Format(time.RFC3339))

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if err := authClient.SetAuthHeader(req); err != nil {
		return nil, fmt.Errorf("failed to set auth header: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var delayResponse Response
	if err := json.Unmarshal(body, &delayResponse); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &delayResponse, nil
}
