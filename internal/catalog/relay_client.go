package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultRelayURL    = "https://api.allorigins.win/raw?url="
	DefaultAPIEndpoint = "https://newswire-story-recommendation.staging.storyful.com/api/stories"
)

type relayClient struct {
	relayURL string
	endpoint string
	http     *http.Client
	now      func() time.Time
}

// NewRelayClient returns a StoryClient that reaches endpoint through a
// CORS relay. relayURL must end with the query parameter that receives the
// escaped target, e.g. "https://api.allorigins.win/raw?url=".
func NewRelayClient(relayURL, endpoint string, httpClient *http.Client) StoryClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &relayClient{
		relayURL: relayURL,
		endpoint: endpoint,
		http:     httpClient,
		now:      time.Now,
	}
}

func (c *relayClient) FetchStories(ctx context.Context, limit int) ([]APIStory, error) {
	var out []APIStory
	err := c.get(ctx, c.endpoint, "?limit="+strconv.Itoa(limit), &out)
	return out, err
}

func (c *relayClient) FetchStory(ctx context.Context, id string) (StoryResponse, error) {
	var out StoryResponse
	err := c.get(ctx, c.endpoint+"/"+id, "", &out)
	return out, err
}

func (c *relayClient) FetchRecommendations(ctx context.Context, id string) ([]APIStory, error) {
	var out []APIStory
	err := c.get(ctx, c.endpoint+"/"+id+"/recommendations", "", &out)
	return out, err
}

// relayTarget wraps the upstream URL for the relay and appends a
// cache-busting timestamp.
func (c *relayClient) relayTarget(endpoint, params string) string {
	target := endpoint + params
	return c.relayURL + url.QueryEscape(target) + "&_t=" + strconv.FormatInt(c.now().UnixMilli(), 10)
}

func (c *relayClient) get(ctx context.Context, endpoint, params string, out any) error {
	u := c.relayTarget(endpoint, params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &TransportError{Status: resp.StatusCode, URL: u}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{What: "response from " + endpoint, Err: err}
	}
	return nil
}
