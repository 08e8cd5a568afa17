package giphy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.giphy.com"

// Client is a minimal client for the Giphy search API. It is safe for
// concurrent use and intended to be constructed once at startup.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type Gif struct {
	Id     string `json:"id"`
	Title  string `json:"title"`
	Images Images `json:"images"`
}

type Images struct {
	Original Image `json:"original"`
}

type Image struct {
	URL    string `json:"url"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

type searchResponse struct {
	Data []Gif `json:"data"`
	Meta struct {
		Status int    `json:"status"`
		Msg    string `json:"msg"`
	} `json:"meta"`
}

// Search queries the gif search endpoint. The offset selects a window into
// the ranked result set so repeated searches for the same query vary.
func (c *Client) Search(ctx context.Context, query string, offset, limit int) ([]Gif, error) {
	u, err := url.Parse(c.baseURL + "/v1/gifs/search")
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("api_key", c.apiKey)
	q.Set("q", query)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gif search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gif search: unexpected status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("gif search: decode response: %w", err)
	}

	return sr.Data, nil
}
