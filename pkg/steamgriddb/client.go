package steamgriddb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultBaseURL = "https://www.steamgriddb.com/api/v2"

// EnvBaseURL overrides the API base URL when set, for mirrors and tests.
const EnvBaseURL = "STEAMGRIDDB_BASE_URL"

var (
	// ErrUnauthorized means the API key is missing or was rejected.
	// Requests failing this way are never retried.
	ErrUnauthorized = errors.New("steamgriddb: api key rejected")
	// ErrNotFound means the database has no candidates for the query.
	ErrNotFound = errors.New("steamgriddb: no results")
)

// StatusError reports an unexpected HTTP status from the API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("steamgriddb: API error %d: %s", e.Code, e.Body)
}

// Client is a SteamGridDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient http.Client
	// retryWait is the pause before the single retry of a transient failure.
	retryWait time.Duration
}

// NewClient creates a new SteamGridDB client.
func NewClient(apiKey string) *Client {
	baseURL := defaultBaseURL
	if u := os.Getenv(EnvBaseURL); u != "" {
		baseURL = u
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: http.Client{Timeout: 20 * time.Second},
		retryWait:  500 * time.Millisecond,
	}
}

// SetBaseURL overrides the API base URL, for tests and proxies.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// get performs an authenticated GET. Transient failures (transport errors,
// 5xx, 429) are retried once after a short backoff; auth rejections are not.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	body, err := c.getOnce(ctx, reqURL)
	if err != nil && retryable(err) {
		select {
		case <-time.After(c.retryWait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		body, err = c.getOnce(ctx, reqURL)
	}
	return body, err
}

func (c *Client) getOnce(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
}

// retryable reports whether the failure is worth one more attempt.
func retryable(err error) bool {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
		return false
	}
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Code == http.StatusTooManyRequests || serr.Code >= 500
	}
	// Transport-level failures (timeout, DNS, connection reset).
	return true
}

// Search searches for games by name via the autocomplete endpoint.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	body, err := c.get(ctx, "/search/autocomplete/"+url.PathEscape(term), nil)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("steamgriddb: bad search response: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, ErrNotFound
	}
	return resp.Data, nil
}

// Grids returns grid images for a game, best candidate first.
func (c *Client) Grids(ctx context.Context, gameID int, filters *ImageFilters) ([]ImageData, error) {
	return c.images(ctx, fmt.Sprintf("/grids/game/%d", gameID), filters)
}

// Heroes returns hero banners for a game.
func (c *Client) Heroes(ctx context.Context, gameID int, filters *ImageFilters) ([]ImageData, error) {
	return c.images(ctx, fmt.Sprintf("/heroes/game/%d", gameID), filters)
}

// Logos returns logo images for a game.
func (c *Client) Logos(ctx context.Context, gameID int, filters *ImageFilters) ([]ImageData, error) {
	return c.images(ctx, fmt.Sprintf("/logos/game/%d", gameID), filters)
}

// Icons returns icon images for a game.
func (c *Client) Icons(ctx context.Context, gameID int, filters *ImageFilters) ([]ImageData, error) {
	return c.images(ctx, fmt.Sprintf("/icons/game/%d", gameID), filters)
}

func (c *Client) images(ctx context.Context, endpoint string, filters *ImageFilters) ([]ImageData, error) {
	body, err := c.get(ctx, endpoint, buildParams(filters))
	if err != nil {
		return nil, err
	}

	var resp imageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("steamgriddb: bad image response: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, ErrNotFound
	}
	return resp.Data, nil
}

// Download fetches an image URL and returns the bytes and content type.
func (c *Client) Download(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &StatusError{Code: resp.StatusCode, Body: "image download failed"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

func buildParams(filters *ImageFilters) url.Values {
	if filters == nil {
		return nil
	}

	params := url.Values{}
	if filters.Dimensions != "" {
		params.Set("dimensions", filters.Dimensions)
	}
	if filters.ShowNsfw {
		params.Set("nsfw", "any")
	} else {
		params.Set("nsfw", "false")
	}
	if filters.ShowHumor {
		params.Set("humor", "any")
	} else {
		params.Set("humor", "false")
	}
	return params
}

// ExtFromContentType returns the grid file extension for an image content
// type, or "" when the type is not one Steam can display.
func ExtFromContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return ""
	}
}
